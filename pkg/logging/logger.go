package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// NewLogger builds the hclog logger shared by every command. An empty level
// falls back to W2X_LOG_LEVEL, then to "info". W2X_JSON_LOG=1 switches to
// JSON records; otherwise each line gets a terminal prefix.
func NewLogger(name, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if level == "" {
		if level = os.Getenv("W2X_LOG_LEVEL"); level == "" {
			level = "info"
		}
	}

	jsonFormat := os.Getenv("W2X_JSON_LOG") == "1"
	if !jsonFormat {
		output = NewPrefixWriter("🖱️  ", output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn:     func() time.Time { return time.Now().UTC() },
	})
}
