// Package obs holds observability plumbing shared by the service.
package obs

import (
	"log/slog"
	"os"
)

// Logger is the process-wide structured logger.
var Logger *slog.Logger

// InitLogger installs a JSON slog handler at info level and tags every
// record with the service name.
func InitLogger(service string) {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	Logger = slog.New(h).With("service", service)
	slog.SetDefault(Logger)
}
