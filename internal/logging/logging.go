package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adiavolo/comic-insights/internal/config"
)

// Setup configures the global zerolog logger: JSON logs to a daily-rotated
// file under cfg.Dir, plus a console writer when format is "console".
// The returned closer flushes the file sink; callers defer it in main.
func Setup(cfg config.LoggingConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	fileWriter, err := rotatelogs.New(
		filepath.Join(cfg.Dir, "comic-insights.%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(cfg.Dir, "comic-insights.log")),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(7*24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open rotating log file: %w", err)
	}

	var writer io.Writer = fileWriter
	if cfg.Format == "console" {
		writer = zerolog.MultiLevelWriter(
			zerolog.ConsoleWriter{Out: os.Stderr},
			fileWriter,
		)
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
	return fileWriter, nil
}
