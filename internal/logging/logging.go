// Package logging builds the engine's zerolog logger: console plus a
// session log file, with an optional Graylog GELF sink behind config.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, appName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", appName, sessionStart.Format("20060102_150405")),
	)
}

// Manager owns the configured logger and the writers behind it.
type Manager struct {
	Logger        zerolog.Logger
	LogFile       *os.File
	GraylogWriter *gelf.Writer
}

// NewManager returns a manager with a console-only logger so logging works
// before Setup runs.
func NewManager() *Manager {
	return &Manager{
		Logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger(),
	}
}

// Setup wires the full writer stack: console, session file, and GELF when
// graylog.enabled is set. A failed GELF dial is logged and skipped rather
// than failing startup.
func (m *Manager) Setup(appName string, sessionStart time.Time) error {
	level, err := zerolog.ParseLevel(viper.GetString("logLevel"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout}}

	logsDir := viper.GetString("logsDir")
	if logsDir != "" {
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return fmt.Errorf("failed to create logs dir: %w", err)
		}
		m.LogFile, err = os.Create(LogFilePath(logsDir, appName, sessionStart))
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		writers = append(writers, m.LogFile)
	}

	if viper.GetBool("graylog.enabled") {
		m.GraylogWriter, err = gelf.NewWriter(viper.GetString("graylog.address"))
		if err != nil {
			m.Logger.Warn().Err(err).Msg("Failed to connect to Graylog, skipping GELF output")
		} else {
			writers = append(writers, m.GraylogWriter)
		}
	}

	m.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Str("app", appName).Logger()

	m.Logger.Info().Str("level", level.String()).Msg("Logging initialized")
	return nil
}

// Close flushes and closes the file and GELF writers.
func (m *Manager) Close() {
	if m.LogFile != nil {
		m.LogFile.Close()
	}
	if m.GraylogWriter != nil {
		m.GraylogWriter.Close()
	}
}
