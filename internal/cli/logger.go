package cli

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/focusfoundry/tempo/internal/config"
	"github.com/focusfoundry/tempo/internal/errors"
	"github.com/focusfoundry/tempo/internal/logging"
)

// logFileWriter holds the rotating file sink for cleanup at shutdown.
var logFileWriter io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup

// globalLoggerMu protects writes to the zerolog global logger.
var globalLoggerMu sync.Mutex //nolint:gochecknoglobals // Protects global logger

// InitLogger creates the CLI logger from verbosity flags and the log
// configuration.
//
// Levels: --verbose wins with debug, --quiet with warn, otherwise
// log.level from the config (default info). Output is a console writer
// on a TTY without NO_COLOR, JSON on anything else. A non-empty
// log.file adds a rotating file sink wrapped so credentials are
// redacted before they reach disk; if the file cannot be created the
// logger continues console-only.
func InitLogger(verbose, quiet bool, logCfg config.LogConfig) zerolog.Logger {
	level := selectLevel(verbose, quiet, logCfg.Level)
	console := selectOutput()

	writer := console
	if logCfg.File != "" {
		if fw, err := createLogFileWriter(logCfg); err == nil {
			logFileWriter = fw
			writer = zerolog.MultiLevelWriter(console, fw)
		}
	}

	logger := zerolog.New(writer).
		Level(level).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter creates a logger over a custom writer, primarily
// for tests. The writer gets the same redaction treatment as the file
// sink.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	logger := zerolog.New(logging.NewFilteringWriter(w)).
		Level(selectLevel(verbose, quiet, "")).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// CloseLogFile releases the rotating file sink, if one was opened.
func CloseLogFile() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

func setGlobalLogger(logger zerolog.Logger) {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	log.Logger = logger
}

func selectLevel(verbose, quiet bool, configured string) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	}
	if lvl, err := zerolog.ParseLevel(configured); err == nil && configured != "" {
		return lvl
	}
	return zerolog.InfoLevel
}

// selectOutput picks console output for interactive terminals and JSON
// for everything else.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// filteringWriteCloser pairs a redacting writer with the closer of the
// underlying sink.
type filteringWriteCloser struct {
	filter *logging.FilteringWriter
	closer io.Closer
}

func (f *filteringWriteCloser) Write(p []byte) (int, error) { return f.filter.Write(p) }
func (f *filteringWriteCloser) Close() error                { return f.closer.Close() }

func createLogFileWriter(logCfg config.LogConfig) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(logCfg.File), 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}
	lj := &lumberjack.Logger{
		Filename:   logCfg.File,
		MaxSize:    logCfg.MaxSizeMB,
		MaxBackups: logCfg.MaxBackups,
		Compress:   true,
	}
	return &filteringWriteCloser{
		filter: logging.NewFilteringWriter(lj),
		closer: lj,
	}, nil
}
