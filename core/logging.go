package core

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	loggerOnce sync.Once
	logger     *log.Logger
)

// Logger returns the process-wide logger, creating it on first use.
func Logger() *log.Logger {
	loggerOnce.Do(func() {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "stargate",
		})
		logger.SetLevel(log.InfoLevel)
	})
	return logger
}

// SetLogLevel accepts debug, info, warn or error. Unknown names keep the
// current level and are reported.
func SetLogLevel(name string) {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		Logger().Warn("unknown log level, keeping current", "level", name)
		return
	}
	Logger().SetLevel(lvl)
}

// SetLogOutput redirects log output, mostly for tests.
func SetLogOutput(w io.Writer) {
	Logger().SetOutput(w)
}

func LogDebug(msg string, keyvals ...interface{}) {
	Logger().Debug(msg, keyvals...)
}

func LogInfo(msg string, keyvals ...interface{}) {
	Logger().Info(msg, keyvals...)
}

func LogWarn(msg string, keyvals ...interface{}) {
	Logger().Warn(msg, keyvals...)
}

func LogError(msg string, keyvals ...interface{}) {
	Logger().Error(msg, keyvals...)
}

func LogFatal(msg string, keyvals ...interface{}) {
	Logger().Fatal(msg, keyvals...)
}
