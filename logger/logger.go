package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	appLogger *logrus.Logger
	once      sync.Once
)

// Get returns the shared application logger, initializing it on first use.
// Level and format are controlled by LOG_LEVEL and LOG_FORMAT.
func Get() *logrus.Logger {
	once.Do(func() {
		appLogger = logrus.New()
		appLogger.SetOutput(os.Stdout)

		level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
		if err != nil {
			level = logrus.InfoLevel
		}
		appLogger.SetLevel(level)

		if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
			appLogger.SetFormatter(&logrus.JSONFormatter{})
		} else {
			appLogger.SetFormatter(&logrus.TextFormatter{
				FullTimestamp:   true,
				TimestampFormat: "2006-01-02 15:04:05",
			})
		}
	})
	return appLogger
}
