package weather

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var (
	debugLogging atomic.Bool
	logger       = logrus.WithField("pkg", "weather")
)

// SetDebugLogging enables or disables verbose logging inside the weather package.
func SetDebugLogging(enabled bool) {
	debugLogging.Store(enabled)
}

func logDebug(format string, args ...interface{}) {
	if debugLogging.Load() {
		logger.Debugf(format, args...)
	}
}
