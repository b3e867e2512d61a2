package overlay

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var (
	debugLogging atomic.Bool
	logger       = logrus.WithField("pkg", "overlay")
)

// SetDebugLogging enables or disables verbose layout logging.
func SetDebugLogging(enabled bool) {
	debugLogging.Store(enabled)
}

func logDebug(format string, args ...interface{}) {
	if debugLogging.Load() {
		logger.Debugf(format, args...)
	}
}
