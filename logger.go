package epicycle

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called while engines on other goroutines are logging.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger configures the logger used by the package.
// By default, nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [zap.DebugLevel]: construction details (sample length, transform, retained components)
//   - [zap.InfoLevel]: playback finished
//   - [zap.WarnLevel]: a frame could not be rendered
//
// Example:
//
//	l, _ := zap.NewDevelopment()
//	epicycle.SetLogger(l)
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return loggerPtr.Load()
}
