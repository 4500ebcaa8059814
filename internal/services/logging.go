package services

import (
	"time"

	"github.com/wzsamuels/budget-project/internal/logger"
)

// logDuration logs how long an operation took at debug level.
func logDuration(op string, start time.Time, keysAndValues ...interface{}) {
	fields := append([]interface{}{"op", op, "duration_ms", time.Since(start).Milliseconds()}, keysAndValues...)
	logger.Named("services").Debugw("timing", fields...)
}
