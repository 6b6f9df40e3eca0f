package logger

import (
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes SQL logging through the process logger. Debug mode logs every
// statement, otherwise only slow queries and errors are reported.
func GormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	return gormlogger.New(Logger(), gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
