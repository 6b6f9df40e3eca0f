package metrics

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const timerKey = "metrics:db_timer"

// RegisterGormCallbacks times every statement gorm issues on db and counts failures.
// Record-not-found is not counted as an error.
func RegisterGormCallbacks(db *gorm.DB, service string) error {
	cb := db.Callback()
	steps := []struct {
		op     DbOperation
		before func(name string, fn func(*gorm.DB)) error
		after  func(name string, fn func(*gorm.DB)) error
	}{
		{DbOpInsert,
			func(n string, fn func(*gorm.DB)) error { return cb.Create().Before("gorm:create").Register(n, fn) },
			func(n string, fn func(*gorm.DB)) error { return cb.Create().After("gorm:create").Register(n, fn) }},
		{DbOpSelect,
			func(n string, fn func(*gorm.DB)) error { return cb.Query().Before("gorm:query").Register(n, fn) },
			func(n string, fn func(*gorm.DB)) error { return cb.Query().After("gorm:query").Register(n, fn) }},
		{DbOpUpdate,
			func(n string, fn func(*gorm.DB)) error { return cb.Update().Before("gorm:update").Register(n, fn) },
			func(n string, fn func(*gorm.DB)) error { return cb.Update().After("gorm:update").Register(n, fn) }},
		{DbOpDelete,
			func(n string, fn func(*gorm.DB)) error { return cb.Delete().Before("gorm:delete").Register(n, fn) },
			func(n string, fn func(*gorm.DB)) error { return cb.Delete().After("gorm:delete").Register(n, fn) }},
		{DbOpRaw,
			func(n string, fn func(*gorm.DB)) error { return cb.Row().Before("gorm:row").Register(n, fn) },
			func(n string, fn func(*gorm.DB)) error { return cb.Row().After("gorm:row").Register(n, fn) }},
	}

	for _, step := range steps {
		op := step.op
		if err := step.before("metrics:before_"+string(op), func(tx *gorm.DB) {
			tx.InstanceSet(timerKey, NewDbTimer(service, op, tx.Statement.Table))
		}); err != nil {
			return fmt.Errorf("failed to register %s metrics callback: %w", op, err)
		}
		if err := step.after("metrics:after_"+string(op), func(tx *gorm.DB) {
			if v, ok := tx.InstanceGet(timerKey); ok {
				if timer, ok := v.(*DbTimer); ok {
					timer.table = tx.Statement.Table
					timer.ObserveDuration()
				}
			}
			if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
				RecordDbError(service, op)
			}
		}); err != nil {
			return fmt.Errorf("failed to register %s metrics callback: %w", op, err)
		}
	}

	return nil
}
