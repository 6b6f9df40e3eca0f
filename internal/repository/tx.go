package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// runInTx runs fn inside a store transaction. A repository already bound to an outer
// transaction (WithTx) runs fn on that transaction, leaving commit to the owner.
func runInTx(ctx context.Context, db *gorm.DB, bound bool, op string, fn func(tx *gorm.DB) error) error {
	var err error
	if bound {
		err = fn(db.WithContext(ctx))
	} else {
		err = db.WithContext(ctx).Transaction(fn)
	}
	if err == nil || isKnown(err) {
		return err
	}
	return storeError(op, err)
}

func isKnown(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrStoreUnavailable)
}

// forUpdate locks the selected row on postgres. sqlite has no row locks; the single
// connection already serializes writers.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Transaction runs fn in a new store transaction. Failures that are not one of the
// package's sentinels come back wrapped in ErrStoreUnavailable.
func Transaction(ctx context.Context, db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	return runInTx(ctx, db, false, op, fn)
}
