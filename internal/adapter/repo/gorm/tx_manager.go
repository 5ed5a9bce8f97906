package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

type txCtxKey struct{}

type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

// RunInTx opens a transaction for fn. A call made inside another RunInTx
// joins the outer transaction instead of nesting a savepoint, so a colony
// tick commits or rolls back as one unit.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromCtx(ctx); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txCtxKey{}, tx))
	})
}

func txFromCtx(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// conn returns the transaction bound to ctx, or base scoped to ctx.
func conn(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := txFromCtx(ctx); ok {
		return tx
	}
	return base.WithContext(ctx)
}
