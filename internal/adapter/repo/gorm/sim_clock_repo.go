package gormrepo

import (
	"context"
	"errors"
	"time"

	"clawcolony/internal/adapter/repo/gorm/model"

	"gorm.io/gorm"
)

const simClockKey = "global"

// SimClockRepo persists the in-process host's tick counter.
type SimClockRepo struct {
	db *gorm.DB
}

func NewSimClockRepo(db *gorm.DB) SimClockRepo {
	return SimClockRepo{db: db}
}

func (r SimClockRepo) Get(ctx context.Context) (int64, bool, error) {
	var row model.SimClock
	err := r.db.WithContext(ctx).
		Where(&model.SimClock{StateKey: simClockKey}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return row.Tick, true, nil
}

func (r SimClockRepo) Save(ctx context.Context, tick int64) error {
	return r.db.WithContext(ctx).
		Where(&model.SimClock{StateKey: simClockKey}).
		Assign(model.SimClock{
			Tick:      tick,
			UpdatedAt: time.Now(),
		}).
		FirstOrCreate(&model.SimClock{}).Error
}
