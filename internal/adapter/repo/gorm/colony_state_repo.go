package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clawcolony/internal/adapter/repo/gorm/model"
	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"

	"gorm.io/gorm"
)

type ColonyStateRepo struct {
	db *gorm.DB
}

func NewColonyStateRepo(db *gorm.DB) ColonyStateRepo {
	return ColonyStateRepo{db: db}
}

func (r ColonyStateRepo) GetByColony(ctx context.Context, name string) (colony.ColonyState, error) {
	var m model.ColonyState
	if err := conn(ctx, r.db).Where("colony = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return colony.ColonyState{}, ports.ErrNotFound
		}
		return colony.ColonyState{}, err
	}
	var state colony.ColonyState
	if err := json.Unmarshal(m.State, &state); err != nil {
		return colony.ColonyState{}, fmt.Errorf("decode colony state %s: %w", name, err)
	}
	state.Colony = m.Colony
	state.Version = m.Version
	if state.ReserverTimers == nil {
		state.ReserverTimers = map[string]int64{}
	}
	return state, nil
}

func (r ColonyStateRepo) SaveWithVersion(ctx context.Context, state colony.ColonyState, expectedVersion int64) error {
	db := conn(ctx, r.db)
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode colony state %s: %w", state.Colony, err)
	}
	if expectedVersion == 0 {
		m := model.ColonyState{
			Colony:    state.Colony,
			State:     b,
			Version:   state.Version,
			UpdatedAt: time.Now(),
		}
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	res := db.Model(&model.ColonyState{}).
		Where("colony = ? AND version = ?", state.Colony, expectedVersion).
		Updates(map[string]any{
			"state":      b,
			"version":    state.Version,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
