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
	"gorm.io/gorm/clause"
)

type WorkerMemoryRepo struct {
	db *gorm.DB
}

func NewWorkerMemoryRepo(db *gorm.DB) WorkerMemoryRepo {
	return WorkerMemoryRepo{db: db}
}

func (r WorkerMemoryRepo) GetByWorkerID(ctx context.Context, workerID uint64) (colony.Memory, error) {
	var m model.WorkerMemory
	if err := conn(ctx, r.db).Where("worker_id = ?", int64(workerID)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return colony.Memory{}, ports.ErrNotFound
		}
		return colony.Memory{}, err
	}
	return decodeMemory(m)
}

func (r WorkerMemoryRepo) ListByHome(ctx context.Context, home string) (map[uint64]colony.Memory, error) {
	rows := []model.WorkerMemory{}
	if err := conn(ctx, r.db).Where(&model.WorkerMemory{HomeColony: home}).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64]colony.Memory, len(rows))
	for _, row := range rows {
		mem, err := decodeMemory(row)
		if err != nil {
			return nil, err
		}
		out[uint64(row.WorkerID)] = mem
	}
	return out, nil
}

func (r WorkerMemoryRepo) ListWorkerIDs(ctx context.Context) ([]uint64, error) {
	var ids []int64
	if err := conn(ctx, r.db).Model(&model.WorkerMemory{}).Order("worker_id").Pluck("worker_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		out = append(out, uint64(id))
	}
	return out, nil
}

func (r WorkerMemoryRepo) Save(ctx context.Context, workerID uint64, mem colony.Memory) error {
	b, err := json.Marshal(mem)
	if err != nil {
		return fmt.Errorf("encode memory %d: %w", workerID, err)
	}
	row := model.WorkerMemory{
		WorkerID:   int64(workerID),
		HomeColony: mem.HomeColony,
		Role:       string(mem.Role),
		FixedRole:  mem.FixedRole,
		Memory:     b,
		UpdatedAt:  time.Now(),
	}
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "worker_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"home_colony", "role", "fixed_role", "memory", "updated_at"}),
		}).
		Create(&row).Error
}

func (r WorkerMemoryRepo) Delete(ctx context.Context, workerID uint64) error {
	res := conn(ctx, r.db).Where("worker_id = ?", int64(workerID)).Delete(&model.WorkerMemory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func decodeMemory(m model.WorkerMemory) (colony.Memory, error) {
	var mem colony.Memory
	if err := json.Unmarshal(m.Memory, &mem); err != nil {
		return colony.Memory{}, fmt.Errorf("decode memory %d: %w", m.WorkerID, err)
	}
	return mem, nil
}
