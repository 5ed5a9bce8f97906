package gormrepo

import (
	"context"

	"clawcolony/internal/adapter/repo/gorm/model"
	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductionLogRepo struct {
	db *gorm.DB
}

func NewProductionLogRepo(db *gorm.DB) ProductionLogRepo {
	return ProductionLogRepo{db: db}
}

// Append is idempotent on the command id.
func (r ProductionLogRepo) Append(ctx context.Context, rec ports.ProductionRecord) error {
	row := model.ProductionLog{
		CommandID:    rec.CommandID,
		Colony:       rec.Colony,
		Tick:         rec.Tick,
		WorkerID:     int64(rec.WorkerID),
		WorkerName:   rec.WorkerName,
		Role:         string(rec.Role),
		Archetype:    string(rec.Archetype),
		TargetColony: rec.TargetColony,
		NodeID:       rec.NodeID,
		Priority:     int32(rec.Priority),
		Cost:         int32(rec.Cost),
		Parts:        int32(rec.Parts),
		Outcome:      string(rec.Outcome),
		IssuedAt:     rec.IssuedAt,
	}
	return conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (r ProductionLogRepo) ListByColony(ctx context.Context, colonyName string, limit int) ([]ports.ProductionRecord, error) {
	rows := []model.ProductionLog{}
	query := conn(ctx, r.db).
		Where(&model.ProductionLog{Colony: colonyName}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.ProductionRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.ProductionRecord{
			CommandID:    row.CommandID,
			Colony:       row.Colony,
			Tick:         row.Tick,
			WorkerID:     uint64(row.WorkerID),
			WorkerName:   row.WorkerName,
			Role:         colony.Role(row.Role),
			Archetype:    colony.ArchetypeID(row.Archetype),
			TargetColony: row.TargetColony,
			NodeID:       row.NodeID,
			Priority:     int(row.Priority),
			Cost:         int(row.Cost),
			Parts:        int(row.Parts),
			Outcome:      ports.ProductionOutcome(row.Outcome),
			IssuedAt:     row.IssuedAt,
		})
	}
	return out, nil
}
