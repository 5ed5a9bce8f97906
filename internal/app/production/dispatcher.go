package production

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

type Result struct {
	Issued    bool
	Rejected  bool
	Request   colony.ProductionRequest
	CommandID string
	WorkerID  uint64
	Name      string
	Loadout   colony.Loadout
	Memory    colony.Memory
	Skipped   int
}

type Dispatcher struct {
	Facility ports.ProductionFacility
	LogRepo  ports.ProductionLogRepository
	Metrics  ports.SchedulerMetrics
	Logger   *zap.Logger
	Tuning   colony.Tuning
	NewID    func() string
	Now      func() time.Time
}

// Budget is the energy a loadout may be composed against. Once the colony
// is past the critical population it waits for full capacity; below that it
// builds whatever it can afford now.
func (d Dispatcher) Budget(c colony.Colony, population int) int {
	if population >= d.Tuning.CriticalWorkers && c.EnergyCapacity > 0 {
		return c.EnergyCapacity
	}
	return c.EnergyAvailable
}

// Dispatch walks the ordered queue and issues at most one production
// command. A facility refusal ends the walk; nothing here fails the tick.
func (d Dispatcher) Dispatch(ctx context.Context, c colony.Colony, queue []colony.ProductionRequest, roster *Roster, population int) Result {
	logger := d.logger().With(zap.String("colony", c.Name), zap.Int64("tick", c.Tick))
	budget := d.Budget(c, population)
	var res Result

	for _, req := range queue {
		if !req.StillValid() {
			res.Skipped++
			d.skip("stale")
			continue
		}
		loadout := req.Compose(budget)
		if loadout == nil {
			res.Skipped++
			d.skip("unaffordable")
			continue
		}
		cost := loadout.Cost()
		if cost > c.EnergyAvailable {
			res.Skipped++
			d.skip("waiting_for_energy")
			continue
		}

		mem := req.SeedMemory(c.Tick)
		cmd := ports.ProductionCommand{
			ID:      d.newID(),
			Colony:  c.Name,
			Name:    workerName(req, c),
			Loadout: loadout,
			Memory:  mem,
			Tick:    c.Tick,
		}
		res.Request = req
		res.CommandID = cmd.ID
		res.Name = cmd.Name
		res.Loadout = loadout
		res.Memory = mem

		workerID, err := d.Facility.BeginProduction(ctx, cmd)
		rec := ports.ProductionRecord{
			CommandID:    cmd.ID,
			Colony:       c.Name,
			Tick:         c.Tick,
			WorkerName:   cmd.Name,
			Role:         req.Role,
			Archetype:    req.Archetype,
			TargetColony: req.TargetColony,
			NodeID:       req.NodeID,
			Priority:     req.Priority,
			Cost:         cost,
			Parts:        len(loadout),
			IssuedAt:     d.now(),
		}
		if err != nil {
			res.Rejected = true
			rec.Outcome = ports.ProductionRejected
			if errors.Is(err, ports.ErrProductionRejected) {
				logger.Warn("production rejected", zap.String("role", string(req.Role)), zap.Int("cost", cost), zap.Error(err))
			} else {
				logger.Error("production command failed", zap.String("role", string(req.Role)), zap.Error(err))
			}
			if d.Metrics != nil {
				d.Metrics.RecordRejection()
			}
			d.appendLog(ctx, logger, rec)
			return res
		}

		res.Issued = true
		res.WorkerID = workerID
		rec.WorkerID = workerID
		rec.Outcome = ports.ProductionIssued
		roster.Add(colony.Worker{ID: workerID, Name: cmd.Name, Colony: c.Name, Spawning: true, Memory: mem})
		logger.Info("production issued",
			zap.String("command_id", cmd.ID),
			zap.String("worker", cmd.Name),
			zap.Uint64("worker_id", workerID),
			zap.String("role", string(req.Role)),
			zap.Int("priority", req.Priority),
			zap.Int("cost", cost),
			zap.Int("parts", len(loadout)),
			zap.String("target", req.TargetColony),
		)
		if d.Metrics != nil {
			d.Metrics.RecordProduction(req.Role)
		}
		d.appendLog(ctx, logger, rec)
		return res
	}
	return res
}

func (d Dispatcher) appendLog(ctx context.Context, logger *zap.Logger, rec ports.ProductionRecord) {
	if d.LogRepo == nil {
		return
	}
	if err := d.LogRepo.Append(ctx, rec); err != nil {
		logger.Warn("production log append failed", zap.String("command_id", rec.CommandID), zap.Error(err))
	}
}

func (d Dispatcher) skip(reason string) {
	if d.Metrics != nil {
		d.Metrics.RecordSkip(reason)
	}
}

func (d Dispatcher) newID() string {
	if d.NewID != nil {
		return d.NewID()
	}
	return uuid.NewString()
}

func (d Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Dispatcher) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func workerName(req colony.ProductionRequest, c colony.Colony) string {
	site := c.Name
	if req.TargetColony != "" {
		site = req.TargetColony
	}
	return fmt.Sprintf("%s_%s_%d", req.Role, site, c.Tick)
}
