package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	httpadapter "clawcolony/internal/adapter/http"
	metricsinmem "clawcolony/internal/adapter/metrics/inmemory"
	gormrepo "clawcolony/internal/adapter/repo/gorm"
	memrepo "clawcolony/internal/adapter/repo/memory"
	redissnapshot "clawcolony/internal/adapter/snapshot/redis"
	"clawcolony/internal/adapter/world/sim"
	"clawcolony/internal/app/commitment"
	"clawcolony/internal/app/inspect"
	"clawcolony/internal/app/ports"
	"clawcolony/internal/app/tick"
	"clawcolony/internal/config"
)

type repos struct {
	memories ports.WorkerMemoryRepository
	states   ports.ColonyStateRepository
	logs     ports.ProductionLogRepository
	tx       ports.TxManager
	clock    sim.TickStore
}

type application struct {
	host    *sim.Host
	loop    tick.Loop
	handler httpadapter.Handler
	closers []func() error
}

func (a *application) Close() {
	for _, c := range a.closers {
		_ = c()
	}
}

func buildRepos(ctx context.Context, cfg config.Config, a *application) (repos, error) {
	if cfg.Database.DSN == "" {
		store := memrepo.NewStore()
		return repos{
			memories: memrepo.NewWorkerMemoryRepo(store),
			states:   memrepo.NewColonyStateRepo(store),
			logs:     memrepo.NewProductionLogRepo(store),
			tx:       memrepo.NewTxManager(store),
		}, nil
	}
	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return repos{}, err
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}
	return repos{
		memories: gormrepo.NewWorkerMemoryRepo(db),
		states:   gormrepo.NewColonyStateRepo(db),
		logs:     gormrepo.NewProductionLogRepo(db),
		tx:       gormrepo.NewTxManager(db),
		clock:    gormrepo.NewSimClockRepo(db),
	}, nil
}

func openDB(ctx context.Context, d config.DatabaseConfig) (*gorm.DB, error) {
	return gormrepo.OpenPostgres(ctx, d.DSN, gormrepo.PoolOptions{
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: time.Duration(d.ConnMaxLifetimeSecond) * time.Second,
	})
}

// buildApplication wires the scheduler against the in-process host. Storage
// is postgres when a DSN is configured and in-memory otherwise.
func buildApplication(ctx context.Context, cfg config.Config, logger *zap.Logger) (*application, error) {
	a := &application{}
	r, err := buildRepos(ctx, cfg, a)
	if err != nil {
		return nil, err
	}

	host := sim.NewHost(sim.Config{
		Owner:        cfg.Sim.Owner,
		Lifetime:     cfg.Sim.Lifetime,
		TicksPerPart: cfg.Sim.TicksPerPart,
		TickStore:    r.clock,
	})
	if err := host.Restore(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("restore host tick: %w", err)
	}
	colonies := cfg.Colonies
	seeded := map[string]bool{}
	for _, seed := range cfg.Sim.Seed {
		host.AddColony(seed.Build(cfg.Sim.Owner))
		seeded[seed.Name] = true
		if len(cfg.Colonies) == 0 {
			colonies = append(colonies, seed.Name)
		}
	}
	for _, name := range colonies {
		if !seeded[name] {
			logger.Warn("managed colony has no sim seed; it will report errors each tick", zap.String("colony", name))
		}
	}
	a.host = host

	recorder := metricsinmem.NewRecorder()
	deps := tick.Deps{
		Host:      host,
		Facility:  host,
		Memories:  r.memories,
		States:    r.states,
		LogRepo:   r.logs,
		TxManager: r.tx,
		Metrics:   recorder,
		Logger:    logger.Named("tick"),
	}
	if cfg.Redis.URL != "" {
		rdb, err := redissnapshot.NewClient(cfg.Redis.URL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		deps.Publisher = redissnapshot.NewPublisher(rdb, redissnapshot.Config{
			Stream: cfg.Redis.Stream,
			TTL:    time.Duration(cfg.Redis.TTLSeconds) * time.Second,
			MaxLen: cfg.Redis.MaxLen,
		})
	}

	runner := tick.NewRunner(cfg.Tuning, colonies, cfg.RemoteColonies, deps)
	executor := sim.Executor{
		Host:      host,
		Actions:   host,
		Memories:  r.memories,
		States:    r.states,
		TxManager: r.tx,
		Committer: commitment.Committer{Actions: host, Logger: logger.Named("commitment")},
		Logger:    logger.Named("executor"),
	}
	a.loop = tick.Loop{
		Runner:   runner,
		Interval: cfg.Server.TickInterval(),
		Logger:   logger.Named("loop"),
		After: []tick.Step{
			func(ctx context.Context, _ tick.Report) error { return executor.Run(ctx) },
			func(ctx context.Context, _ tick.Report) error {
				_, err := host.Advance(ctx)
				return err
			},
		},
	}
	a.handler = httpadapter.Handler{
		InspectUC: inspect.UseCase{
			Memories: r.memories,
			States:   r.states,
			LogRepo:  r.logs,
			Host:     host,
			Tuning:   runner.Tuning,
		},
		KPI:         recorder,
		AllowOrigin: cfg.Server.CORSOrigin,
	}
	return a, nil
}
