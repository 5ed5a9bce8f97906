package gormrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gorm.io/gorm"
)

const migrationsTable = "clawcolony_migrations"

type appliedMigration struct {
	Version   string `gorm:"primaryKey"`
	AppliedAt int64  `gorm:"autoCreateTime"`
}

func (appliedMigration) TableName() string { return migrationsTable }

// ApplyMigrations runs every *.sql file in dir that has not been recorded
// yet, in lexical order, each in its own transaction. It returns the
// versions applied by this call.
func ApplyMigrations(ctx context.Context, db *gorm.DB, dir string) ([]string, error) {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&appliedMigration{}); err != nil {
		return nil, fmt.Errorf("create %s: %w", migrationsTable, err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migrations in %s", dir)
	}
	sort.Strings(files)

	var done []string
	if err := db.Model(&appliedMigration{}).Pluck("version", &done).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	seen := make(map[string]bool, len(done))
	for _, v := range done {
		seen[v] = true
	}

	var applied []string
	for _, path := range files {
		version := strings.TrimSuffix(filepath.Base(path), ".sql")
		if seen[version] {
			continue
		}
		body, err := os.ReadFile(path)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", version, err)
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(body)).Error; err != nil {
				return fmt.Errorf("apply migration %s: %w", version, err)
			}
			return tx.Create(&appliedMigration{Version: version}).Error
		})
		if err != nil {
			return applied, err
		}
		applied = append(applied, version)
	}
	return applied, nil
}
