package db

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"baby-tracker-go/internal/domain/child"
	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/internal/domain/tracking"
	"baby-tracker-go/internal/domain/user"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Models lists every table owned by the service.
func Models() []any {
	return []any{
		&user.Profile{},
		&household.Household{},
		&household.Member{},
		&child.Child{},
		&tracking.SleepRecord{},
		&tracking.FeedingRecord{},
		&tracking.DiaperRecord{},
		&tracking.PumpingRecord{},
		&tracking.Medicine{},
		&tracking.MedicineRecord{},
		&tracking.GrowthRecord{},
		&tracking.TemperatureRecord{},
		&tracking.ActivityRecord{},
	}
}

// Migrate creates the tables from the models, then applies the SQL files that
// gorm tags cannot express (partial unique indexes). Each file runs once.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := ensureSchemaMigrations(db); err != nil {
		return err
	}

	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".sql") {
			files = append(files, name)
		}
	}

	sort.Strings(files)

	for _, name := range files {
		applied, err := isMigrationApplied(db, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		contents, err := fs.ReadFile(migrationFiles, "migrations/"+name)
		if err != nil {
			return err
		}

		for _, statement := range splitStatements(string(contents)) {
			if err := db.Exec(statement).Error; err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
		}

		if err := recordMigration(db, name); err != nil {
			return err
		}
	}

	return nil
}

func ensureSchemaMigrations(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`).Error
}

func isMigrationApplied(db *gorm.DB, name string) (bool, error) {
	var count int64
	if err := db.Raw("SELECT COUNT(1) FROM schema_migrations WHERE filename = ?", name).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func recordMigration(db *gorm.DB, name string) error {
	return db.Exec("INSERT INTO schema_migrations (filename, applied_at) VALUES (?, ?)", name, time.Now().UTC()).Error
}

// splitStatements runs one statement per Exec; the sqlite driver ignores anything after the first.
func splitStatements(sql string) []string {
	parts := strings.Split(sql, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}
	return statements
}
