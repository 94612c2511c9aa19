/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/uptrace/bun"
)

// MigrationManager applies versioned schema migrations, each in its own
// transaction, and records them in schema_migrations.
type MigrationManager struct {
	db     *bun.DB
	logger Logger
	config DataMigrateConfig
}

// Migration is an applied migration record.
type Migration struct {
	bun.BaseModel `bun:"table:schema_migrations,alias:sm"`

	Version     string    `bun:"version,pk"`
	Name        string    `bun:"name"`
	AppliedAt   time.Time `bun:"applied_at"`
	Description string    `bun:"description"`
}

// MigrationFunc is a migration step executed within a transaction.
type MigrationFunc func(ctx context.Context, db bun.IDB) error

// MigrationItem describes a single migration version.
type MigrationItem struct {
	Version     string
	Name        string
	Description string
	Up          MigrationFunc
}

func NewMigrationManager(db *bun.DB, logger Logger, config DataMigrateConfig) *MigrationManager {
	if logger == nil {
		logger = GetLogger()
	}
	return &MigrationManager{db: db, logger: logger, config: config}
}

// RunMigrations creates the ledger table if needed and executes every pending
// migration in ascending version order. SQL logging is silenced unless
// BUNDEBUG_MIGRATION is set.
func (mm *MigrationManager) RunMigrations(ctx context.Context) error {
	if mm.db == nil {
		return fmt.Errorf("database not initialized")
	}
	if _, ok := os.LookupEnv("BUNDEBUG_MIGRATION"); !ok {
		EnableBunSqlSilent(true)
		defer EnableBunSqlSilent(false)
	}

	if _, err := mm.db.NewCreateTable().Model((*Migration)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations := mm.getAllMigrations()
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	for _, migration := range migrations {
		if err := mm.runMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
		}
	}
	mm.logger.Info("Database migrations completed!")
	return nil
}

func (mm *MigrationManager) getAllMigrations() []MigrationItem {
	return []MigrationItem{
		{
			Version:     "001",
			Name:        "create_base_tables",
			Description: "Create teams, members and sequences",
			Up:          mm.createBaseTables,
		},
		{
			Version:     "002",
			Name:        "create_member_indexes",
			Description: "Index members by username and age",
			Up:          mm.createMemberIndexes,
		},
	}
}

func (mm *MigrationManager) runMigration(ctx context.Context, migration MigrationItem) error {
	exists, err := mm.db.NewSelect().
		Model((*Migration)(nil)).
		Where("version = ?", migration.Version).
		Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = mm.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := migration.Up(ctx, tx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&Migration{
			Version:     migration.Version,
			Name:        migration.Name,
			AppliedAt:   time.Now().UTC(),
			Description: migration.Description,
		}).Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}
	mm.logger.Info("Migration executed successfully", "version", migration.Version, "name", migration.Name)
	return nil
}

func (mm *MigrationManager) createBaseTables(ctx context.Context, db bun.IDB) error {
	var fkManager *ForeignKeyManager
	if mm.config.EnableForeignKey {
		fkManager = NewForeignKeyManager(mm.logger, mm.config.ForeignKeyFile)
		if errs := fkManager.ValidateConstraints(); len(errs) > 0 {
			for _, err := range errs {
				mm.logger.Debug("Foreign key constraint validation failed", "error", err)
			}
			return fmt.Errorf("foreign key constraint validation failed, %d errors in total: %w", len(errs), errors.Join(errs...))
		}
	}

	for _, model := range RegisteredModelInstances() {
		q := db.NewCreateTable().Model(model).IfNotExists()
		if fkManager != nil {
			for _, fk := range fkManager.GetConstraintsByTable(tableName(mm.db, model)) {
				q = fk.apply(q)
				mm.logger.Debug("Declaring foreign key constraint", "constraint", fk.GenerateConstraintName())
			}
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table %T: %w", model, err)
		}
	}
	return nil
}

func (mm *MigrationManager) createMemberIndexes(ctx context.Context, db bun.IDB) error {
	indexes := []struct{ name, column string }{
		{"idx_members_username", "username"},
		{"idx_members_age", "age"},
	}
	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model((*MemberModel)(nil)).
			Index(idx.name).
			Column(idx.column).
			Exec(ctx)
		if err == nil {
			continue
		}
		if is, kind := IsSqlError(err); is && kind == ExistIndexErr {
			mm.logger.Debug("Index already exists", "index", idx.name)
			continue
		}
		return fmt.Errorf("failed to create index %s: %w", idx.name, err)
	}
	return nil
}

// GetAppliedMigrations returns migration records ordered by version.
func (mm *MigrationManager) GetAppliedMigrations(ctx context.Context) ([]Migration, error) {
	var migrations []Migration
	err := mm.db.NewSelect().
		Model(&migrations).
		Order("version ASC").
		Scan(ctx)
	return migrations, err
}
