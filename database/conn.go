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
	"fmt"
	"sync"

	"github.com/uptrace/bun"
)

var (
	globalMu      sync.RWMutex
	globalFactory *BaseDatabaseFactory
)

// GetDB returns the global Bun database, or nil before InitDB.
func GetDB() *bun.DB {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalFactory == nil {
		return nil
	}
	return globalFactory.GetDB()
}

// GetDatabaseManager returns the global database manager.
func GetDatabaseManager() AbstractDatabaseManager {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalFactory == nil {
		return nil
	}
	return globalFactory.GetManager()
}

// InitDB initializes the global database, migrating when the config asks for it.
func InitDB(cfg *Config) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	return InitDatabaseWithOptions(context.Background(), cfg, cfg.DataMigrateConfig.EnableMigrateOnStartup)
}

// InitDatabaseWithOptions replaces the global database. A previously
// initialized database is closed first.
func InitDatabaseWithOptions(ctx context.Context, cfg *Config, runMigrations bool) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	factory := NewDatabaseFactory()
	if _, err := factory.CreateFromConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := factory.InitializeDatabase(ctx, runMigrations); err != nil {
		_ = factory.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	globalMu.Lock()
	previous := globalFactory
	globalFactory = factory
	globalMu.Unlock()
	if previous != nil {
		_ = previous.Close()
	}
	return factory.GetDB(), nil
}

// CloseDB closes the global database connection.
func CloseDB() error {
	globalMu.Lock()
	factory := globalFactory
	globalFactory = nil
	globalMu.Unlock()
	if factory == nil {
		return nil
	}
	return factory.Close()
}

// GetHealthStatus returns the current health of the global database.
func GetHealthStatus(ctx context.Context) *HealthStatus {
	globalMu.RLock()
	factory := globalFactory
	globalMu.RUnlock()
	if factory == nil {
		return &HealthStatus{LastError: "Database not initialized"}
	}
	return factory.GetHealthStatus(ctx)
}

// GetDatabaseStats returns pool statistics of the global database.
func GetDatabaseStats() *DBStats {
	globalMu.RLock()
	factory := globalFactory
	globalMu.RUnlock()
	if factory == nil {
		return &DBStats{}
	}
	return factory.GetStats()
}

// RunMigrations executes pending migrations on the global database.
func RunMigrations(ctx context.Context) error {
	manager := GetDatabaseManager()
	if manager == nil {
		return fmt.Errorf("database not initialized")
	}
	return manager.RunMigrations(ctx)
}
