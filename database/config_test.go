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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
connection:
  type: postgresql
  host: db.internal
  port: 5432
  username: app
  dbname: members
  slow_query_time: 500ms
  max_open_conns: 20
migrate:
  enable_migrate_on_startup: true
  enable_foreign_key: false
init:
  auto_init_on_startup: true
  filepath: configs/seed.yaml
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.ConnectionConfig.Type)
	require.Equal(t, "db.internal", cfg.ConnectionConfig.Host)
	require.Equal(t, 5432, cfg.ConnectionConfig.Port)
	require.Equal(t, 500*time.Millisecond, cfg.ConnectionConfig.SlowQueryTime)
	require.Equal(t, 20, cfg.ConnectionConfig.MaxOpenConns)
	require.Equal(t, 10, cfg.ConnectionConfig.MaxIdleConns)
	require.False(t, cfg.DataMigrateConfig.EnableForeignKey)
	require.True(t, cfg.DataInitConfig.AutoInitOnStartup)
	require.Equal(t, "configs/seed.yaml", cfg.DataInitConfig.Filepath)
}

func TestLoadConfigAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))
	t.Setenv("DB_HOST", "override.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_ENABLE_QUERY_LOG", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "override.internal", cfg.ConnectionConfig.Host)
	require.Equal(t, 6543, cfg.ConnectionConfig.Port)
	require.True(t, cfg.ConnectionConfig.EnableQueryLog)
}

func TestParseConfigRejectsUnknownType(t *testing.T) {
	_, err := ParseConfig([]byte("connection:\n  type: oracle\n  dbname: x\n"))
	require.Error(t, err)

	_, err = ParseConfig([]byte("connection:\n  type: mysql\n  dbname: x\n"))
	require.Error(t, err, "mysql needs a host")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
