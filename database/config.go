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
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tomoncle/memberdata/utils"
)

var supportedTypes = []string{"mysql", "postgres", "sqlite"}

// LoadConfig reads a YAML config file on top of DefaultConfig and then applies
// DB_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML config bytes and applies environment overrides.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	ApplyEnvOverrides(&cfg.ConnectionConfig)
	if err := cfg.ConnectionConfig.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the connection type and the fields it requires.
func (c *ConnectionConfig) Validate() error {
	c.Type = normalizeType(c.Type)
	supported := false
	for _, t := range supportedTypes {
		if c.Type == t {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database type: %s, supported types: %v", c.Type, supportedTypes)
	}
	if strings.TrimSpace(c.DBName) == "" {
		return fmt.Errorf("database name cannot be empty")
	}
	if c.Type != "sqlite" && c.Host == "" {
		return fmt.Errorf("database host cannot be empty for %s", c.Type)
	}
	return nil
}

func normalizeType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "postgresql", "pg":
		return "postgres"
	case "sqlite3":
		return "sqlite"
	default:
		return strings.ToLower(strings.TrimSpace(t))
	}
}

// ApplyEnvOverrides overrides connection settings from DB_* environment
// variables. Durations are given in seconds.
func ApplyEnvOverrides(cfg *ConnectionConfig) {
	cfg.Type = utils.EnvDefaultString("DB_TYPE", cfg.Type)
	cfg.Host = utils.EnvDefaultString("DB_HOST", cfg.Host)
	cfg.Port = utils.EnvDefaultInt("DB_PORT", cfg.Port)
	cfg.Username = utils.EnvDefaultString("DB_USERNAME", cfg.Username)
	cfg.Password = utils.EnvDefaultString("DB_PASSWORD", cfg.Password)
	cfg.DBName = utils.EnvDefaultString("DB_NAME", cfg.DBName)
	cfg.SSLMode = utils.EnvDefaultString("DB_SSLMODE", cfg.SSLMode)

	cfg.MaxIdleConns = utils.EnvDefaultInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns)
	cfg.MaxOpenConns = utils.EnvDefaultInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns)
	cfg.ConnMaxLifetime = utils.EnvDefaultSeconds("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime)

	cfg.EnableQueryLog = utils.EnvDefaultBool("DB_ENABLE_QUERY_LOG", cfg.EnableQueryLog)
	cfg.SlowQueryTime = utils.EnvDefaultSeconds("DB_SLOW_QUERY_TIME", cfg.SlowQueryTime)
}
