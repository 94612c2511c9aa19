// Package database persists snapshots of the member and team stores through
// Bun. It owns connection management, configuration loading, versioned
// migrations, foreign keys, query logging hooks and SQL error translation.
package database
