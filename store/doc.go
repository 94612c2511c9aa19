// Package store provides a generic in-memory entity container that assigns
// identities on insert and hands out references to the canonical entities.
package store
