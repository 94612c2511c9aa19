// Package repository provides the Member and Team repository facades: CRUD
// with auditing, derived member queries, paging and bulk updates over the
// in-memory entity stores.
package repository
