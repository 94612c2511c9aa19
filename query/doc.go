// Package query evaluates the named derived queries over a store snapshot:
// filtering, deterministic ordering, page and slice windows, the bulk age
// update and the MemberDto projection.
package query
