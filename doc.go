// Package memberdata is an in-process store for members and teams with
// derived queries, paging, auditing and bulk updates. A Service wires the
// repositories together and can flush them to, and reload them from, a
// relational database.
package memberdata
