// Package audit stamps creation and modification metadata on entities. The
// acting user and the current time come from pluggable providers.
package audit
