// Package entity defines the Member and Team entities, their audit block,
// the MemberDto projection and the Linker that owns the Member/Team association.
package entity
