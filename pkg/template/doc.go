// Package template maps dialog kinds to ordered field descriptor lists. The
// provider is a pure function of its inputs: every request re-reads the
// settings and session snapshots, rebuilds the descriptors, and hands out a
// fresh copy, so no caller can mutate provider state and no subscription
// graph is needed. Asking for an undeclared kind is a configuration error.
package template
