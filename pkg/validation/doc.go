// Package validation implements the ordered, short-circuiting rule engine
// behind dialog forms. Rules live in a single registry whose declaration
// order doubles as message priority: whatever order errors were attached in,
// the registry-first one is the primary error surfaced to the user.
//
// Rule handlers are resolved through a static map built at construction time;
// an unknown rule key is a configuration error and fails loudly. Handlers
// attach error keys to controls, they never return validation failures as Go
// errors. Asynchronous handlers (existence checks) require the shared token
// as a precondition and degrade to a no-op when it is absent.
package validation
