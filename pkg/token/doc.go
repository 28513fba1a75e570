// Package token provides the single-flight CSRF token provider. Concurrent
// callers that need a token while none is cached collapse into one underlying
// fetch; every caller observes the same outcome. A failed fetch resolves all
// waiters with an absent token and leaves the cache empty so the next demand
// retries lazily.
package token
