package validation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-dialogkit/pkg/model"
	"github.com/goliatone/go-dialogkit/pkg/session"
)

const (
	defaultMinPasswordLength = 6
	defaultRequestTimeout    = 10 * time.Second
)

// TokenSource supplies the credential async rules require before they may
// issue a network call.
type TokenSource interface {
	Ensure(ctx context.Context) (string, bool)
}

// Handler implements a single rule. Handlers decide internally whether to
// attach their key to the control; they return an error only for transport or
// configuration problems, never for failed validation.
type Handler func(ctx context.Context, control *Control) error

type rule struct {
	key     model.RuleKey
	message string
	check   Handler
}

// Option customises the engine configuration.
type Option func(*Engine)

// WithTokenSource wires the shared token provider async rules depend on.
func WithTokenSource(tokens TokenSource) Option {
	return func(e *Engine) {
		e.tokens = tokens
	}
}

// WithSession wires the session source consulted by current-user rules.
func WithSession(source session.Source) Option {
	return func(e *Engine) {
		e.session = source
	}
}

// WithHTTPClient overrides the client used for existence checks.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Engine) {
		e.client = client
	}
}

// WithEmailCheckEndpoint points email existence rules at the given URL.
func WithEmailCheckEndpoint(url string) Option {
	return func(e *Engine) {
		e.emailCheckURL = url
	}
}

// WithPasswordCheckEndpoint points the current-password rule at the given URL.
func WithPasswordCheckEndpoint(url string) Option {
	return func(e *Engine) {
		e.passwordCheckURL = url
	}
}

// WithMinPasswordLength overrides the shortPassword threshold.
func WithMinPasswordLength(min int) Option {
	return func(e *Engine) {
		if min > 0 {
			e.minPasswordLen = min
		}
	}
}

// WithRequestTimeout bounds each existence-check request.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		e.timeout = timeout
	}
}

// Engine evaluates validation rules against controls. The registry is built
// once at construction: one key, one handler, declaration order fixed.
type Engine struct {
	rules []rule
	index map[model.RuleKey]int

	tokens           TokenSource
	session          session.Source
	client           *http.Client
	emailCheckURL    string
	passwordCheckURL string
	minPasswordLen   int
	timeout          time.Duration
}

// NewEngine constructs an Engine applying any provided options and registers
// the built-in rules. Registry order here is the message priority order.
func NewEngine(options ...Option) *Engine {
	e := &Engine{
		minPasswordLen: defaultMinPasswordLength,
		timeout:        defaultRequestTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.client == nil {
		e.client = &http.Client{}
	}
	e.registerBuiltins()
	return e
}

func (e *Engine) register(key model.RuleKey, message string, check Handler) {
	e.rules = append(e.rules, rule{key: key, message: message, check: check})
	if e.index == nil {
		e.index = make(map[model.RuleKey]int)
	}
	e.index[key] = len(e.rules) - 1
}

// ApplyRule resolves the handler for key and invokes it. An unknown key is a
// configuration error.
func (e *Engine) ApplyRule(ctx context.Context, control *Control, key model.RuleKey) error {
	if control == nil {
		return fmt.Errorf("validation engine: control is nil")
	}
	idx, ok := e.index[key]
	if !ok {
		return fmt.Errorf("validation engine: no handler registered for rule %q", key)
	}
	return e.rules[idx].check(ctx, control)
}

// CheckInOrder applies the given rule keys one at a time, in the caller's
// order, and stops at the first rule that leaves the control with an attached
// error. Later rules are skipped for this invocation, so cheap local checks
// fence off expensive asynchronous ones.
func (e *Engine) CheckInOrder(ctx context.Context, control *Control, keys ...model.RuleKey) error {
	for _, key := range keys {
		if control != nil && control.HasError() {
			return nil
		}
		if err := e.ApplyRule(ctx, control, key); err != nil {
			return err
		}
	}
	return nil
}

// PrimaryError returns the message of the attached rule that appears earliest
// in the registry, regardless of attachment order. The boolean is false when
// no rule is attached.
func (e *Engine) PrimaryError(control *Control) (string, bool) {
	if control == nil || !control.HasError() {
		return "", false
	}
	for _, entry := range e.rules {
		if control.Has(entry.key) {
			return entry.message, true
		}
	}
	return "", false
}

// Message returns the registered message for a rule key.
func (e *Engine) Message(key model.RuleKey) (string, bool) {
	idx, ok := e.index[key]
	if !ok {
		return "", false
	}
	return e.rules[idx].message, true
}

// ClearAll removes every attached rule and resets the touched/dirty state,
// keeping the current value.
func (e *Engine) ClearAll(control *Control) {
	if control == nil {
		return
	}
	control.Reset(control.Value())
}
