package validation

import (
	"strings"

	"github.com/goliatone/go-dialogkit/pkg/model"
)

// Control holds the live state of a single form input: its bound value, the
// set of currently attached rule keys, and the touched/dirty flags the UI
// layer reads. Multiple rules may be attached at once; the engine decides
// which one is primary.
type Control struct {
	value   string
	touched bool
	dirty   bool
	errors  map[model.RuleKey]struct{}
	match   *Control
}

// NewControl constructs a control with an initial value and no errors.
func NewControl(initial string) *Control {
	return &Control{value: initial}
}

// Value returns the current bound value.
func (c *Control) Value() string {
	return c.value
}

// SetValue updates the bound value and marks the control dirty.
func (c *Control) SetValue(value string) {
	c.value = value
	c.dirty = true
}

// Empty reports whether the trimmed value is blank.
func (c *Control) Empty() bool {
	return strings.TrimSpace(c.value) == ""
}

// MarkTouched records that the user has interacted with the input.
func (c *Control) MarkTouched() {
	c.touched = true
}

// Touched reports whether the input was interacted with.
func (c *Control) Touched() bool {
	return c.touched
}

// Dirty reports whether the value changed since construction or reset.
func (c *Control) Dirty() bool {
	return c.dirty
}

// MatchAgainst links a reference control for cross-field comparison rules.
// Comparison errors attach to this control, never to the reference.
func (c *Control) MatchAgainst(ref *Control) {
	c.match = ref
}

// Attach flags the control with a rule key. Attaching twice is a no-op.
func (c *Control) Attach(key model.RuleKey) {
	if c.errors == nil {
		c.errors = make(map[model.RuleKey]struct{})
	}
	c.errors[key] = struct{}{}
}

// Detach removes a rule key if present.
func (c *Control) Detach(key model.RuleKey) {
	delete(c.errors, key)
}

// Has reports whether a specific rule key is attached.
func (c *Control) Has(key model.RuleKey) bool {
	_, ok := c.errors[key]
	return ok
}

// HasError reports whether any rule key is attached.
func (c *Control) HasError() bool {
	return len(c.errors) > 0
}

// Reset replaces the value and clears errors and the touched/dirty flags.
func (c *Control) Reset(value string) {
	c.value = value
	c.touched = false
	c.dirty = false
	c.errors = nil
}
