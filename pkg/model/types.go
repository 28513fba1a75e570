package model

// Kind identifies which form template a modal dialog displays.
type Kind string

const (
	// KindNone marks the idle broker state; no template is declared for it.
	KindNone Kind = ""

	KindLogin          Kind = "login"
	KindRegistration   Kind = "registration"
	KindGameSetting    Kind = "game_setting"
	KindAccountSetting Kind = "account_setting"
)

// InputKind is the simplified enum for form-friendly input widgets.
type InputKind string

const (
	InputText     InputKind = "text"
	InputEmail    InputKind = "email"
	InputPassword InputKind = "password"
	InputRange    InputKind = "range"
	InputSelect   InputKind = "select"
	InputColor    InputKind = "color"
)

// RuleKey names a validation rule in the engine's registry. The declaration
// order of the registry, not the order keys appear here, decides message
// priority.
type RuleKey string

const (
	RuleRequired               RuleKey = "required"
	RuleInvalidEmail           RuleKey = "invalidEmail"
	RuleShortPassword          RuleKey = "shortPassword"
	RulePasswordMismatch       RuleKey = "passwordMismatch"
	RuleEmailInUse             RuleKey = "emailInUse"
	RuleEmailDoesNotExist      RuleKey = "emailDoesNotExist"
	RuleNotCurrentUserEmail    RuleKey = "notCurrentUserEmail"
	RuleNotCurrentUserPassword RuleKey = "notCurrentUserPassword"
)

// FieldDescriptor models an individual input inside a dialog form. Descriptors
// are immutable snapshots: the template provider rebuilds them from its
// dependency state on every request and hands out clones, never the backing
// slice.
type FieldDescriptor struct {
	// Key uniquely identifies the field within its dialog kind.
	Key string `json:"key"`

	Label string    `json:"label,omitempty"`
	Input InputKind `json:"input"`

	// Bind names the property the submitted value is keyed by when the dialog
	// resolves.
	Bind string `json:"bind"`

	// Options lists the selectable values for select inputs.
	Options []string `json:"options,omitempty"`

	// Min and Max bound range inputs. Both are zero for other input kinds.
	Min int `json:"min,omitempty"`
	Max int `json:"max,omitempty"`

	// Default is the initial bound value, derived from external state at
	// template-build time.
	Default any `json:"default,omitempty"`

	// Validators lists rule keys in evaluation order, cheapest first.
	Validators []RuleKey `json:"validators,omitempty"`

	// MatchKey names the reference field for cross-field comparison rules.
	// The rule attaches to this field, never to the referenced one.
	MatchKey string `json:"matchKey,omitempty"`
}

// Clone returns a deep copy so callers can mutate descriptors without
// corrupting the provider's state.
func (d FieldDescriptor) Clone() FieldDescriptor {
	cloned := d
	if len(d.Options) > 0 {
		cloned.Options = append([]string(nil), d.Options...)
	}
	if len(d.Validators) > 0 {
		cloned.Validators = append([]RuleKey(nil), d.Validators...)
	}
	return cloned
}

// CloneFields deep-copies a descriptor list.
func CloneFields(fields []FieldDescriptor) []FieldDescriptor {
	if len(fields) == 0 {
		return nil
	}
	cloned := make([]FieldDescriptor, len(fields))
	for i, field := range fields {
		cloned[i] = field.Clone()
	}
	return cloned
}

// Values carries a resolved form payload keyed by each field's bound property
// name.
type Values map[string]any

// Clone returns a shallow copy of the payload map.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	cloned := make(Values, len(v))
	for k, val := range v {
		cloned[k] = val
	}
	return cloned
}
