package openapi

import (
	"github.com/goliatone/go-dialogkit/pkg/model"
)

// Binding ties a dialog kind to the component schema that describes its
// payload on the wire.
type Binding struct {
	Kind   model.Kind
	Schema string
}

// DefaultBindings cover the built-in dialog kinds against the game service's
// conventional schema names.
func DefaultBindings() []Binding {
	return []Binding{
		{Kind: model.KindLogin, Schema: "LoginRequest"},
		{Kind: model.KindRegistration, Schema: "RegistrationRequest"},
		{Kind: model.KindGameSetting, Schema: "GameSettings"},
		{Kind: model.KindAccountSetting, Schema: "AccountSettings"},
	}
}

// DecoratorOption customises the decorator configuration.
type DecoratorOption func(*Decorator)

// WithBindings replaces the kind → schema bindings.
func WithBindings(bindings ...Binding) DecoratorOption {
	return func(d *Decorator) {
		d.bindings = make(map[model.Kind]string, len(bindings))
		for _, binding := range bindings {
			d.bindings[binding.Kind] = binding.Schema
		}
	}
}

// Decorator overlays backend-declared constraints onto descriptor lists. It
// satisfies the template provider's Decorator interface.
type Decorator struct {
	set      ConstraintSet
	bindings map[model.Kind]string
}

// NewDecorator constructs a Decorator over an extracted constraint set,
// defaulting to DefaultBindings.
func NewDecorator(set ConstraintSet, options ...DecoratorOption) *Decorator {
	d := &Decorator{set: set}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	if d.bindings == nil {
		d.bindings = make(map[model.Kind]string)
		for _, binding := range DefaultBindings() {
			d.bindings[binding.Kind] = binding.Schema
		}
	}
	return d
}

// Decorate tightens range bounds and option sets from the bound schema. The
// input slice is owned by the caller (the provider builds it fresh), so the
// overlay mutates in place and returns it.
func (d *Decorator) Decorate(kind model.Kind, fields []model.FieldDescriptor) []model.FieldDescriptor {
	schema, ok := d.bindings[kind]
	if !ok {
		return fields
	}

	for i, field := range fields {
		constraint, ok := d.set.Property(schema, field.Bind)
		if !ok {
			continue
		}

		if field.Input == model.InputRange {
			if constraint.Minimum != nil {
				fields[i].Min = int(*constraint.Minimum)
			}
			if constraint.Maximum != nil {
				fields[i].Max = int(*constraint.Maximum)
			}
			fields[i].Default = clampDefault(field.Default, fields[i].Min, fields[i].Max)
		}

		// Enum constraints narrow select options to the backend's vocabulary,
		// but never widen them past what the session allows.
		if field.Input == model.InputSelect && len(constraint.Enum) > 0 {
			fields[i].Options = intersect(field.Options, constraint.Enum)
		}
	}
	return fields
}

func clampDefault(value any, min, max int) any {
	number, ok := value.(int)
	if !ok {
		return value
	}
	if number < min {
		return min
	}
	if max > min && number > max {
		return max
	}
	return number
}

func intersect(options, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, entry := range allowed {
		allowedSet[entry] = struct{}{}
	}
	kept := options[:0]
	for _, option := range options {
		if _, ok := allowedSet[option]; ok {
			kept = append(kept, option)
		}
	}
	return kept
}
