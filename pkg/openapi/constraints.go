package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Constraint captures the validation bounds the backend declares for one
// schema property.
type Constraint struct {
	Minimum   *float64
	Maximum   *float64
	MinLength *int
	MaxLength *int
	Format    string
	Enum      []string
}

// ConstraintSet maps component schema name → property name → constraint.
type ConstraintSet map[string]map[string]Constraint

func (c Constraint) empty() bool {
	return c.Minimum == nil && c.Maximum == nil && c.MinLength == nil &&
		c.MaxLength == nil && c.Format == "" && len(c.Enum) == 0
}

// Property looks up a single constraint.
func (s ConstraintSet) Property(schema, property string) (Constraint, bool) {
	properties, ok := s[schema]
	if !ok {
		return Constraint{}, false
	}
	constraint, ok := properties[property]
	return constraint, ok
}

// MinLengthOf returns the declared minimum length for a property, or the
// fallback when the document does not constrain it. The assembler feeds the
// password schema's bound into the validation engine through this.
func (s ConstraintSet) MinLengthOf(schema, property string, fallback int) int {
	constraint, ok := s.Property(schema, property)
	if !ok || constraint.MinLength == nil {
		return fallback
	}
	return *constraint.MinLength
}

// Constraints parses the document with kin-openapi and extracts the
// per-property bounds from every component schema.
func (d Document) Constraints(ctx context.Context) (ConstraintSet, error) {
	raw := d.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return ConstraintSet{}, nil
	}

	set := make(ConstraintSet, len(spec.Components.Schemas))
	for name, ref := range spec.Components.Schemas {
		if ref == nil || ref.Value == nil || len(ref.Value.Properties) == 0 {
			continue
		}
		properties := make(map[string]Constraint, len(ref.Value.Properties))
		for propName, propRef := range ref.Value.Properties {
			if propRef == nil || propRef.Value == nil {
				continue
			}
			constraint := convertConstraint(propRef.Value)
			if !constraint.empty() {
				properties[propName] = constraint
			}
		}
		if len(properties) > 0 {
			set[name] = properties
		}
	}
	return set, nil
}

func convertConstraint(src *openapi3.Schema) Constraint {
	constraint := Constraint{Format: src.Format}

	if src.Min != nil {
		value := *src.Min
		constraint.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		constraint.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		constraint.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		constraint.MaxLength = &value
	}
	for _, entry := range src.Enum {
		if text, ok := entry.(string); ok {
			constraint.Enum = append(constraint.Enum, text)
		}
	}
	return constraint
}
