package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/goliatone/go-dialogkit/pkg/dialog"
	"github.com/goliatone/go-dialogkit/pkg/model"
	"github.com/goliatone/go-dialogkit/pkg/template"
	"github.com/goliatone/go-dialogkit/pkg/validation"
)

// Form orchestrates one dialog's input lifecycle. Activation reads the
// template for the active kind, seeds a control per field from its default
// value, and snapshots those defaults for reset.
type Form struct {
	broker    *dialog.Broker
	templates *template.Provider
	engine    *validation.Engine

	mu       sync.Mutex
	kind     model.Kind
	fields   []model.FieldDescriptor
	controls map[string]*validation.Control
	snapshot map[string]string
}

// New constructs a Form over its three collaborators.
func New(broker *dialog.Broker, templates *template.Provider, engine *validation.Engine) (*Form, error) {
	if broker == nil {
		return nil, errors.New("dialog form: broker is required")
	}
	if templates == nil {
		return nil, errors.New("dialog form: template provider is required")
	}
	if engine == nil {
		return nil, errors.New("dialog form: validation engine is required")
	}
	return &Form{
		broker:    broker,
		templates: templates,
		engine:    engine,
	}, nil
}

// Activate binds the form to a dialog kind: fetches its descriptors, creates
// controls initialised from the default values, links cross-field references,
// and snapshots the initial state.
func (f *Form) Activate(kind model.Kind) error {
	fields, err := f.templates.FieldsFor(kind)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.kind = kind
	f.fields = fields
	f.controls = make(map[string]*validation.Control, len(fields))
	f.snapshot = make(map[string]string, len(fields))

	for _, field := range fields {
		initial := stringify(field.Default)
		f.controls[field.Key] = validation.NewControl(initial)
		f.snapshot[field.Key] = initial
	}
	for _, field := range fields {
		if field.MatchKey == "" {
			continue
		}
		ref, ok := f.controls[field.MatchKey]
		if !ok {
			return fmt.Errorf("dialog form: field %q references unknown field %q", field.Key, field.MatchKey)
		}
		f.controls[field.Key].MatchAgainst(ref)
	}
	return nil
}

// Kind returns the currently bound dialog kind.
func (f *Form) Kind() model.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.kind
}

// Fields returns a copy of the bound descriptors.
func (f *Form) Fields() []model.FieldDescriptor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return model.CloneFields(f.fields)
}

// Control exposes the live control for a field key.
func (f *Form) Control(key string) (*validation.Control, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	control, ok := f.controls[key]
	return control, ok
}

// SetValue updates a field's bound value, as the render layer does on input
// events.
func (f *Form) SetValue(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	control, ok := f.controls[key]
	if !ok {
		return fmt.Errorf("dialog form: unknown field %q", key)
	}
	control.SetValue(value)
	control.MarkTouched()
	return nil
}

// Submit validates every field against its declared rule chain and, only when
// no field carries an error, resolves the broker with the collected values
// keyed by bound property name. The boolean reports whether the dialog
// resolved.
func (f *Form) Submit(ctx context.Context) (bool, error) {
	f.mu.Lock()
	fields := f.fields
	controls := f.controls
	f.mu.Unlock()

	for _, field := range fields {
		control := controls[field.Key]
		f.engine.ClearAll(control)
	}
	for _, field := range fields {
		control := controls[field.Key]
		if err := f.engine.CheckInOrder(ctx, control, field.Validators...); err != nil {
			return false, err
		}
	}

	for _, field := range fields {
		if controls[field.Key].HasError() {
			return false, nil
		}
	}

	values := make(model.Values, len(fields))
	for _, field := range fields {
		values[field.Bind] = restore(field, controls[field.Key].Value())
	}
	f.broker.Resolve(values)
	return true, nil
}

// Reset restores every control to its activation-time snapshot and closes the
// dialog.
func (f *Form) Reset() {
	f.mu.Lock()
	for key, control := range f.controls {
		control.Reset(f.snapshot[key])
	}
	f.mu.Unlock()

	f.broker.Close()
}

// Switch clears every field error before re-activating with the new kind, so
// stale errors never leak across dialog variants.
func (f *Form) Switch(kind model.Kind) error {
	f.mu.Lock()
	for _, control := range f.controls {
		f.engine.ClearAll(control)
	}
	f.mu.Unlock()

	return f.Activate(kind)
}

// Errors reports the primary error per field key for every flagged control.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(map[string]string)
	for key, control := range f.controls {
		if message, ok := f.engine.PrimaryError(control); ok {
			errs[key] = message
		}
	}
	return errs
}

// Run consumes the broker's control channel until ctx is done, dispatching
// submit, reset, and switch signals. Signal handling failures end the loop;
// a failed validation pass keeps the dialog open and the loop running.
func (f *Form) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case signal := <-f.broker.Signals():
			if err := f.handle(ctx, signal); err != nil {
				return err
			}
		}
	}
}

func (f *Form) handle(ctx context.Context, signal dialog.Signal) error {
	switch signal.Kind {
	case dialog.SignalSubmit:
		_, err := f.Submit(ctx)
		return err
	case dialog.SignalReset:
		f.Reset()
		return nil
	case dialog.SignalSwitch:
		return f.Switch(signal.Next)
	default:
		return fmt.Errorf("dialog form: unknown signal %q", signal.Kind)
	}
}

// stringify renders a descriptor default into control form.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// restore converts a submitted control value back into the descriptor's
// natural type, so range fields resolve as numbers.
func restore(field model.FieldDescriptor, value string) any {
	if field.Input != model.InputRange {
		return value
	}
	number, err := strconv.Atoi(value)
	if err != nil {
		return value
	}
	return number
}
