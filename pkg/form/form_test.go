package form

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dialogkit/pkg/dialog"
	"github.com/goliatone/go-dialogkit/pkg/model"
	"github.com/goliatone/go-dialogkit/pkg/session"
	"github.com/goliatone/go-dialogkit/pkg/settings"
	"github.com/goliatone/go-dialogkit/pkg/template"
	"github.com/goliatone/go-dialogkit/pkg/validation"
)

func newTestForm(t *testing.T) (*Form, *dialog.Broker) {
	t.Helper()
	broker := dialog.NewBroker()
	provider := template.New(
		template.WithSettings(settings.NewStore()),
		template.WithSession(session.NewState()),
	)
	engine := validation.NewEngine()

	f, err := New(broker, provider, engine)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f, broker
}

func TestActivate_BindsDefaults(t *testing.T) {
	f, _ := newTestForm(t)

	if err := f.Activate(model.KindGameSetting); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	control, ok := f.Control("boardSize")
	if !ok {
		t.Fatal("expected a control for boardSize")
	}
	if got := control.Value(); got != "3" {
		t.Fatalf("default binding mismatch: got %q", got)
	}
}

func TestSubmit_ValidationFailureKeepsDialogOpen(t *testing.T) {
	f, broker := newTestForm(t)
	future := broker.Open(model.KindRegistration, nil)
	if err := f.Activate(model.KindRegistration); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolved, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved {
		t.Fatal("empty required fields must block resolution")
	}
	if !broker.Pending() {
		t.Fatal("dialog must stay open after a failed submit")
	}

	errs := f.Errors()
	if errs["email"] != "This field is required" {
		t.Fatalf("expected the required message for email, got %q", errs["email"])
	}

	select {
	case outcome := <-future:
		t.Fatalf("future must not settle on failed validation, got %+v", outcome)
	default:
	}
}

func TestSubmit_ResolvesWithBoundValues(t *testing.T) {
	f, broker := newTestForm(t)
	future := broker.Open(model.KindGameSetting, nil)
	if err := f.Activate(model.KindGameSetting); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.SetValue("boardSize", "5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.SetValue("difficulty", "hard"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolved, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved {
		t.Fatalf("expected resolution, errors: %v", f.Errors())
	}

	outcome := <-future
	values, ok := outcome.Value.(model.Values)
	if !ok {
		t.Fatalf("outcome value type mismatch: %T", outcome.Value)
	}
	want := model.Values{
		"boardSize":      5,
		"difficulty":     "hard",
		"opponent":       settings.OpponentPlayer,
		"playerOneColor": "#e94f37",
		"playerTwoColor": "#393e41",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if broker.Active() != model.KindNone {
		t.Fatal("resolution must close the dialog")
	}
}

func TestSubmit_CrossFieldMismatch(t *testing.T) {
	f, _ := newTestForm(t)
	if err := f.Activate(model.KindRegistration); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.SetValue("email", "new@example.com")
	f.SetValue("password", "abc123")
	f.SetValue("passwordConfirm", "abc124")

	resolved, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved {
		t.Fatal("mismatched passwords must block resolution")
	}

	confirm, _ := f.Control("passwordConfirm")
	if !confirm.Has(model.RulePasswordMismatch) {
		t.Fatal("expected passwordMismatch on the confirmation control")
	}
	primary, _ := f.Control("password")
	if primary.HasError() {
		t.Fatal("the reference control must stay clean")
	}
}

func TestReset_RestoresSnapshotAndCloses(t *testing.T) {
	f, broker := newTestForm(t)
	future := broker.Open(model.KindGameSetting, nil)
	if err := f.Activate(model.KindGameSetting); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.SetValue("boardSize", "7")
	f.Reset()

	control, _ := f.Control("boardSize")
	if got := control.Value(); got != "3" {
		t.Fatalf("reset must restore the activation snapshot, got %q", got)
	}

	outcome := <-future
	if outcome.Interrupted || outcome.Value != nil {
		t.Fatalf("reset must close with a nil resolution, got %+v", outcome)
	}
}

func TestSwitch_ClearsErrorsAcrossVariants(t *testing.T) {
	f, _ := newTestForm(t)
	if err := f.Activate(model.KindLogin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Errors()) == 0 {
		t.Fatal("expected errors on the empty login form")
	}

	if err := f.Switch(model.KindRegistration); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.Kind(); got != model.KindRegistration {
		t.Fatalf("kind mismatch after switch: got %q", got)
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("stale errors leaked across the switch: %v", f.Errors())
	}
}

func TestRun_DispatchesSignals(t *testing.T) {
	f, broker := newTestForm(t)
	future := broker.Open(model.KindGameSetting, nil)
	if err := f.Activate(model.KindGameSetting); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- f.Run(ctx)
	}()

	f.SetValue("boardSize", "4")
	broker.Trigger(dialog.Signal{Kind: dialog.SignalSubmit})

	select {
	case outcome := <-future:
		values, ok := outcome.Value.(model.Values)
		if !ok || values["boardSize"] != 4 {
			t.Fatalf("unexpected outcome: %+v", outcome)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("submit signal was not dispatched")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("run should end with context cancellation, got %v", err)
	}
}
