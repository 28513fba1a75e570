package template

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dialogkit/pkg/model"
	"github.com/goliatone/go-dialogkit/pkg/session"
	"github.com/goliatone/go-dialogkit/pkg/settings"
)

func fieldByKey(t *testing.T, fields []model.FieldDescriptor, key string) model.FieldDescriptor {
	t.Helper()
	for _, field := range fields {
		if field.Key == key {
			return field
		}
	}
	t.Fatalf("field %q not found", key)
	return model.FieldDescriptor{}
}

func TestFieldsFor_UnknownKindFails(t *testing.T) {
	provider := New()

	_, err := provider.FieldsFor(model.Kind("no_such_dialog"))
	if err == nil {
		t.Fatal("expected a configuration error for an undeclared kind")
	}
	if !strings.Contains(err.Error(), "no_such_dialog") {
		t.Fatalf("error should name the kind, got %v", err)
	}
}

func TestFieldsFor_UnauthenticatedOpponentOptions(t *testing.T) {
	store := settings.NewStore()
	// A stored online preference must not leak into anonymous sessions.
	store.Update(func(s *settings.Snapshot) {
		s.Opponent = settings.OpponentOnline
	})

	provider := New(WithSettings(store), WithSession(session.NewState()))

	fields, err := provider.FieldsFor(model.KindGameSetting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opponent := fieldByKey(t, fields, "opponent")
	if diff := cmp.Diff([]string{settings.OpponentPlayer}, opponent.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if opponent.Default != settings.OpponentPlayer {
		t.Fatalf("default mismatch: got %v", opponent.Default)
	}
}

func TestFieldsFor_AuthenticatedOpponentOptions(t *testing.T) {
	store := settings.NewStore()
	store.Update(func(s *settings.Snapshot) {
		s.Opponent = settings.OpponentComputer
	})
	state := session.NewState()
	state.Login("player@example.com")

	provider := New(WithSettings(store), WithSession(state))

	fields, err := provider.FieldsFor(model.KindGameSetting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opponent := fieldByKey(t, fields, "opponent")
	want := []string{settings.OpponentPlayer, settings.OpponentComputer, settings.OpponentOnline}
	if diff := cmp.Diff(want, opponent.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if opponent.Default != settings.OpponentComputer {
		t.Fatalf("stored opponent should survive under auth, got %v", opponent.Default)
	}
}

func TestFieldsFor_DefaultsTrackSettings(t *testing.T) {
	store := settings.NewStore()
	provider := New(WithSettings(store))

	fields, err := provider.FieldsFor(model.KindGameSetting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fieldByKey(t, fields, "boardSize").Default; got != 3 {
		t.Fatalf("initial board size default: got %v", got)
	}

	store.Update(func(s *settings.Snapshot) {
		s.BoardSize = 5
	})

	fields, err = provider.FieldsFor(model.KindGameSetting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fieldByKey(t, fields, "boardSize").Default; got != 5 {
		t.Fatalf("defaults must be recomputed per call, got %v", got)
	}
}

func TestFieldsFor_ReturnsFreshCopies(t *testing.T) {
	provider := New()

	first, err := provider.FieldsFor(model.KindGameSetting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first[0].Key = "corrupted"
	if len(first[1].Options) > 0 {
		first[1].Options[0] = "corrupted"
	}

	second, err := provider.FieldsFor(model.KindGameSetting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second[0].Key == "corrupted" {
		t.Fatal("caller mutation leaked into the provider")
	}
	if len(second[1].Options) > 0 && second[1].Options[0] == "corrupted" {
		t.Fatal("option slice is shared between calls")
	}
}

func TestFieldsFor_RegistrationDeclaresCrossFieldRule(t *testing.T) {
	provider := New()

	fields, err := provider.FieldsFor(model.KindRegistration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	confirm := fieldByKey(t, fields, "passwordConfirm")
	if confirm.MatchKey != "password" {
		t.Fatalf("confirmation field must reference the password field, got %q", confirm.MatchKey)
	}
	want := []model.RuleKey{model.RuleRequired, model.RulePasswordMismatch}
	if diff := cmp.Diff(want, confirm.Validators); diff != "" {
		t.Fatalf("validators mismatch (-want +got):\n%s", diff)
	}
}

func TestKinds_Vocabulary(t *testing.T) {
	provider := New()

	want := []model.Kind{
		model.KindAccountSetting,
		model.KindGameSetting,
		model.KindLogin,
		model.KindRegistration,
	}
	if diff := cmp.Diff(want, provider.Kinds()); diff != "" {
		t.Fatalf("kind vocabulary mismatch (-want +got):\n%s", diff)
	}
}
