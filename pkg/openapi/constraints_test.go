package openapi

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dialogkit/pkg/model"
)

const sampleSpec = `
openapi: 3.0.3
info:
  title: Tic-Tac-Toe Service
  version: 1.0.0
paths: {}
components:
  schemas:
    RegistrationRequest:
      type: object
      required: [email, password]
      properties:
        email:
          type: string
          format: email
        password:
          type: string
          minLength: 8
    GameSettings:
      type: object
      properties:
        boardSize:
          type: integer
          minimum: 3
          maximum: 7
        difficulty:
          type: string
          enum: [easy, hard]
`

func mustConstraints(t *testing.T) ConstraintSet {
	t.Helper()
	doc := MustFromBytes([]byte(sampleSpec))
	set, err := doc.Constraints(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return set
}

func TestConstraints_Extraction(t *testing.T) {
	set := mustConstraints(t)

	password, ok := set.Property("RegistrationRequest", "password")
	if !ok {
		t.Fatal("expected a password constraint")
	}
	if password.MinLength == nil || *password.MinLength != 8 {
		t.Fatalf("password minLength mismatch: %+v", password)
	}

	email, ok := set.Property("RegistrationRequest", "email")
	if !ok || email.Format != "email" {
		t.Fatalf("email format mismatch: %+v (ok=%v)", email, ok)
	}

	board, ok := set.Property("GameSettings", "boardSize")
	if !ok || board.Minimum == nil || *board.Minimum != 3 || board.Maximum == nil || *board.Maximum != 7 {
		t.Fatalf("board size bounds mismatch: %+v (ok=%v)", board, ok)
	}
}

func TestConstraints_MinLengthOfFallback(t *testing.T) {
	set := mustConstraints(t)

	if got := set.MinLengthOf("RegistrationRequest", "password", 6); got != 8 {
		t.Fatalf("declared bound must win, got %d", got)
	}
	if got := set.MinLengthOf("RegistrationRequest", "missing", 6); got != 6 {
		t.Fatalf("fallback must apply for unconstrained properties, got %d", got)
	}
}

func TestDecorator_TightensRangeAndOptions(t *testing.T) {
	decorator := NewDecorator(mustConstraints(t))

	fields := []model.FieldDescriptor{
		{Key: "boardSize", Bind: "boardSize", Input: model.InputRange, Min: 3, Max: 10, Default: 9},
		{Key: "difficulty", Bind: "difficulty", Input: model.InputSelect,
			Options: []string{"easy", "medium", "hard"}, Default: "medium"},
	}

	decorated := decorator.Decorate(model.KindGameSetting, fields)

	if decorated[0].Max != 7 {
		t.Fatalf("range max must tighten to the contract, got %d", decorated[0].Max)
	}
	if decorated[0].Default != 7 {
		t.Fatalf("default must clamp into the tightened range, got %v", decorated[0].Default)
	}
	if diff := cmp.Diff([]string{"easy", "hard"}, decorated[1].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestDecorator_UnboundKindPassesThrough(t *testing.T) {
	decorator := NewDecorator(mustConstraints(t), WithBindings(
		Binding{Kind: model.KindGameSetting, Schema: "GameSettings"},
	))

	fields := []model.FieldDescriptor{
		{Key: "email", Bind: "email", Input: model.InputEmail},
	}
	decorated := decorator.Decorate(model.KindLogin, fields)

	if diff := cmp.Diff(fields, decorated); diff != "" {
		t.Fatalf("unbound kinds must pass through untouched (-want +got):\n%s", diff)
	}
}

func TestFromBytes_EmptyPayloadFails(t *testing.T) {
	if _, err := FromBytes(nil); err == nil {
		t.Fatal("expected an error for an empty payload")
	}
}
