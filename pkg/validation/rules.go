package validation

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-dialogkit/pkg/model"
)

var formatChecker = validator.New()

// registerBuiltins declares every rule the engine ships with. Declaration
// order is load-bearing: it fixes the primary-error priority.
func (e *Engine) registerBuiltins() {
	e.register(model.RuleRequired, "This field is required", e.checkRequired)
	e.register(model.RuleInvalidEmail, "Invalid email format", e.checkInvalidEmail)
	e.register(model.RuleShortPassword,
		fmt.Sprintf("Password must be at least %d characters", e.minPasswordLen),
		e.checkShortPassword)
	e.register(model.RulePasswordMismatch, "Passwords do not match", e.checkPasswordMismatch)
	e.register(model.RuleEmailInUse, "This email is already in use", e.checkEmailInUse)
	e.register(model.RuleEmailDoesNotExist, "No account exists for this email", e.checkEmailDoesNotExist)
	e.register(model.RuleNotCurrentUserEmail, "Not your current email address", e.checkNotCurrentUserEmail)
	e.register(model.RuleNotCurrentUserPassword, "Incorrect current password", e.checkNotCurrentUserPassword)
}

func (e *Engine) checkRequired(ctx context.Context, control *Control) error {
	if control.Empty() {
		control.Attach(model.RuleRequired)
	}
	return nil
}

// Empty values are left to the required rule; format rules validate content
// only.
func (e *Engine) checkInvalidEmail(ctx context.Context, control *Control) error {
	if control.Empty() {
		return nil
	}
	if err := formatChecker.VarCtx(ctx, control.Value(), "email"); err != nil {
		if _, ok := err.(validator.ValidationErrors); !ok {
			return fmt.Errorf("validation engine: email format check: %w", err)
		}
		control.Attach(model.RuleInvalidEmail)
	}
	return nil
}

func (e *Engine) checkShortPassword(ctx context.Context, control *Control) error {
	if control.Empty() {
		return nil
	}
	if len(control.Value()) < e.minPasswordLen {
		control.Attach(model.RuleShortPassword)
	}
	return nil
}

// checkPasswordMismatch attaches to the confirmation control only, and only
// when both it and its reference are non-empty and unequal.
func (e *Engine) checkPasswordMismatch(ctx context.Context, control *Control) error {
	ref := control.match
	if ref == nil {
		return nil
	}
	if control.Empty() || ref.Empty() {
		return nil
	}
	if control.Value() != ref.Value() {
		control.Attach(model.RulePasswordMismatch)
	}
	return nil
}

func (e *Engine) checkEmailInUse(ctx context.Context, control *Control) error {
	exists, checked := e.emailExists(ctx, control.Value())
	if checked && exists {
		control.Attach(model.RuleEmailInUse)
	}
	return nil
}

func (e *Engine) checkEmailDoesNotExist(ctx context.Context, control *Control) error {
	exists, checked := e.emailExists(ctx, control.Value())
	if checked && !exists {
		control.Attach(model.RuleEmailDoesNotExist)
	}
	return nil
}

func (e *Engine) checkNotCurrentUserEmail(ctx context.Context, control *Control) error {
	if e.session == nil || !e.session.Authenticated() {
		return nil
	}
	if control.Empty() {
		return nil
	}
	if control.Value() != e.session.Email() {
		control.Attach(model.RuleNotCurrentUserEmail)
	}
	return nil
}

func (e *Engine) checkNotCurrentUserPassword(ctx context.Context, control *Control) error {
	valid, checked := e.passwordMatches(ctx, control.Value())
	if checked && !valid {
		control.Attach(model.RuleNotCurrentUserPassword)
	}
	return nil
}
