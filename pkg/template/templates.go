package template

import (
	"github.com/goliatone/go-dialogkit/pkg/model"
	"github.com/goliatone/go-dialogkit/pkg/settings"
)

// Board-size bounds for the range input. The OpenAPI decorator may tighten
// them from the backend contract.
const (
	minBoardSize = 3
	maxBoardSize = 10
)

func (p *Provider) registerBuiltins() {
	p.register(model.KindLogin, buildLogin)
	p.register(model.KindRegistration, buildRegistration)
	p.register(model.KindGameSetting, buildGameSetting)
	p.register(model.KindAccountSetting, buildAccountSetting)
}

func buildLogin(_ settings.Snapshot, _ sessionInfo) []model.FieldDescriptor {
	return []model.FieldDescriptor{
		{
			Key:   "email",
			Label: "Email",
			Input: model.InputEmail,
			Bind:  "email",
			Validators: []model.RuleKey{
				model.RuleRequired,
				model.RuleInvalidEmail,
				model.RuleEmailDoesNotExist,
			},
		},
		{
			Key:   "password",
			Label: "Password",
			Input: model.InputPassword,
			Bind:  "password",
			Validators: []model.RuleKey{
				model.RuleRequired,
			},
		},
	}
}

func buildRegistration(_ settings.Snapshot, _ sessionInfo) []model.FieldDescriptor {
	return []model.FieldDescriptor{
		{
			Key:   "email",
			Label: "Email",
			Input: model.InputEmail,
			Bind:  "email",
			Validators: []model.RuleKey{
				model.RuleRequired,
				model.RuleInvalidEmail,
				model.RuleEmailInUse,
			},
		},
		{
			Key:   "password",
			Label: "Password",
			Input: model.InputPassword,
			Bind:  "password",
			Validators: []model.RuleKey{
				model.RuleRequired,
				model.RuleShortPassword,
			},
		},
		{
			Key:      "passwordConfirm",
			Label:    "Confirm password",
			Input:    model.InputPassword,
			Bind:     "passwordConfirm",
			MatchKey: "password",
			Validators: []model.RuleKey{
				model.RuleRequired,
				model.RulePasswordMismatch,
			},
		},
	}
}

// buildGameSetting derives defaults from the settings snapshot. The opponent
// option set depends on the session: anonymous users play locally only, so
// any stored online/computer preference is ignored until they sign in.
func buildGameSetting(snap settings.Snapshot, info sessionInfo) []model.FieldDescriptor {
	opponents := []string{settings.OpponentPlayer}
	if info.authenticated {
		opponents = append(opponents, settings.OpponentComputer, settings.OpponentOnline)
	}

	return []model.FieldDescriptor{
		{
			Key:     "boardSize",
			Label:   "Board size",
			Input:   model.InputRange,
			Bind:    "boardSize",
			Min:     minBoardSize,
			Max:     maxBoardSize,
			Default: clampInt(snap.BoardSize, minBoardSize, maxBoardSize),
			Validators: []model.RuleKey{
				model.RuleRequired,
			},
		},
		{
			Key:     "difficulty",
			Label:   "Difficulty",
			Input:   model.InputSelect,
			Bind:    "difficulty",
			Options: []string{settings.DifficultyEasy, settings.DifficultyMedium, settings.DifficultyHard},
			Default: memberOr(snap.Difficulty, settings.DifficultyMedium,
				settings.DifficultyEasy, settings.DifficultyMedium, settings.DifficultyHard),
			Validators: []model.RuleKey{
				model.RuleRequired,
			},
		},
		{
			Key:     "opponent",
			Label:   "Opponent",
			Input:   model.InputSelect,
			Bind:    "opponent",
			Options: opponents,
			Default: memberOr(snap.Opponent, settings.OpponentPlayer, opponents...),
			Validators: []model.RuleKey{
				model.RuleRequired,
			},
		},
		{
			Key:     "playerOneColor",
			Label:   "Player one color",
			Input:   model.InputColor,
			Bind:    "playerOneColor",
			Default: snap.PlayerOneColor,
			Validators: []model.RuleKey{
				model.RuleRequired,
			},
		},
		{
			Key:     "playerTwoColor",
			Label:   "Player two color",
			Input:   model.InputColor,
			Bind:    "playerTwoColor",
			Default: snap.PlayerTwoColor,
			Validators: []model.RuleKey{
				model.RuleRequired,
			},
		},
	}
}

func buildAccountSetting(_ settings.Snapshot, info sessionInfo) []model.FieldDescriptor {
	return []model.FieldDescriptor{
		{
			Key:     "email",
			Label:   "Current email",
			Input:   model.InputEmail,
			Bind:    "email",
			Default: info.email,
			Validators: []model.RuleKey{
				model.RuleRequired,
				model.RuleInvalidEmail,
				model.RuleNotCurrentUserEmail,
			},
		},
		{
			Key:   "currentPassword",
			Label: "Current password",
			Input: model.InputPassword,
			Bind:  "currentPassword",
			Validators: []model.RuleKey{
				model.RuleRequired,
				model.RuleNotCurrentUserPassword,
			},
		},
		{
			Key:   "password",
			Label: "New password",
			Input: model.InputPassword,
			Bind:  "password",
			Validators: []model.RuleKey{
				model.RuleRequired,
				model.RuleShortPassword,
			},
		},
		{
			Key:      "passwordConfirm",
			Label:    "Confirm new password",
			Input:    model.InputPassword,
			Bind:     "passwordConfirm",
			MatchKey: "password",
			Validators: []model.RuleKey{
				model.RuleRequired,
				model.RulePasswordMismatch,
			},
		},
	}
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// memberOr keeps value when it belongs to the option set, otherwise the
// fallback. Stored settings can reference options the current session does
// not offer.
func memberOr(value, fallback string, options ...string) string {
	for _, option := range options {
		if option == value {
			return value
		}
	}
	return fallback
}
