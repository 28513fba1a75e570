// Package dialogkit assembles the dialog broker, field template provider,
// validation engine, single-flight token provider, and dialog form into one
// explicitly constructed kit. Nothing here is a global: the caller builds a
// Kit once and passes its components down, controlling every lifetime.
package dialogkit

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goliatone/go-dialogkit/pkg/dialog"
	"github.com/goliatone/go-dialogkit/pkg/form"
	"github.com/goliatone/go-dialogkit/pkg/model"
	"github.com/goliatone/go-dialogkit/pkg/openapi"
	"github.com/goliatone/go-dialogkit/pkg/session"
	"github.com/goliatone/go-dialogkit/pkg/settings"
	"github.com/goliatone/go-dialogkit/pkg/template"
	"github.com/goliatone/go-dialogkit/pkg/token"
	"github.com/goliatone/go-dialogkit/pkg/validation"
)

// Convenience aliases so most callers only import the root package.
type (
	Kind            = model.Kind
	FieldDescriptor = model.FieldDescriptor
	Values          = model.Values
	Outcome         = dialog.Outcome
	Signal          = dialog.Signal
)

// Re-exported dialog kinds.
const (
	KindLogin          = model.KindLogin
	KindRegistration   = model.KindRegistration
	KindGameSetting    = model.KindGameSetting
	KindAccountSetting = model.KindAccountSetting
)

// Re-exported control signals.
const (
	SignalSubmit = dialog.SignalSubmit
	SignalReset  = dialog.SignalReset
	SignalSwitch = dialog.SignalSwitch
)

// Option customises the kit configuration.
type Option func(*config)

type config struct {
	httpClient       *http.Client
	tokenEndpoint    string
	emailCheckURL    string
	passwordCheckURL string
	settingsStore    *settings.Store
	sessionState     *session.State
	contract         *openapi.Document
	tokenOptions     []token.Option
	engineOptions    []validation.Option
	brokerOptions    []dialog.Option
}

// WithHTTPClient sets the client used for existence checks. The token fetch
// keeps its own undecorated client regardless, so it can never route through
// an interceptor that depends on the token itself.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

// WithTokenEndpoint points the token provider at the CSRF endpoint.
func WithTokenEndpoint(url string) Option {
	return func(c *config) {
		c.tokenEndpoint = url
	}
}

// WithEmailCheckEndpoint points email existence rules at the given URL.
func WithEmailCheckEndpoint(url string) Option {
	return func(c *config) {
		c.emailCheckURL = url
	}
}

// WithPasswordCheckEndpoint points the current-password rule at the given URL.
func WithPasswordCheckEndpoint(url string) Option {
	return func(c *config) {
		c.passwordCheckURL = url
	}
}

// WithSettingsStore replaces the default in-memory settings store.
func WithSettingsStore(store *settings.Store) Option {
	return func(c *config) {
		c.settingsStore = store
	}
}

// WithSessionState replaces the default session state.
func WithSessionState(state *session.State) Option {
	return func(c *config) {
		c.sessionState = state
	}
}

// WithContract overlays validation constraints from the game service's
// OpenAPI document onto the built-in templates and the engine.
func WithContract(doc openapi.Document) Option {
	return func(c *config) {
		c.contract = &doc
	}
}

// WithTokenOptions forwards extra options to the token provider.
func WithTokenOptions(options ...token.Option) Option {
	return func(c *config) {
		c.tokenOptions = append(c.tokenOptions, options...)
	}
}

// WithEngineOptions forwards extra options to the validation engine.
func WithEngineOptions(options ...validation.Option) Option {
	return func(c *config) {
		c.engineOptions = append(c.engineOptions, options...)
	}
}

// WithBrokerOptions forwards extra options to the dialog broker.
func WithBrokerOptions(options ...dialog.Option) Option {
	return func(c *config) {
		c.brokerOptions = append(c.brokerOptions, options...)
	}
}

// Kit is the composed dialog subsystem.
type Kit struct {
	Settings  *settings.Store
	Session   *session.State
	Tokens    *token.Provider
	Engine    *validation.Engine
	Templates *template.Provider
	Broker    *dialog.Broker
	Form      *form.Form
}

// New builds a Kit applying any provided options. Logout invalidates the
// shared token automatically.
func New(ctx context.Context, options ...Option) (*Kit, error) {
	if ctx == nil {
		return nil, fmt.Errorf("dialogkit: context is required")
	}

	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	store := cfg.settingsStore
	if store == nil {
		store = settings.NewStore()
	}
	state := cfg.sessionState
	if state == nil {
		state = session.NewState()
	}

	tokenOptions := append([]token.Option{token.WithEndpoint(cfg.tokenEndpoint)}, cfg.tokenOptions...)
	tokens := token.NewProvider(tokenOptions...)
	state.OnLogout(tokens.Invalidate)

	engineOptions := []validation.Option{
		validation.WithTokenSource(tokens),
		validation.WithSession(state),
		validation.WithEmailCheckEndpoint(cfg.emailCheckURL),
		validation.WithPasswordCheckEndpoint(cfg.passwordCheckURL),
	}
	if cfg.httpClient != nil {
		engineOptions = append(engineOptions, validation.WithHTTPClient(cfg.httpClient))
	}

	templateOptions := []template.Option{
		template.WithSettings(store),
		template.WithSession(state),
	}

	if cfg.contract != nil {
		constraints, err := cfg.contract.Constraints(ctx)
		if err != nil {
			return nil, fmt.Errorf("dialogkit: contract constraints: %w", err)
		}
		templateOptions = append(templateOptions,
			template.WithDecorator(openapi.NewDecorator(constraints)))
		engineOptions = append(engineOptions,
			validation.WithMinPasswordLength(
				constraints.MinLengthOf("RegistrationRequest", "password", 0)))
	}

	engineOptions = append(engineOptions, cfg.engineOptions...)
	engine := validation.NewEngine(engineOptions...)
	templates := template.New(templateOptions...)
	broker := dialog.NewBroker(cfg.brokerOptions...)

	dialogForm, err := form.New(broker, templates, engine)
	if err != nil {
		return nil, fmt.Errorf("dialogkit: %w", err)
	}

	return &Kit{
		Settings:  store,
		Session:   state,
		Tokens:    tokens,
		Engine:    engine,
		Templates: templates,
		Broker:    broker,
		Form:      dialogForm,
	}, nil
}

// Open activates a dialog end to end: it opens the broker request and binds
// the form to the kind. An undeclared kind leaves the broker idle.
func (k *Kit) Open(kind Kind, data map[string]any) (<-chan Outcome, error) {
	if !k.Templates.Declares(kind) {
		return nil, fmt.Errorf("dialogkit: undeclared dialog kind %q", kind)
	}
	future := k.Broker.Open(kind, data)
	if err := k.Form.Activate(kind); err != nil {
		k.Broker.Interrupt()
		return nil, err
	}
	return future, nil
}
