package template

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-dialogkit/pkg/model"
	"github.com/goliatone/go-dialogkit/pkg/session"
	"github.com/goliatone/go-dialogkit/pkg/settings"
)

// Decorator overlays externally sourced metadata (schema constraints, labels)
// onto a freshly built descriptor list.
type Decorator interface {
	Decorate(kind model.Kind, fields []model.FieldDescriptor) []model.FieldDescriptor
}

// builderFunc rebuilds one kind's descriptors from the current snapshots.
type builderFunc func(settings.Snapshot, sessionInfo) []model.FieldDescriptor

type sessionInfo struct {
	authenticated bool
	email         string
}

// Option customises the provider configuration.
type Option func(*Provider)

// WithSettings wires the settings source defaults are read from.
func WithSettings(source settings.Source) Option {
	return func(p *Provider) {
		p.settings = source
	}
}

// WithSession wires the session source that gates auth-dependent options.
func WithSession(source session.Source) Option {
	return func(p *Provider) {
		p.session = source
	}
}

// WithDecorator appends a decorator applied to every built descriptor list.
func WithDecorator(decorator Decorator) Option {
	return func(p *Provider) {
		if decorator != nil {
			p.decorators = append(p.decorators, decorator)
		}
	}
}

// Provider owns the dialog-kind template vocabulary.
type Provider struct {
	settings   settings.Source
	session    session.Source
	builders   map[model.Kind]builderFunc
	decorators []Decorator
}

// New constructs a Provider with the built-in templates declared. Without an
// explicit settings source the provider falls back to settings.Defaults; an
// absent session source reads as unauthenticated.
func New(options ...Option) *Provider {
	p := &Provider{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.registerBuiltins()
	return p
}

// FieldsFor rebuilds and returns the descriptor list for kind. The result is
// a fresh copy on every call; mutating it cannot corrupt the provider.
func (p *Provider) FieldsFor(kind model.Kind) ([]model.FieldDescriptor, error) {
	build, ok := p.builders[kind]
	if !ok {
		return nil, fmt.Errorf("field templates: no template declared for dialog kind %q", kind)
	}

	fields := build(p.currentSettings(), p.currentSession())
	for _, decorator := range p.decorators {
		fields = decorator.Decorate(kind, fields)
	}
	return fields, nil
}

// Kinds lists the declared dialog-kind vocabulary, sorted for determinism.
func (p *Provider) Kinds() []model.Kind {
	kinds := make([]model.Kind, 0, len(p.builders))
	for kind := range p.builders {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Declares reports whether the kind belongs to the template vocabulary.
func (p *Provider) Declares(kind model.Kind) bool {
	_, ok := p.builders[kind]
	return ok
}

func (p *Provider) register(kind model.Kind, build builderFunc) {
	if p.builders == nil {
		p.builders = make(map[model.Kind]builderFunc)
	}
	p.builders[kind] = build
}

func (p *Provider) currentSettings() settings.Snapshot {
	if p.settings == nil {
		return settings.Defaults()
	}
	return p.settings.Current()
}

func (p *Provider) currentSession() sessionInfo {
	if p.session == nil {
		return sessionInfo{}
	}
	return sessionInfo{
		authenticated: p.session.Authenticated(),
		email:         p.session.Email(),
	}
}
