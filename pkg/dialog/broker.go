package dialog

import (
	"sync"

	"github.com/goliatone/go-dialogkit/pkg/model"
)

const defaultSignalBuffer = 16

// Outcome is how a dialog request settles. Interrupted marks a request that
// was superseded by a newer Open; it is distinct from both success and a
// cancel (Close resolves with a nil Value and Interrupted false).
type Outcome struct {
	Value       any
	Interrupted bool
}

// SignalKind enumerates the control-channel commands.
type SignalKind string

const (
	SignalSubmit SignalKind = "submit"
	SignalReset  SignalKind = "reset"
	SignalSwitch SignalKind = "switch"
)

// Signal is a fire-and-forget intra-dialog command. Switch signals carry the
// next dialog kind; the other kinds leave Next empty.
type Signal struct {
	Kind SignalKind
	Next model.Kind
}

// Option customises the broker configuration.
type Option func(*Broker)

// WithSignalBuffer sizes the control channel. Signals beyond the buffer are
// dropped rather than blocking the trigger path.
func WithSignalBuffer(size int) Option {
	return func(b *Broker) {
		if size > 0 {
			b.signalBuffer = size
		}
	}
}

// Broker manages the single active dialog and its two channels. All state is
// guarded by one mutex; the resolution future is a one-shot buffered channel
// so settling never blocks.
type Broker struct {
	mu           sync.Mutex
	active       model.Kind
	last         model.Kind
	title        string
	message      string
	choosable    bool
	data         map[string]any
	pending      chan Outcome
	signals      chan Signal
	signalBuffer int
}

// NewBroker constructs a Broker applying any provided options.
func NewBroker(options ...Option) *Broker {
	b := &Broker{
		signalBuffer: defaultSignalBuffer,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	b.signals = make(chan Signal, b.signalBuffer)
	return b
}

// Open activates a dialog of the given kind and returns the one-shot future
// for its resolution. The active kind is set synchronously, before any
// consumer observes the returned channel. If a previous request is still
// pending it settles with an interrupted outcome first; requests replace,
// they never queue.
func (b *Broker) Open(kind model.Kind, data map[string]any) <-chan Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending != nil {
		b.pending <- Outcome{Interrupted: true}
		b.pending = nil
	}
	b.clearLocked()

	b.active = kind
	b.last = kind
	if len(data) > 0 {
		b.data = make(map[string]any, len(data))
		for k, v := range data {
			b.data[k] = v
		}
	}

	future := make(chan Outcome, 1)
	b.pending = future
	return future
}

// Resolve delivers value to the pending request and closes the dialog. All
// transient presentation state is cleared unconditionally so the next dialog
// inherits nothing.
func (b *Broker) Resolve(value any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending != nil {
		b.pending <- Outcome{Value: value}
		b.pending = nil
	}
	b.clearLocked()
}

// Close settles the pending request with a nil value; the cancel/escape path.
func (b *Broker) Close() {
	b.Resolve(nil)
}

// Interrupt settles the pending request with the interruption outcome without
// opening a replacement.
func (b *Broker) Interrupt() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending != nil {
		b.pending <- Outcome{Interrupted: true}
		b.pending = nil
	}
	b.clearLocked()
}

// Trigger broadcasts a control signal. The send never blocks; when the buffer
// is full the signal is dropped.
func (b *Broker) Trigger(signal Signal) {
	select {
	case b.signals <- signal:
	default:
	}
}

// Signals exposes the control channel for the dialog consumer.
func (b *Broker) Signals() <-chan Signal {
	return b.signals
}

// Active returns the currently open dialog kind, KindNone when idle.
func (b *Broker) Active() model.Kind {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// LastKind returns the most recently opened kind, surviving resolution.
func (b *Broker) LastKind() model.Kind {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// Pending reports whether a request is awaiting resolution.
func (b *Broker) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending != nil
}

// Data returns a copy of the auxiliary data supplied to Open.
func (b *Broker) Data() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil
	}
	copied := make(map[string]any, len(b.data))
	for k, v := range b.data {
		copied[k] = v
	}
	return copied
}

// SetTitle stores the dialog title after stripping markup.
func (b *Broker) SetTitle(title string) {
	b.mu.Lock()
	b.title = sanitizeText(title)
	b.mu.Unlock()
}

// Title returns the sanitized dialog title.
func (b *Broker) Title() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title
}

// SetMessage stores the dialog message after stripping markup.
func (b *Broker) SetMessage(message string) {
	b.mu.Lock()
	b.message = sanitizeText(message)
	b.mu.Unlock()
}

// Message returns the sanitized dialog message.
func (b *Broker) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message
}

// SetChoosable flags the dialog as offering a choice to the user.
func (b *Broker) SetChoosable(choosable bool) {
	b.mu.Lock()
	b.choosable = choosable
	b.mu.Unlock()
}

// Choosable reports the choosable flag.
func (b *Broker) Choosable() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.choosable
}

// clearLocked wipes per-dialog transient state. Callers hold b.mu.
func (b *Broker) clearLocked() {
	b.active = model.KindNone
	b.title = ""
	b.message = ""
	b.choosable = false
	b.data = nil
}
