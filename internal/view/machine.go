// Package view holds the session state machine: which screen is shown, the
// draft being written, and the single in-flight generation.
package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/qmuntal/stateless"

	"github.com/comigor/journey-go/internal/gateway"
	"github.com/comigor/journey-go/internal/journey"
	"github.com/comigor/journey-go/internal/logger"
)

// State is one of the three screens.
type State string

const (
	StateLanding   State = "landing"
	StateComposing State = "composing"
	StateResult    State = "result"
)

// Trigger is an event fed to the machine.
type Trigger string

const (
	TriggerStartWriting      Trigger = "StartWriting"
	TriggerEditDraft         Trigger = "EditDraft"
	TriggerCancel            Trigger = "Cancel"
	TriggerSubmit            Trigger = "Submit"
	TriggerGenerateSucceeded Trigger = "GenerateSucceeded"
	TriggerGenerateFailed    Trigger = "GenerateFailed"
	TriggerWriteAgain        Trigger = "WriteAgain"
	TriggerBack              Trigger = "Back"
)

// FailureNotice is shown after a failed generation.
const FailureNotice = "Maaf, koneksi narasi kita terputus. Coba lagi ya!"

// DefaultGenerateTimeout bounds a single generation unless WithTimeout says otherwise.
const DefaultGenerateTimeout = 30 * time.Second

var (
	ErrBlankDraft        = fmt.Errorf("view: draft is blank: %w", journey.ErrBlankText)
	ErrAlreadySubmitting = errors.New("view: a submission is already in flight")
	ErrIllegalTransition = errors.New("view: illegal transition")
	// ErrAborted is delivered for a generation that finished after the user cancelled it.
	ErrAborted = errors.New("view: submission aborted")
)

// Outcome is delivered once per accepted submission, after the machine has
// applied the result.
type Outcome struct {
	Entry journey.Entry
	Err   error
}

// Option configures a Machine.
type Option func(*Machine)

// WithTimeout bounds each generation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(m *Machine) { m.timeout = d }
}

// WithCategorizer replaces the random categorizer.
func WithCategorizer(c journey.Categorizer) Option {
	return func(m *Machine) { m.categorizer = c }
}

// Machine owns the whole session: view state, draft, submission guard and the
// journey store. Every event is applied under mu; the generation itself runs
// without the lock and re-enters through complete.
type Machine struct {
	mu  sync.Mutex
	fsm *stateless.StateMachine

	gateway     gateway.Gateway
	store       journey.Store
	categorizer journey.Categorizer
	timeout     time.Duration

	draft      string
	submission Submission
	lastResult string
	notice     string
	betaNotice bool

	// generation identifies the in-flight call; bumped on abort so a late
	// completion is recognised as stale.
	generation uint64
	abort      context.CancelFunc
}

// New creates a machine in the Landing state with the beta notice showing.
func New(gw gateway.Gateway, store journey.Store, opts ...Option) *Machine {
	m := &Machine{
		gateway:    gw,
		store:      store,
		timeout:    DefaultGenerateTimeout,
		betaNotice: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.categorizer == nil {
		m.categorizer = journey.RandomCategorizer(nil)
	}
	m.fsm = m.configure()
	return m
}

func (m *Machine) configure() *stateless.StateMachine {
	fsm := stateless.NewStateMachine(StateLanding)

	// State: Landing
	// Entered on Cancel or Back; the draft never survives it.
	fsm.Configure(StateLanding).
		OnEntry(func(_ context.Context, _ ...any) error {
			m.draft = ""
			m.abortSubmission()
			return nil
		}).
		Permit(TriggerStartWriting, StateComposing)

	// State: Composing
	// Submission guard lives here: Submit and the two completions are
	// internal transitions or exits gated on it.
	fsm.Configure(StateComposing).
		OnEntryFrom(TriggerStartWriting, func(_ context.Context, _ ...any) error {
			m.notice = ""
			return nil
		}).
		OnEntryFrom(TriggerWriteAgain, func(_ context.Context, _ ...any) error {
			m.draft = ""
			m.notice = ""
			return nil
		}).
		InternalTransition(TriggerEditDraft, func(_ context.Context, args ...any) error {
			m.draft = args[0].(string)
			return nil
		}, m.isIdle).
		InternalTransition(TriggerSubmit, m.startSubmission, m.canSubmit).
		InternalTransition(TriggerGenerateFailed, m.failSubmission, m.isSubmitting).
		Permit(TriggerGenerateSucceeded, StateResult, m.isSubmitting).
		Permit(TriggerCancel, StateLanding)

	// State: Result
	fsm.Configure(StateResult).
		OnEntryFrom(TriggerGenerateSucceeded, func(_ context.Context, args ...any) error {
			entry := args[0].(journey.Entry)
			m.lastResult = entry.AIResponse
			m.submission = Idle
			m.abort = nil
			m.notice = ""
			return nil
		}).
		Permit(TriggerWriteAgain, StateComposing).
		Permit(TriggerBack, StateLanding)

	return fsm
}

func (m *Machine) isIdle(_ context.Context, _ ...any) bool { return m.submission == Idle }

func (m *Machine) isSubmitting(_ context.Context, _ ...any) bool { return m.submission == Submitting }

func (m *Machine) canSubmit(_ context.Context, _ ...any) bool {
	return m.submission == Idle && !journey.IsBlank(m.draft)
}

func (m *Machine) state() State {
	return m.fsm.MustState().(State)
}

func (m *Machine) fire(ctx context.Context, trigger Trigger, args ...any) error {
	from := m.state()
	if err := m.fsm.FireCtx(ctx, trigger, args...); err != nil {
		return fmt.Errorf("%w: %s in %s: %v", ErrIllegalTransition, trigger, from, err)
	}
	logger.L.Debug("view transition", "trigger", trigger, "from", from, "to", m.state())
	return nil
}

// StartWriting moves from Landing to Composing.
func (m *Machine) StartWriting(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fire(ctx, TriggerStartWriting)
}

// SetDraft replaces the draft. Editing is refused while a submission is in flight.
func (m *Machine) SetDraft(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state() == StateComposing && m.submission == Submitting {
		return ErrAlreadySubmitting
	}
	return m.fire(ctx, TriggerEditDraft, text)
}

// Cancel leaves Composing for Landing and clears the draft. An in-flight
// generation is cancelled and its result dropped.
func (m *Machine) Cancel(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fire(ctx, TriggerCancel)
}

// WriteAgain moves from Result back to an empty Composing screen.
func (m *Machine) WriteAgain(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fire(ctx, TriggerWriteAgain)
}

// Back moves from Result to Landing and clears the draft.
func (m *Machine) Back(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fire(ctx, TriggerBack)
}

// DismissNotice hides the beta notice. It is independent of the view state.
func (m *Machine) DismissNotice() {
	m.mu.Lock()
	m.betaNotice = false
	m.mu.Unlock()
}

// Submit sends the draft to the gateway. Blank drafts and a second submit
// while one is in flight are rejected without calling the gateway. The
// returned channel receives exactly one Outcome.
func (m *Machine) Submit(ctx context.Context) (<-chan Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state() == StateComposing {
		if m.submission == Submitting {
			return nil, ErrAlreadySubmitting
		}
		if journey.IsBlank(m.draft) {
			return nil, ErrBlankDraft
		}
	}

	out := make(chan Outcome, 1)
	if err := m.fire(ctx, TriggerSubmit, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitAndWait submits and blocks until the outcome or ctx is done. Giving up
// on ctx does not cancel the generation; use Cancel for that.
func (m *Machine) SubmitAndWait(ctx context.Context) (journey.Entry, error) {
	out, err := m.Submit(ctx)
	if err != nil {
		return journey.Entry{}, err
	}
	select {
	case o := <-out:
		return o.Entry, o.Err
	case <-ctx.Done():
		return journey.Entry{}, ctx.Err()
	}
}

func (m *Machine) startSubmission(ctx context.Context, args ...any) error {
	out := args[0].(chan Outcome)

	// the generation outlives the request that started it
	base := context.WithoutCancel(ctx)
	var (
		genCtx context.Context
		cancel context.CancelFunc
	)
	if m.timeout > 0 {
		genCtx, cancel = context.WithTimeout(base, m.timeout)
	} else {
		genCtx, cancel = context.WithCancel(base)
	}

	m.submission = Submitting
	m.notice = ""
	m.generation++
	m.abort = cancel

	go m.generate(genCtx, cancel, m.generation, m.draft, out)
	return nil
}

func (m *Machine) generate(ctx context.Context, cancel context.CancelFunc, token uint64, text string, out chan<- Outcome) {
	defer cancel()
	started := time.Now()
	reply, err := m.gateway.Generate(ctx, text)
	logger.L.Debug("generation finished", "duration", time.Since(started), "error", err)
	out <- m.complete(context.WithoutCancel(ctx), token, text, reply, err)
}

func (m *Machine) complete(ctx context.Context, token uint64, text, reply string, genErr error) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token != m.generation || m.submission != Submitting {
		logger.L.Info("discarding result of an aborted submission", "error", genErr)
		return Outcome{Err: ErrAborted}
	}

	if genErr != nil {
		m.fail(ctx, genErr)
		return Outcome{Err: genErr}
	}

	entry, err := journey.NewEntry(text, reply, m.categorizer)
	if err == nil {
		err = m.store.Append(ctx, entry)
	}
	if err != nil {
		m.fail(ctx, err)
		return Outcome{Err: err}
	}

	if err := m.fire(ctx, TriggerGenerateSucceeded, entry); err != nil {
		logger.L.Error("entry stored but view did not advance", "entry", entry.ID, "error", err)
		return Outcome{Entry: entry, Err: err}
	}
	logger.L.Info("journey entry created", "entry", entry.ID, "category", entry.Category)
	return Outcome{Entry: entry}
}

func (m *Machine) fail(ctx context.Context, cause error) {
	if err := m.fire(ctx, TriggerGenerateFailed, cause); err != nil {
		logger.L.Error("failed to record generation failure", "error", err)
		m.submission = Idle
		m.abort = nil
		m.notice = FailureNotice
	}
}

func (m *Machine) failSubmission(_ context.Context, args ...any) error {
	cause, _ := args[0].(error)
	logger.L.Warn("generation failed", "error", cause, "config", isConfigError(cause))
	m.submission = Idle
	m.abort = nil
	m.notice = FailureNotice
	return nil
}

// abortSubmission invalidates the in-flight generation, if any.
func (m *Machine) abortSubmission() {
	if m.submission != Submitting {
		return
	}
	m.generation++
	if m.abort != nil {
		m.abort()
		m.abort = nil
	}
	m.submission = Idle
}

func isConfigError(err error) bool {
	var cfgErr *gateway.ConfigError
	return errors.As(err, &cfgErr)
}

// Entries returns the journey, newest first.
func (m *Machine) Entries(ctx context.Context) ([]journey.Entry, error) {
	return m.store.All(ctx)
}

// Snapshot returns a copy of everything the presentation needs.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.state()
	return Snapshot{
		State:      state,
		Draft:      m.draft,
		Submission: m.submission,
		CanSubmit:  state == StateComposing && m.canSubmit(context.Background()),
		LastResult: m.lastResult,
		Notice:     m.notice,
		BetaNotice: m.betaNotice,
	}
}
