package intake

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/meridian-legal/pfas-intake/internal/model"
)

// Step identifies a data-collection step of the wizard.
type Step int

const (
	StepPersonal Step = iota
	StepInjury
	StepExposure
	StepLegal
)

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "personal"
	case StepInjury:
		return "injury"
	case StepExposure:
		return "exposure"
	case StepLegal:
		return "legal"
	default:
		return "unknown"
	}
}

// Status is the lifecycle state of a wizard session. Disqualified and
// submitted are absorbing: there is no transition out of them.
type Status string

const (
	StatusActive       Status = "active"
	StatusDisqualified Status = "disqualified"
	StatusSubmitted    Status = "submitted"
)

// Terminal-state and submission errors.
var (
	ErrTerminal       = eris.New("intake: wizard is in a terminal state")
	ErrDisqualified   = eris.New("intake: claimant is disqualified")
	ErrNotOnFinalStep = eris.New("intake: submit is only valid on the legal step")
	ErrNoFurtherSteps = eris.New("intake: already on the final step")
)

// Sink receives a completed, validated claim record.
type Sink interface {
	Submit(ctx context.Context, data model.ClaimFormData) error
}

// Wizard is the claim-form state machine. Forward transitions require the
// active section to validate; backward transitions are unconditional and
// retain entered values. A session is safe for concurrent use, though the
// expected access pattern is one request at a time.
type Wizard struct {
	mu        sync.Mutex
	step      Step
	status    Status
	data      model.ClaimFormData
	updatedAt time.Time
}

// New creates a wizard on the personal step, seeding the exposure flag from
// the verdict when one is available. The injury type defaults to Cancer, the
// first option presented on the injury step.
func New(verdict *model.Verdict) *Wizard {
	w := &Wizard{
		step:      StepPersonal,
		status:    StatusActive,
		updatedAt: time.Now(),
	}
	w.data.InjuryInfo.InjuryType = model.InjuryCancer
	if verdict != nil {
		w.data.ExposureInfo.IsCurrentlyInContaminationZone = verdict.IsContaminated
	}
	return w
}

// Step returns the active step. Meaningless once the wizard is terminal.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Status returns the lifecycle state.
func (w *Wizard) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Data returns a snapshot of the record collected so far.
func (w *Wizard) Data() model.ClaimFormData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.data
}

// UpdatedAt returns the time of the last state change.
func (w *Wizard) UpdatedAt() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.updatedAt
}

// SetPersonal stores the personal section. Values are validated on Next, not
// on entry, so partial edits are never rejected.
func (w *Wizard) SetPersonal(p model.PersonalInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != StatusActive {
		return ErrTerminal
	}
	w.data.PersonalInfo = p
	w.updatedAt = time.Now()
	return nil
}

// SetInjury stores the injury section.
func (w *Wizard) SetInjury(in model.InjuryInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != StatusActive {
		return ErrTerminal
	}
	w.data.InjuryInfo = in
	w.updatedAt = time.Now()
	return nil
}

// SetExposure stores the exposure section.
func (w *Wizard) SetExposure(e model.ExposureInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != StatusActive {
		return ErrTerminal
	}
	w.data.ExposureInfo = e
	w.updatedAt = time.Now()
	return nil
}

// SetLegal stores the legal section and evaluates the disqualification guard:
// a retainer declared while on the legal step transitions the session to
// disqualified immediately, before any submit. The transition is irreversible.
// A retainer stored on an earlier step takes effect on arrival at the legal
// step (see Next) so the flag can never ride along into a submission.
func (w *Wizard) SetLegal(l model.LegalInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != StatusActive {
		return ErrTerminal
	}
	w.data.LegalInfo = l
	w.updatedAt = time.Now()
	if w.step == StepLegal && l.HasLegalRetainer {
		w.status = StatusDisqualified
	}
	return nil
}

// Next validates the active section and advances one step on success. On
// validation failure the wizard stays put and the field errors are returned;
// there is no partial advance.
func (w *Wizard) Next() ([]model.FieldError, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != StatusActive {
		return nil, ErrTerminal
	}
	if w.step == StepLegal {
		return nil, ErrNoFurtherSteps
	}

	if errs := w.validateStep(w.step); len(errs) > 0 {
		return errs, nil
	}
	w.step++
	w.updatedAt = time.Now()

	// Arrival guard: a retainer stored on an earlier step disqualifies the
	// moment the legal step is reached.
	if w.step == StepLegal && w.data.LegalInfo.HasLegalRetainer {
		w.status = StatusDisqualified
	}
	return nil, nil
}

// Previous steps back one step without re-validating; entered values are
// retained. On the first step it is a no-op.
func (w *Wizard) Previous() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != StatusActive {
		return ErrTerminal
	}
	if w.step > StepPersonal {
		w.step--
		w.updatedAt = time.Now()
	}
	return nil
}

// Submit hands the completed record to the sink and transitions to the
// submitted terminal state. It is idempotent: once submitted, repeated calls
// return nil without invoking the sink again. The lock is held across the
// sink call, so a second trigger fired during an in-flight submission waits
// and then observes the terminal state. A sink failure leaves the wizard on
// the legal step so the visitor can retry; it is never reported as success.
func (w *Wizard) Submit(ctx context.Context, sink Sink) ([]model.FieldError, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.status {
	case StatusSubmitted:
		return nil, nil
	case StatusDisqualified:
		return nil, ErrDisqualified
	}
	if w.step != StepLegal {
		return nil, ErrNotOnFinalStep
	}
	// Last line of defense: a retainer flag must never reach the sink.
	if w.data.LegalInfo.HasLegalRetainer {
		w.status = StatusDisqualified
		w.updatedAt = time.Now()
		return nil, ErrDisqualified
	}

	if errs := ValidateClaim(w.data); len(errs) > 0 {
		return errs, nil
	}

	if err := sink.Submit(ctx, w.data); err != nil {
		return nil, eris.Wrap(err, "intake: submission failed")
	}
	w.status = StatusSubmitted
	w.updatedAt = time.Now()
	return nil, nil
}

// validateStep dispatches to the section validator for the given step.
func (w *Wizard) validateStep(s Step) []model.FieldError {
	switch s {
	case StepPersonal:
		return ValidatePersonal(w.data.PersonalInfo)
	case StepInjury:
		return ValidateInjury(w.data.InjuryInfo)
	case StepExposure:
		return ValidateExposure(w.data.ExposureInfo)
	case StepLegal:
		return ValidateLegal(w.data.LegalInfo)
	default:
		return nil
	}
}
