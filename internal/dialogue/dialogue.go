// Package dialogue implements the guided multi-step dialogues: a per-user
// state machine that prompts for one field at a time, validates each answer
// into the session's typed records, and finishes by computing a health metric
// and/or calling the generative backend.
package dialogue

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ramz1k999/diplomaproject/internal/session"
	"github.com/Ramz1k999/diplomaproject/pkg/locales"
)

// lcl looks up a shared UI string in the session's language.
func lcl(sess *session.Session, key string) string {
	return locales.Get(key, sess.Lang)
}

// Generator is the narrow view of the generative-text collaborator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Scheduler is the narrow view of the reminder scheduler.
type Scheduler interface {
	Schedule(userID int64, freq session.ReminderFrequency) error
	Cancel(userID int64)
}

// Choice is one fixed-option answer. Data is the selection payload the
// transport sends back when the button is pressed.
type Choice struct {
	Label string
	Data  string
}

// Reply is one outbound message. The transport renders Choices as an inline
// keyboard; Edit asks it to update the previous options message in place
// instead of sending a new one.
type Reply struct {
	Text     string
	Choices  []Choice
	Edit     bool
	Markdown bool
	ShowMenu bool
}

// Emitter delivers replies to the user. It is called while the session lock
// is held, so implementations may record message IDs on the session.
type Emitter func(sess *session.Session, r Reply)

// ValidationError carries the corrective message shown when an answer does
// not parse. The dialogue stays on the same step.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Step is one field of a dialogue. A step takes free text when Choices is
// nil, otherwise only one of the listed selections.
type Step struct {
	Key    string
	Prompt func(p *session.Progress) string

	// Parse validates the input (text or selection payload) and stores it
	// into the typed record. A *ValidationError re-prompts; anything else
	// aborts the dialogue.
	Parse func(p *session.Progress, input string) error

	// Choices lists the valid selections for a fixed-option step. May depend
	// on earlier answers.
	Choices func(p *session.Progress) []Choice
}

// Offer is the reuse-vs-restart choice presented at entry when the session
// already holds usable history.
type Offer struct {
	Text string
	// Apply copies the reused values into the fresh progress record.
	Apply func(p *session.Progress)
	// ResumeStep is the first step still needing input after reuse.
	ResumeStep int
}

// Definition is the static template of one dialogue type.
type Definition struct {
	Kind  session.DialogueKind
	Steps []Step

	// Guard may refuse entry altogether (e.g. workout without BMI history).
	// A non-empty reply is sent instead of starting the dialogue.
	Guard func(sess *session.Session) *Reply

	// Prefill inspects history and may offer reuse before the first step.
	Prefill func(sess *session.Session) *Offer

	// NewProgress allocates the typed record for this dialogue.
	NewProgress func() *session.Progress

	// Seed copies values the dialogue builds on (e.g. the latest BMI record)
	// into a fresh progress before the first prompt.
	Seed func(sess *session.Session, p *session.Progress)

	// Finish runs the terminal compute action: metric calculators, the
	// generative call, history append. The active dialogue is cleared by the
	// engine afterwards.
	Finish func(ctx context.Context, e *Engine, sess *session.Session, emit Emitter)
}

// stepOffer marks a progress waiting on the reuse-vs-restart choice.
const stepOffer = -1

// Selection payloads for the entry offer.
const (
	offerReuse   = "reuse"
	offerRestart = "restart"
)

// Cancel signals accepted at any step, matched case-insensitively.
var cancelSignals = []string{"/cancel", "cancel", "❌ cancel", "◀️ back", "back"}

func isCancel(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, s := range cancelSignals {
		if t == s {
			return true
		}
	}
	return false
}

// parseIntField parses a whole number within [min,max], with a corrective
// message naming the field and unit.
func parseIntField(input, field, unit string, min, max int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, invalid("⚠️ %s must be a whole number, e.g. `%d`.", field, (min+max)/2)
	}
	if v < min || v > max {
		return 0, invalid("⚠️ %s must be between %d and %d %s. Try again:", field, min, max, unit)
	}
	return v, nil
}

// parseNonEmpty trims the input and rejects blank answers.
func parseNonEmpty(input, what string) (string, error) {
	t := strings.TrimSpace(input)
	if t == "" {
		return "", invalid("⚠️ Please enter a valid %s.", what)
	}
	return t, nil
}
