package dialogue

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Ramz1k999/diplomaproject/internal/session"
)

// Engine drives the dialogues. All entry points lock the user's session for
// the whole event, including the generative call, so events for one user
// apply strictly in arrival order.
type Engine struct {
	store     *session.Store
	gen       Generator
	scheduler Scheduler
	log       *zap.Logger
	defs      map[session.DialogueKind]*Definition

	genTimeout time.Duration
}

// NewEngine builds the engine with all five dialogue definitions registered.
// scheduler may be nil; the water dialogue then skips reminder setup.
func NewEngine(store *session.Store, gen Generator, scheduler Scheduler, log *zap.Logger) *Engine {
	e := &Engine{
		store:      store,
		gen:        gen,
		scheduler:  scheduler,
		log:        log,
		defs:       make(map[session.DialogueKind]*Definition),
		genTimeout: 45 * time.Second,
	}
	for _, d := range []*Definition{
		newBMIDefinition(),
		newWaterDefinition(),
		newRecipeDefinition(),
		newFoodDefinition(),
		newWorkoutDefinition(),
	} {
		e.defs[d.Kind] = d
	}
	return e
}

// Start begins the named dialogue for the user, replacing any dialogue
// already in progress.
func (e *Engine) Start(ctx context.Context, userID int64, kind session.DialogueKind, emit Emitter) {
	def, ok := e.defs[kind]
	if !ok {
		e.log.Error("unknown dialogue kind", zap.String("kind", string(kind)))
		return
	}

	e.store.Do(userID, func(sess *session.Session) {
		sess.ClearActive()

		if def.Guard != nil {
			if r := def.Guard(sess); r != nil {
				emit(sess, *r)
				return
			}
		}

		p := def.NewProgress()
		sess.Active = p
		if def.Seed != nil {
			def.Seed(sess, p)
		}

		if def.Prefill != nil {
			if offer := def.Prefill(sess); offer != nil {
				p.Step = stepOffer
				emit(sess, Reply{
					Text: offer.Text,
					Choices: []Choice{
						{Label: "✅ Use previous data", Data: offerReuse},
						{Label: "🔄 Start over", Data: offerRestart},
					},
					Markdown: true,
				})
				return
			}
		}

		p.Step = 0
		emit(sess, e.stepPrompt(def, p))
	})
}

// HandleText feeds a free-text message to the active dialogue.
func (e *Engine) HandleText(ctx context.Context, userID int64, text string, emit Emitter) {
	e.store.Do(userID, func(sess *session.Session) {
		if sess.Active == nil {
			emit(sess, Reply{Text: lcl(sess, "unknown_input"), ShowMenu: true})
			return
		}
		def := e.defs[sess.Active.Kind]

		if isCancel(text) {
			e.abort(sess, emit)
			return
		}

		p := sess.Active
		if p.Step == stepOffer {
			// Waiting for the reuse choice; free text is not an answer here.
			emit(sess, Reply{Text: "Please choose one of the options above 👆"})
			return
		}

		step := def.Steps[p.Step]
		if step.Choices != nil {
			// Fixed-option step: re-show the options instead of guessing.
			emit(sess, e.stepPrompt(def, p))
			return
		}

		if err := step.Parse(p, text); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				emit(sess, Reply{Text: verr.Message})
				emit(sess, e.stepPrompt(def, p))
				return
			}
			e.log.Error("dialogue parse failed",
				zap.String("kind", string(p.Kind)), zap.String("step", step.Key), zap.Error(err))
			e.abort(sess, emit)
			return
		}

		e.advance(ctx, def, sess, emit)
	})
}

// HandleSelection feeds a fixed-option selection payload to the active
// dialogue. Payloads that match nothing expected are answered with a
// re-prompt and never advance state.
func (e *Engine) HandleSelection(ctx context.Context, userID int64, payload string, emit Emitter) {
	e.store.Do(userID, func(sess *session.Session) {
		if sess.Active == nil {
			// A stale button press after the dialogue ended; ignore.
			return
		}
		def := e.defs[sess.Active.Kind]
		p := sess.Active

		if p.Step == stepOffer {
			offer := def.Prefill(sess)
			switch payload {
			case offerReuse:
				if offer != nil {
					offer.Apply(p)
					p.Step = offer.ResumeStep
				} else {
					p.Step = 0
				}
			case offerRestart:
				p.Step = 0
			default:
				e.log.Debug("unknown offer selection", zap.String("payload", payload))
				return
			}
			if p.Step >= len(def.Steps) {
				e.finish(ctx, def, sess, emit)
				return
			}
			emit(sess, e.stepPrompt(def, p))
			return
		}

		step := def.Steps[p.Step]
		if step.Choices == nil || !choiceAllowed(step.Choices(p), payload) {
			e.log.Debug("unknown selection for step",
				zap.String("kind", string(p.Kind)), zap.String("step", step.Key), zap.String("payload", payload))
			emit(sess, e.stepPrompt(def, p))
			return
		}

		if err := step.Parse(p, payload); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				emit(sess, Reply{Text: verr.Message})
				emit(sess, e.stepPrompt(def, p))
				return
			}
			e.log.Error("dialogue selection parse failed",
				zap.String("kind", string(p.Kind)), zap.String("step", step.Key), zap.Error(err))
			e.abort(sess, emit)
			return
		}

		e.advance(ctx, def, sess, emit)
	})
}

// Cancel aborts whatever dialogue is in progress.
func (e *Engine) Cancel(ctx context.Context, userID int64, emit Emitter) {
	e.store.Do(userID, func(sess *session.Session) {
		if sess.Active == nil {
			emit(sess, Reply{Text: lcl(sess, "nothing_to_cancel"), ShowMenu: true})
			return
		}
		e.abort(sess, emit)
	})
}

// Active reports whether the user has a dialogue in progress.
func (e *Engine) Active(userID int64) bool {
	var active bool
	e.store.Do(userID, func(sess *session.Session) {
		active = sess.Active != nil
	})
	return active
}

func (e *Engine) advance(ctx context.Context, def *Definition, sess *session.Session, emit Emitter) {
	p := sess.Active
	p.Step++
	if p.Step >= len(def.Steps) {
		e.finish(ctx, def, sess, emit)
		return
	}
	emit(sess, e.stepPrompt(def, p))
}

func (e *Engine) finish(ctx context.Context, def *Definition, sess *session.Session, emit Emitter) {
	def.Finish(ctx, e, sess, emit)
	sess.ClearActive()
}

func (e *Engine) abort(sess *session.Session, emit Emitter) {
	kind := sess.Active.Kind
	sess.ClearActive()
	e.log.Debug("dialogue aborted", zap.Int64("user", sess.UserID), zap.String("kind", string(kind)))
	emit(sess, Reply{Text: lcl(sess, "cancelled"), ShowMenu: true})
}

func (e *Engine) stepPrompt(def *Definition, p *session.Progress) Reply {
	step := def.Steps[p.Step]
	r := Reply{Text: step.Prompt(p), Markdown: true}
	if step.Choices != nil {
		r.Choices = step.Choices(p)
		r.Edit = true
	}
	return r
}

// generate calls the collaborator with a bounded timeout and substitutes
// fallback on any failure. The caller still emits locally computed values.
func (e *Engine) generate(ctx context.Context, prompt, fallback string) string {
	gctx, cancel := context.WithTimeout(ctx, e.genTimeout)
	defer cancel()

	out, err := e.gen.Generate(gctx, prompt)
	if err != nil {
		e.log.Warn("generative call failed, using fallback", zap.Error(err))
		return fallback
	}
	return out
}

func choiceAllowed(choices []Choice, payload string) bool {
	for _, c := range choices {
		if c.Data == payload {
			return true
		}
	}
	return false
}
