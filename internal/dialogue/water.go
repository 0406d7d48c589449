package dialogue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Ramz1k999/diplomaproject/internal/health"
	"github.com/Ramz1k999/diplomaproject/internal/session"
)

func newWaterDefinition() *Definition {
	return &Definition{
		Kind: session.KindWater,
		NewProgress: func() *session.Progress {
			return &session.Progress{Kind: session.KindWater, Water: &session.WaterData{}}
		},
		Prefill: func(sess *session.Session) *Offer {
			last, ok := sess.LastBMI()
			if !ok {
				return nil
			}
			return &Offer{
				Text: fmt.Sprintf("💧 I know your weight from the BMI check: *%d kg*. Use it for the water plan?", last.WeightKg),
				Apply: func(p *session.Progress) {
					p.Water.WeightKg = last.WeightKg
				},
				ResumeStep: 1,
			}
		},
		Steps: []Step{
			{
				Key: "weight",
				Prompt: func(*session.Progress) string {
					return "⚖️ Please enter your weight in kg (e.g. `70`):"
				},
				Parse: func(p *session.Progress, input string) error {
					v, err := parseIntField(input, "Weight", "kg", 20, 300)
					if err != nil {
						return err
					}
					p.Water.WeightKg = v
					return nil
				},
			},
			{
				Key: "activity",
				Prompt: func(*session.Progress) string {
					return "🏃 How active are you on a typical day?"
				},
				Choices: func(*session.Progress) []Choice {
					return []Choice{
						{Label: "🪑 Sedentary", Data: string(health.ActivitySedentary)},
						{Label: "🚶 Light (1-3x/week)", Data: string(health.ActivityLight)},
						{Label: "🏃 Moderate (3-5x/week)", Data: string(health.ActivityModerate)},
						{Label: "🏋️ Heavy (6-7x/week)", Data: string(health.ActivityHeavy)},
						{Label: "🥇 Athlete", Data: string(health.ActivityAthlete)},
					}
				},
				Parse: func(p *session.Progress, input string) error {
					p.Water.Activity = health.ActivityLevel(input)
					return nil
				},
			},
			{
				Key: "climate",
				Prompt: func(*session.Progress) string {
					return "🌍 What climate do you live in?"
				},
				Choices: func(*session.Progress) []Choice {
					return []Choice{
						{Label: "❄️ Cold", Data: string(health.ClimateCold)},
						{Label: "🌤 Temperate", Data: string(health.ClimateTemperate)},
						{Label: "🔥 Hot", Data: string(health.ClimateHot)},
					}
				},
				Parse: func(p *session.Progress, input string) error {
					p.Water.Climate = health.Climate(input)
					return nil
				},
			},
			{
				Key: "frequency",
				Prompt: func(*session.Progress) string {
					return "⏰ Want me to remind you to drink during the day (08:00–22:00)?"
				},
				Choices: func(*session.Progress) []Choice {
					return []Choice{
						{Label: "🔔 Every 2 hours", Data: string(session.RemindEvery2)},
						{Label: "🔔 Every 3 hours", Data: string(session.RemindEvery3)},
						{Label: "🔕 No reminders", Data: string(session.RemindNone)},
					}
				},
				Parse: func(p *session.Progress, input string) error {
					p.Water.Frequency = session.ReminderFrequency(input)
					return nil
				},
			},
		},
		Finish: finishWater,
	}
}

func finishWater(ctx context.Context, e *Engine, sess *session.Session, emit Emitter) {
	d := sess.Active.Water
	liters := health.WaterIntakeLiters(float64(d.WeightKg), d.Activity, d.Climate)

	sess.WaterPlan = &session.WaterPlan{
		Computed:  time.Now(),
		WeightKg:  d.WeightKg,
		Activity:  d.Activity,
		Climate:   d.Climate,
		Liters:    liters,
		Frequency: d.Frequency,
	}

	text := fmt.Sprintf("💧 You should drink about *%.2f liters* of water per day.", liters)

	if e.scheduler != nil {
		if d.Frequency == session.RemindNone {
			e.scheduler.Cancel(sess.UserID)
		} else if err := e.scheduler.Schedule(sess.UserID, d.Frequency); err != nil {
			e.log.Warn("failed to schedule water reminders",
				zap.Int64("user", sess.UserID), zap.Error(err))
			text += "\n\n⚠️ I couldn't set up reminders, but the plan is saved."
		} else {
			every := "2"
			if d.Frequency == session.RemindEvery3 {
				every = "3"
			}
			text += fmt.Sprintf("\n\n🔔 I'll remind you every %s hours between 08:00 and 22:00.", every)
		}
	}

	emit(sess, Reply{Text: text, Markdown: true, ShowMenu: true})
}
