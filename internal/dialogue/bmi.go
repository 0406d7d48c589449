package dialogue

import (
	"context"
	"fmt"
	"time"

	"github.com/Ramz1k999/diplomaproject/internal/gemini"
	"github.com/Ramz1k999/diplomaproject/internal/health"
	"github.com/Ramz1k999/diplomaproject/internal/session"
)

const bmiAdviceFallback = "⚠️ Sorry, I couldn't get advice right now. Please try again later."

func newBMIDefinition() *Definition {
	return &Definition{
		Kind: session.KindBMI,
		NewProgress: func() *session.Progress {
			return &session.Progress{Kind: session.KindBMI, BMI: &session.BMIData{}}
		},
		Prefill: func(sess *session.Session) *Offer {
			last, ok := sess.LastBMI()
			if !ok {
				return nil
			}
			return &Offer{
				Text: fmt.Sprintf(
					"📋 I still have your measurements from %s:\nHeight *%d cm*, weight *%d kg*.\n\nUse them again?",
					last.Taken.Format("2 Jan"), last.HeightCm, last.WeightKg),
				Apply: func(p *session.Progress) {
					p.BMI.HeightCm = last.HeightCm
					p.BMI.WeightKg = last.WeightKg
				},
				ResumeStep: 2, // height and weight reused, continue with age
			}
		},
		Steps: []Step{
			{
				Key: "height",
				Prompt: func(*session.Progress) string {
					return "📏 Please enter your height in cm (e.g. `175`):"
				},
				Parse: func(p *session.Progress, input string) error {
					v, err := parseIntField(input, "Height", "cm", 50, 250)
					if err != nil {
						return err
					}
					p.BMI.HeightCm = v
					return nil
				},
			},
			{
				Key: "weight",
				Prompt: func(*session.Progress) string {
					return "⚖️ Now your weight in kg (e.g. `70`):"
				},
				Parse: func(p *session.Progress, input string) error {
					v, err := parseIntField(input, "Weight", "kg", 20, 300)
					if err != nil {
						return err
					}
					p.BMI.WeightKg = v
					return nil
				},
			},
			{
				Key: "age",
				Prompt: func(*session.Progress) string {
					return "🎂 How old are you?"
				},
				Parse: func(p *session.Progress, input string) error {
					v, err := parseIntField(input, "Age", "years", 1, 120)
					if err != nil {
						return err
					}
					p.BMI.Age = v
					return nil
				},
			},
			{
				Key: "occupation",
				Prompt: func(*session.Progress) string {
					return "💼 What do you do for a living? (helps me judge how active your day is)"
				},
				Parse: func(p *session.Progress, input string) error {
					v, err := parseNonEmpty(input, "occupation")
					if err != nil {
						return err
					}
					p.BMI.Occupation = v
					return nil
				},
			},
		},
		Finish: finishBMI,
	}
}

func finishBMI(ctx context.Context, e *Engine, sess *session.Session, emit Emitter) {
	d := sess.Active.BMI
	bmi, category := health.BMI(float64(d.WeightKg), float64(d.HeightCm))

	emit(sess, Reply{Text: "🧮 *Crunching the numbers...*", Markdown: true})

	advice := e.generate(ctx,
		gemini.BMIAdvicePrompt(d.HeightCm, d.WeightKg, d.Age, d.Occupation, bmi),
		bmiAdviceFallback)

	e.store.AppendBMI(sess, session.BMIRecord{
		Taken:      time.Now(),
		HeightCm:   d.HeightCm,
		WeightKg:   d.WeightKg,
		Age:        d.Age,
		Occupation: d.Occupation,
		BMI:        bmi,
		Category:   category,
	})

	text := fmt.Sprintf("📊 *Your BMI is %.1f* – %s\n💡 %s\n🔥 Recommended daily calories: *%d kcal*\n\n%s",
		bmi, category, health.Advice(category), health.DailyCalories(category), advice)
	emit(sess, Reply{Text: text, Markdown: true, ShowMenu: true})
}
