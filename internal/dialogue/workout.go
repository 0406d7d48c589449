package dialogue

import (
	"context"
	"fmt"
	"time"

	"github.com/Ramz1k999/diplomaproject/internal/gemini"
	"github.com/Ramz1k999/diplomaproject/internal/session"
)

const workoutFallback = "I'm sorry, I couldn't generate your workout plan right now. Please try again later."

func newWorkoutDefinition() *Definition {
	return &Definition{
		Kind: session.KindWorkout,
		Guard: func(sess *session.Session) *Reply {
			if _, ok := sess.LastBMI(); !ok {
				return &Reply{
					Text: "⚠️ I don't have your body measurements yet.\n\n" +
						"To create a personalized workout plan, first calculate your BMI with the " +
						"'🧮 BMI & Calories' option, then come back here.",
					ShowMenu: true,
				}
			}
			return nil
		},
		NewProgress: func() *session.Progress {
			return &session.Progress{Kind: session.KindWorkout, Workout: &session.WorkoutData{}}
		},
		Seed: func(sess *session.Session, p *session.Progress) {
			last, _ := sess.LastBMI()
			p.Workout.HeightCm = last.HeightCm
			p.Workout.WeightKg = last.WeightKg
			p.Workout.Age = last.Age
			p.Workout.BMI = last.BMI
			p.Workout.Category = last.Category
		},
		Steps: []Step{
			{
				Key: "environment",
				Prompt: func(p *session.Progress) string {
					w := p.Workout
					return fmt.Sprintf("🏋️‍♀️ *Workout Plan Creator*\n\n"+
						"I'll use your measurements (Height: %dcm, Weight: %dkg, BMI: %.1f – %s).\n\n"+
						"First, where will you be exercising most often?",
						w.HeightCm, w.WeightKg, w.BMI, w.Category)
				},
				Choices: func(*session.Progress) []Choice {
					return []Choice{
						{Label: "🏠 Home", Data: "Home"},
						{Label: "🏋️ Gym", Data: "Gym"},
						{Label: "🏞️ Outdoors", Data: "Outdoors"},
						{Label: "🏢 Office", Data: "Office"},
					}
				},
				Parse: func(p *session.Progress, input string) error {
					p.Workout.Environment = input
					return nil
				},
			},
			{
				Key: "equipment",
				Prompt: func(*session.Progress) string {
					return "🔧 What equipment do you have access to?"
				},
				Choices: equipmentChoices,
				Parse: func(p *session.Progress, input string) error {
					p.Workout.Equipment = input
					return nil
				},
			},
			{
				Key: "goal",
				Prompt: func(*session.Progress) string {
					return "🎯 What's your primary fitness goal?"
				},
				Choices: func(*session.Progress) []Choice {
					return []Choice{
						{Label: "Lose weight", Data: "Lose weight"},
						{Label: "Build muscle", Data: "Build muscle"},
						{Label: "Improve endurance", Data: "Improve endurance"},
						{Label: "General fitness", Data: "General fitness"},
					}
				},
				Parse: func(p *session.Progress, input string) error {
					p.Workout.Goal = input
					return nil
				},
			},
			{
				Key: "frequency",
				Prompt: func(*session.Progress) string {
					return "📅 How often can you work out?"
				},
				Choices: func(*session.Progress) []Choice {
					return []Choice{
						{Label: "2-3 days/week", Data: "2-3 days/week"},
						{Label: "4-5 days/week", Data: "4-5 days/week"},
						{Label: "Every day", Data: "Every day"},
						{Label: "Weekdays only", Data: "Weekdays only"},
					}
				},
				Parse: func(p *session.Progress, input string) error {
					p.Workout.Frequency = input
					return nil
				},
			},
			{
				Key: "limitations",
				Prompt: func(*session.Progress) string {
					return "⚕️ Do you have any physical limitations or injuries I should consider?"
				},
				Choices: func(*session.Progress) []Choice {
					return []Choice{
						{Label: "No limitations", Data: "No limitations"},
						{Label: "Joint pain", Data: "Joint pain"},
						{Label: "Back issues", Data: "Back issues"},
						{Label: "Limited mobility", Data: "Limited mobility"},
					}
				},
				Parse: func(p *session.Progress, input string) error {
					p.Workout.Limitations = input
					return nil
				},
			},
		},
		Finish: finishWorkout,
	}
}

// equipmentChoices depend on the chosen environment, mirroring the options a
// gym or an office realistically offers.
func equipmentChoices(p *session.Progress) []Choice {
	switch p.Workout.Environment {
	case "Gym":
		return []Choice{
			{Label: "Full access", Data: "Full access"},
			{Label: "Machines only", Data: "Machines only"},
			{Label: "Free weights", Data: "Free weights"},
			{Label: "Cardio equipment", Data: "Cardio equipment"},
		}
	case "Outdoors":
		return []Choice{
			{Label: "No equipment", Data: "No equipment"},
			{Label: "Park with bars", Data: "Park with bars"},
			{Label: "Running track", Data: "Running track"},
			{Label: "Hiking trails", Data: "Hiking trails"},
		}
	case "Office":
		return []Choice{
			{Label: "No equipment", Data: "No equipment"},
			{Label: "Desk exercises", Data: "Desk exercises"},
			{Label: "Office chair", Data: "Office chair"},
			{Label: "Standing desk", Data: "Standing desk"},
		}
	default: // Home
		return []Choice{
			{Label: "No equipment", Data: "No equipment"},
			{Label: "Resistance bands", Data: "Resistance bands"},
			{Label: "Dumbbells", Data: "Dumbbells"},
			{Label: "Full home gym", Data: "Full home gym"},
		}
	}
}

func finishWorkout(ctx context.Context, e *Engine, sess *session.Session, emit Emitter) {
	d := sess.Active.Workout

	emit(sess, Reply{Text: "💪 *Creating your personalized workout plan...*\n\nThis may take a moment.", Markdown: true})

	plan := e.generate(ctx, gemini.WorkoutPlanPrompt(
		d.HeightCm, d.WeightKg, d.Age, d.BMI, string(d.Category),
		d.Environment, d.Equipment, d.Goal, d.Frequency, d.Limitations,
	), workoutFallback)

	e.store.AppendWorkout(sess, session.WorkoutRecord{
		Taken:       time.Now(),
		Environment: d.Environment,
		Equipment:   d.Equipment,
		Goal:        d.Goal,
		Frequency:   d.Frequency,
		Limitations: d.Limitations,
		Plan:        plan,
	})

	emit(sess, Reply{Text: plan, Markdown: true, ShowMenu: true})
}
