package dialogue

import (
	"context"
	"fmt"

	"github.com/Ramz1k999/diplomaproject/internal/gemini"
	"github.com/Ramz1k999/diplomaproject/internal/session"
)

func newFoodDefinition() *Definition {
	return &Definition{
		Kind: session.KindFood,
		NewProgress: func() *session.Progress {
			return &session.Progress{Kind: session.KindFood, Food: &session.FoodData{}}
		},
		Steps: []Step{
			{
				Key: "food",
				Prompt: func(*session.Progress) string {
					return "🔍 What food do you want to learn about?\n(Example: avocado, oatmeal, salmon)"
				},
				Parse: func(p *session.Progress, input string) error {
					v, err := parseNonEmpty(input, "food name")
					if err != nil {
						return err
					}
					p.Food.Food = v
					return nil
				},
			},
		},
		Finish: finishFood,
	}
}

func finishFood(ctx context.Context, e *Engine, sess *session.Session, emit Emitter) {
	d := sess.Active.Food

	emit(sess, Reply{Text: "🔍 *Looking it up...*", Markdown: true})

	fallback := fmt.Sprintf("⚠️ Couldn't fetch information about %s right now. Please try again later.", d.Food)
	info := e.generate(ctx, gemini.FoodInfoPrompt(d.Food), fallback)
	emit(sess, Reply{Text: info, Markdown: true, ShowMenu: true})
}
