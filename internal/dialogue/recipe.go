package dialogue

import (
	"context"
	"strings"

	"github.com/Ramz1k999/diplomaproject/internal/gemini"
	"github.com/Ramz1k999/diplomaproject/internal/session"
)

const recipeFallback = "⚠️ Couldn't generate a recipe right now. Try again later."

func newRecipeDefinition() *Definition {
	return &Definition{
		Kind: session.KindRecipe,
		NewProgress: func() *session.Progress {
			return &session.Progress{Kind: session.KindRecipe, Recipe: &session.RecipeData{}}
		},
		Steps: []Step{
			{
				Key: "ingredients",
				Prompt: func(*session.Progress) string {
					return "🍳 Enter the ingredients you have, comma-separated (e.g. `eggs, spinach, rice`):"
				},
				Parse: func(p *session.Progress, input string) error {
					var ingredients []string
					for _, part := range strings.Split(input, ",") {
						if t := strings.TrimSpace(part); t != "" {
							ingredients = append(ingredients, t)
						}
					}
					if len(ingredients) == 0 {
						return invalid("⚠️ Please list at least one ingredient, e.g. `eggs, spinach`.")
					}
					p.Recipe.Ingredients = ingredients
					return nil
				},
			},
		},
		Finish: finishRecipe,
	}
}

func finishRecipe(ctx context.Context, e *Engine, sess *session.Session, emit Emitter) {
	d := sess.Active.Recipe

	emit(sess, Reply{Text: "🍳 *Cooking up a recipe...*\n\nThis takes a few seconds.", Markdown: true})

	recipe := e.generate(ctx, gemini.RecipePrompt(d.Ingredients), recipeFallback)
	emit(sess, Reply{Text: recipe, Markdown: true, ShowMenu: true})
}
