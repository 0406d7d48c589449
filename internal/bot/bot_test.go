package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramz1k999/diplomaproject/internal/dialogue"
	"github.com/Ramz1k999/diplomaproject/internal/session"
)

func TestMenuKind(t *testing.T) {
	tests := []struct {
		text string
		kind session.DialogueKind
		ok   bool
	}{
		{"🧮 BMI & Calories", session.KindBMI, true},
		{"💧 Water Reminder", session.KindWater, true},
		{"🍲 Healthy Recipe", session.KindRecipe, true},
		{"🥦 Food Info", session.KindFood, true},
		{"💪 Workout Plan", session.KindWorkout, true},
		{"hello", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		kind, ok := menuKind(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.kind, kind, tt.text)
	}
}

func TestChoiceKeyboardLayout(t *testing.T) {
	kb := choiceKeyboard([]dialogue.Choice{
		{Label: "A", Data: "a"},
		{Label: "B", Data: "b"},
		{Label: "C", Data: "c"},
	})

	assert.Len(t, kb.InlineKeyboard, 2, "two per row, remainder on its own row")
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[1], 1)
	assert.Equal(t, "dlg:a", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "dlg:c", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestMainMenuKeyboard(t *testing.T) {
	kb := mainMenuKeyboard("en")
	assert.Len(t, kb.Keyboard, 3)
	assert.True(t, kb.ResizeKeyboard)
	assert.Equal(t, "🧮 BMI & Calories", kb.Keyboard[0][0].Text)
	assert.Equal(t, "❌ Cancel", kb.Keyboard[2][1].Text)
}

func TestUserLimiter(t *testing.T) {
	ul := newUserLimiter(2)

	assert.True(t, ul.allow(1))
	assert.True(t, ul.allow(1))
	assert.False(t, ul.allow(1), "burst exhausted")
	assert.True(t, ul.allow(2), "limits are per user")
}

func TestValidLang(t *testing.T) {
	assert.True(t, validLang("en"))
	assert.True(t, validLang("uz"))
	assert.False(t, validLang("de"))
	assert.False(t, validLang(""))
}
