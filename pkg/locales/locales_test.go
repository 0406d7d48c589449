package locales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	assert.Contains(t, Get("start", "en"), "Welcome")
	assert.Contains(t, Get("start", "ru"), "Добро пожаловать")
	assert.Contains(t, Get("start", "uz"), "xush kelibsiz")
}

func TestGetFallsBackToEnglish(t *testing.T) {
	// menu_bmi is only translated in English.
	assert.Equal(t, Get("menu_bmi", "en"), Get("menu_bmi", "ru"))
	// Unknown language falls back too.
	assert.Contains(t, Get("start", "de"), "Welcome")
}

func TestGetUnknownKeyReturnsKey(t *testing.T) {
	assert.Equal(t, "no_such_key", Get("no_such_key", "en"))
}
