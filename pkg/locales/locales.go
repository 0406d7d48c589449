// Package locales holds the localized UI strings, embedded at build time.
// Dialogue step prompts live next to their dialogue definitions; this table
// covers the menu, the /start and /language texts and the shared
// acknowledgments, with English as the fallback language.
package locales

import (
	_ "embed"
	"encoding/json"
	"log"
)

//go:embed locales.json
var localesJSON []byte

// DefaultLang is used when the user never picked a language.
const DefaultLang = "en"

var table map[string]map[string]string

func init() {
	if err := json.Unmarshal(localesJSON, &table); err != nil {
		log.Fatalf("failed to parse locales.json: %v", err)
	}
}

// Get returns the string for key in lang, falling back to English and then
// to the key itself so a missing entry never blanks a message.
func Get(key, lang string) string {
	entry, ok := table[key]
	if !ok {
		return key
	}
	if s, ok := entry[lang]; ok && s != "" {
		return s
	}
	if s, ok := entry[DefaultLang]; ok {
		return s
	}
	return key
}

// Langs lists the supported language codes.
func Langs() []string {
	return []string{"en", "ru", "uz"}
}
