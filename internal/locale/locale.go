// Package locale provides translated UI strings.
package locale

import (
	"embed"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFS embed.FS

// Messages translates message IDs for one language.
type Messages struct {
	localizer *i18n.Localizer
}

// New returns messages for lang, falling back to English for anything
// missing or unknown.
func New(lang string) *Messages {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	entries, _ := messageFS.ReadDir("messages")
	for _, e := range entries {
		data, err := messageFS.ReadFile("messages/" + e.Name())
		if err != nil {
			continue
		}
		bundle.MustParseMessageFileBytes(data, e.Name())
	}
	return &Messages{localizer: i18n.NewLocalizer(bundle, lang, language.English.String())}
}

// T translates id with optional template data. Unknown ids come back as-is.
func (m *Messages) T(id string, data map[string]any) string {
	s, err := m.localizer.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil || s == "" {
		return id
	}
	return s
}
