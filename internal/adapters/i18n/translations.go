// Package i18n renders UI strings in the viewer's language.
package i18n

import (
	"embed"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Locales lists the embedded UI languages, default first.
var Locales = []string{"en", "sk"}

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// NewTranslator builds a Translator backed by go-i18n using the given default
// locale (e.g. "en").
//
// It loads translations from the embedded active.*.toml files.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.sk.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			slog.Warn("i18n: failed to load locale file", "file", file, "error", err)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
	}
}

// DefaultLocale returns the locale used when a session carries none.
func (t *Translator) DefaultLocale() string {
	return t.defaultLanguage.String()
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug("i18n: localize failed", "key", key, "locales", languages, "error", err)
		return key
	}
	return msg
}
