// Package preference holds the visitor's display choices: interface language and colour theme.
package preference

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/adspirelabs/punotes/core"
)

type (
	Language string
	Theme    string
)

const (
	English Language = "en"
	Nepali  Language = "np"

	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"

	DefaultLanguage = English
	DefaultTheme    = System
)

var (
	Languages = []Language{English, Nepali}
	Themes    = []Theme{Light, Dark, System}

	langTag  = "lang"
	langText = "language must be one of: en, np"

	themeTag  = "theme"
	themeText = "theme must be one of: light, dark, system"
)

func ParseLanguage(s string) (Language, bool) {
	l := Language(core.CleanString(s, true /* lower */))
	for _, lang := range Languages {
		if l == lang {
			return l, true
		}
	}
	return "", false
}

func ParseTheme(s string) (Theme, bool) {
	t := Theme(core.CleanString(s, true /* lower */))
	for _, theme := range Themes {
		if t == theme {
			return t, true
		}
	}
	return "", false
}

// ColorScheme is the value of the HTML color-scheme meta tag for the theme.
// The system theme lets the browser follow the OS setting.
func (t Theme) ColorScheme() string {
	switch t {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "light dark"
	}
}

type Preferences struct {
	Language Language `json:"language" validate:"omitempty,lang"`
	Theme    Theme    `json:"theme" validate:"omitempty,theme"`
}

func Defaults() Preferences {
	return Preferences{Language: DefaultLanguage, Theme: DefaultTheme}
}

// Resolve parses raw values (e.g. cookies), falling back to the defaults for unknown values.
func Resolve(lang, theme string) Preferences {
	prefs := Defaults()
	if l, ok := ParseLanguage(lang); ok {
		prefs.Language = l
	}
	if t, ok := ParseTheme(theme); ok {
		prefs.Theme = t
	}
	return prefs
}

// Clean lowercases the values so they validate.
func (p *Preferences) Clean() {
	p.Language = Language(core.CleanString(string(p.Language), true /* lower */))
	p.Theme = Theme(core.CleanString(string(p.Theme), true /* lower */))
}

// Merge returns cur with the non-empty fields of p applied.
func (p Preferences) Merge(cur Preferences) Preferences {
	if p.Language != "" {
		cur.Language = p.Language
	}
	if p.Theme != "" {
		cur.Theme = p.Theme
	}
	return cur
}

func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(langTag, func(fl validator.FieldLevel) bool {
		_, ok := ParseLanguage(fl.Field().String())
		return ok
	})
	core.RegisterCustomTranslation(validate, translator, langTag, langText)

	_ = validate.RegisterValidation(themeTag, func(fl validator.FieldLevel) bool {
		_, ok := ParseTheme(fl.Field().String())
		return ok
	})
	core.RegisterCustomTranslation(validate, translator, themeTag, themeText)
}
