package preference

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/adspirelabs/punotes/core"
)

func TestResolve(t *testing.T) {
	assert.Equal(t, Defaults(), Resolve("", ""))
	assert.Equal(t, Preferences{Language: Nepali, Theme: Dark}, Resolve("NP", " dark "))
	assert.Equal(t, Preferences{Language: English, Theme: System}, Resolve("fr", "sepia"))
}

func TestMerge(t *testing.T) {
	cur := Preferences{Language: Nepali, Theme: Light}
	assert.Equal(t, Preferences{Language: Nepali, Theme: Dark}, Preferences{Theme: Dark}.Merge(cur))
}

func TestColorScheme(t *testing.T) {
	assert.Equal(t, "light", Light.ColorScheme())
	assert.Equal(t, "dark", Dark.ColorScheme())
	assert.Equal(t, "light dark", System.ColorScheme())
}

func TestValidators(t *testing.T) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	RegisterValidators(validate, translator)

	assert.NoError(t, validate.Struct(Preferences{}))
	assert.NoError(t, validate.Struct(Preferences{Language: Nepali, Theme: System}))

	err := validate.Struct(Preferences{Language: "fr", Theme: "blue"})
	errs, ok := err.(validator.ValidationErrors)
	if assert.True(t, ok) {
		assert.Len(t, errs, 2)
		assert.Equal(t, langText, errs[0].Translate(translator))
		assert.Equal(t, themeText, errs[1].Translate(translator))
	}
}
