package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core/i18n"
	"github.com/adspirelabs/punotes/core/preference"
)

const (
	langCookie  = "lang"
	themeCookie = "theme"

	prefsMaxAge = 365 * 24 * time.Hour
)

type i18nApi struct {
	dict     *i18n.Dictionary
	validate *validator.Validate
}

func registerI18nAPI(g *echo.Group, dict *i18n.Dictionary, validate *validator.Validate) {
	api := i18nApi{dict: dict, validate: validate}

	g.GET("/i18n/:lang", api.messages)
	g.GET("/i18n/:lang/:key", api.translate)
	g.GET("/preferences", api.preferences)
	g.PUT("/preferences", api.updatePreferences)
}

type TranslationResponse struct {
	Language preference.Language `json:"language"`
	Key      string              `json:"key"`
	Text     string              `json:"text"`
}

func (api *i18nApi) messages(ctx echo.Context) error {
	lang, ok := preference.ParseLanguage(ctx.Param("lang"))
	if !ok {
		return errHttpNotFound
	}
	msgs, ok := api.dict.Messages(lang)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, msgs)
}

// translate never fails: unknown languages and keys answer the key itself.
func (api *i18nApi) translate(ctx echo.Context) error {
	lang := preference.Language(ctx.Param("lang"))
	if l, ok := preference.ParseLanguage(string(lang)); ok {
		lang = l
	}
	key := ctx.Param("key")
	return ctx.JSON(http.StatusOK, TranslationResponse{Language: lang, Key: key, Text: api.dict.T(lang, key)})
}

// contextPreferences reads the preference cookies, defaulting unknown values.
func contextPreferences(ctx echo.Context) preference.Preferences {
	var lang, theme string
	if c, err := ctx.Cookie(langCookie); err == nil {
		lang = c.Value
	}
	if c, err := ctx.Cookie(themeCookie); err == nil {
		theme = c.Value
	}
	return preference.Resolve(lang, theme)
}

func (api *i18nApi) preferences(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, contextPreferences(ctx))
}

func (api *i18nApi) updatePreferences(ctx echo.Context) error {
	var data preference.Preferences
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to preference.Preferences")
	}
	data.Clean()
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	prefs := data.Merge(contextPreferences(ctx))
	setPreferenceCookie(ctx, langCookie, string(prefs.Language))
	setPreferenceCookie(ctx, themeCookie, string(prefs.Theme))
	return ctx.JSON(http.StatusOK, prefs)
}

func setPreferenceCookie(ctx echo.Context, name, value string) {
	ctx.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(prefsMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
