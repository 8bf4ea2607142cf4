package echoapi

import (
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/blog"
	"github.com/adspirelabs/punotes/core/chat"
	"github.com/adspirelabs/punotes/core/material"
	"github.com/adspirelabs/punotes/core/page"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "admin not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errAdminDisabled        = echo.NewHTTPError(http.StatusForbidden, "admin access disabled")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
	errSnapshotsDisabled    = echo.NewHTTPError(http.StatusServiceUnavailable, "snapshots disabled")
)

// notFoundOr maps the domain not-found errors to errHttpNotFound and wraps anything else.
func notFoundOr(err error, msg string) error {
	switch errors.Cause(err) {
	case material.ErrNotFound, blog.ErrNotFound, page.ErrNotFound, chat.ErrNoSuchOption:
		return errHttpNotFound
	}
	return errors.Wrap(err, msg)
}

func requestMeta(ctx echo.Context) core.RequestMeta {
	return core.RequestMeta{
		ID:     ctx.Response().Header().Get(echo.HeaderXRequestID),
		Method: ctx.Request().Method,
		Path:   ctx.Request().URL.Path,
	}
}

func isAPIPath(path string) bool {
	return path == "/v1" || strings.HasPrefix(path, "/v1/")
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// Site pages answer 404s with the HTML not-found page.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(
	logger core.Logger,
	translator ut.Translator,
	renderNotFound func(ctx echo.Context) error,
	signalShutdown func(),
) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
			if code == http.StatusNotFound {
				message = errHttpNotFound.Message
			}
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			var person core.Person
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				person.ID = claims.Subject
				person.Username = claims.Subject
			}
			logger.Error(msg, errors.Wrap(err, msg), person, requestMeta(ctx))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Response().Committed {
			return
		}

		if code == http.StatusNotFound && !isAPIPath(ctx.Request().URL.Path) && ctx.Request().Method == http.MethodGet {
			if rErr := renderNotFound(ctx); rErr != nil {
				ctx.Echo().Logger.Error(rErr)
			}
			return
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if ctx.Request().Method == http.MethodHead { // Issue #608
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, message)
		}
		if err != nil {
			ctx.Echo().Logger.Error(err)
		}
	}
}
