package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/adspirelabs/punotes/apps/api/echo"
	"github.com/adspirelabs/punotes/core/chat"
)

func TestChatAPI_Reply(t *testing.T) {
	fx := setup(t)

	tests := []struct {
		name            string
		message         string
		wantAnswer      string
		wantSuggestions int
	}{
		{name: "keyword", message: "I need BBA notes", wantAnswer: chat.DefaultOptions[0].Response, wantSuggestions: 4},
		{name: "first option wins", message: "bba-bi please", wantAnswer: chat.DefaultOptions[0].Response, wantSuggestions: 4},
		{name: "fallback", message: "hello there", wantAnswer: chat.FallbackText, wantSuggestions: 4},
		{name: "law", message: "any LAW notes?", wantAnswer: chat.DefaultOptions[2].Response, wantSuggestions: 4},
		{name: "no suggestions", message: "nepali books", wantAnswer: chat.DefaultOptions[4].Response},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/chat", marchallObj(t, ChatRequest{Message: tt.message}))
			fx.app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var ex chat.Exchange
			unmarchall(t, rec, &ex)
			assert.Equal(t, tt.message, ex.Question.Text)
			assert.False(t, ex.Question.IsBot)
			assert.True(t, ex.Answer.IsBot)
			assert.Equal(t, tt.wantAnswer, ex.Answer.Text)
			assert.Len(t, ex.Answer.Suggestions, tt.wantSuggestions)
			assert.NotEqual(t, ex.Question.ID, ex.Answer.ID)
		})
	}

	t.Run("blank message", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"message": chat.ErrEmptyMessage.Error()}),
		}
		req, rec := newRequest(http.MethodPost, "/v1/chat", marchallObj(t, ChatRequest{Message: "   "}))
		fx.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func TestChatAPI_Options(t *testing.T) {
	fx := setup(t)

	t.Run("list", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/chat/options")
		fx.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ChatOptionsResponse
		unmarchall(t, rec, &resp)
		assert.Equal(t, chat.WelcomeText, resp.Welcome.Text)
		assert.Equal(t, chat.DefaultOptions, resp.Options)
	})

	t.Run("choose contact", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/chat/options/3")
		fx.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var ex chat.Exchange
		unmarchall(t, rec, &ex)
		assert.Equal(t, chat.DefaultOptions[3].Text, ex.Question.Text)
		assert.Contains(t, ex.Answer.Text, "WhatsApp: https://wa.me/9779845323733")
		assert.Contains(t, ex.Answer.Text, "Email: info@sarozpokhrel.com.np")
	})

	for _, path := range []string{"/v1/chat/options/9", "/v1/chat/options/-1", "/v1/chat/options/x"} {
		t.Run("unknown "+path, func(t *testing.T) {
			tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}
			req, rec := newRequest(http.MethodPost, path)
			fx.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
