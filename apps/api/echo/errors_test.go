package echoapi_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/adspirelabs/punotes/apps/api/echo"
	"github.com/adspirelabs/punotes/core"
)

type loggedError struct {
	msg  string
	args []interface{}
}

type recordingLogger struct {
	mu     sync.Mutex
	errors []loggedError
}

func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Fatal(string, ...interface{}) {}

func (l *recordingLogger) Error(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, loggedError{msg: msg, args: args})
}

type brokenStore struct{}

func (brokenStore) Put(context.Context, string, []byte) (string, error) {
	return "", errors.New("bucket gone")
}

func TestErrorHandler_ServerErrorIsLoggedWithRequest(t *testing.T) {
	rec := &recordingLogger{}
	fx := setup(t, func(o *Options) {
		o.Logger = rec
		o.Snapshots = brokenStore{}
	})

	req, resp := newAuthRequest(http.MethodPost, "/v1/admin/materials/snapshot", getToken(t, fx.conf))
	fx.app.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	require.Len(t, rec.errors, 1)
	logged := rec.errors[0]
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), logged.msg)

	var meta *core.RequestMeta
	var person *core.Person
	for _, arg := range logged.args {
		switch a := arg.(type) {
		case core.RequestMeta:
			meta = &a
		case core.Person:
			person = &a
		case error:
			assert.Contains(t, a.Error(), "bucket gone")
		}
	}
	require.NotNil(t, meta)
	assert.Equal(t, core.RequestMeta{
		ID:     resp.Header().Get(echo.HeaderXRequestID),
		Method: http.MethodPost,
		Path:   "/v1/admin/materials/snapshot",
	}, *meta)
	assert.NotEmpty(t, meta.ID)
	require.NotNil(t, person)
	assert.NotEmpty(t, person.ID)
}
