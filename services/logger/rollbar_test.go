package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adspirelabs/punotes/core"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "", 0), core.NewTestConfig())
	l.Enable(false)

	t.Run("person is reported, not printed", func(t *testing.T) {
		person := core.Person{ID: "admin", Username: "admin"}
		e := newEntry("boom", []interface{}{errors.New("cause"), person, core.Person{ID: "other"}})
		assert.Equal(t, []interface{}{"boom", errors.New("cause")}, e.report)
		assert.Equal(t, &person, e.person)

		buf.Reset()
		l.Error("boom", errors.New("cause"), person)
		assert.Equal(t, "boom\ncause\n", buf.String())
	})

	t.Run("request meta becomes custom data", func(t *testing.T) {
		req := core.RequestMeta{ID: "req-1", Method: "POST", Path: "/v1/admin/materials/import"}
		e := newEntry("boom", []interface{}{errors.New("cause"), map[string]interface{}{"kind": "materials"}, req})
		assert.Equal(t, []interface{}{
			"boom",
			errors.New("cause"),
			map[string]interface{}{
				"kind":       "materials",
				"request_id": "req-1",
				"method":     "POST",
				"path":       "/v1/admin/materials/import",
			},
		}, e.report)

		buf.Reset()
		l.Error("boom", errors.New("cause"), req)
		assert.Equal(t, "[req-1] POST /v1/admin/materials/import: boom\ncause\n", buf.String())
	})
}
