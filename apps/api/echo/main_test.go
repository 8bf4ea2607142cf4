package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	. "github.com/adspirelabs/punotes/apps/api/echo"
	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/blog"
	"github.com/adspirelabs/punotes/core/chat"
	"github.com/adspirelabs/punotes/core/contact"
	"github.com/adspirelabs/punotes/core/dataset"
	"github.com/adspirelabs/punotes/core/i18n"
	"github.com/adspirelabs/punotes/core/literature"
	"github.com/adspirelabs/punotes/core/material"
	"github.com/adspirelabs/punotes/core/page"
	"github.com/adspirelabs/punotes/core/resource"
	appfs "github.com/adspirelabs/punotes/fs"
	"github.com/adspirelabs/punotes/services/email"
	"github.com/adspirelabs/punotes/services/logger"
	"github.com/adspirelabs/punotes/services/snapshot"
	"github.com/adspirelabs/punotes/storage/database/inmem"
	"github.com/adspirelabs/punotes/tests"
)

const adminPassword = "correct horse battery staple"

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errNotFound     = httpErr{Error: "not found"}
)

type fixture struct {
	app         *Server
	conf        *core.Config
	mailSvc     *emailsvc.ConsoleServiceMock
	materialSvc *material.Service
	snapshotDir string
}

func setup(t *testing.T, overrides ...func(*Options)) fixture {
	conf := core.NewTestConfig()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	conf.Admin.PasswordHash = string(hash)

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)
	validate, translator := testutil.NewValidatorAndTranslator()

	// set up DB & repos
	db := inmemdb.OpenCatalog(testutil.MustLoadSeed(t))
	draftDB := inmemdb.Open()

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	materialSvc := material.NewService(inmemdb.NewMaterialRepository(db), validate)
	workspace := material.NewWorkspace(inmemdb.NewMaterialRepository(draftDB), materialSvc, dataset.MaterialCodec{}, validate)
	require.NoError(t, workspace.Reset(context.Background()))

	dict, err := i18n.Load(appfs.FS, "i18n")
	require.NoError(t, err)
	pages, err := page.Load(appfs.FS, "pages/*.md")
	require.NoError(t, err)
	contactSvc, err := contact.NewService(mailSvc, validate, conf.Email.ContactRecipients)
	require.NoError(t, err)
	snapshotDir := t.TempDir()
	snapshots, err := snapshotsvc.NewLocalStore(snapshotDir)
	require.NoError(t, err)

	// set up server
	opts := Options{
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		MaterialSvc:    materialSvc,
		ResourceSvc:    resource.NewService(inmemdb.NewResourceRepository(db)),
		LiteratureSvc:  literature.NewService(inmemdb.NewLiteratureRepository(db)),
		BlogSvc:        blog.NewService(inmemdb.NewBlogRepository(db)),
		Workspace:      workspace,
		Responder:      chat.NewResponder(0),
		Dictionary:     dict,
		Pages:          pages,
		ContactSvc:     contactSvc,
		Snapshots:      snapshots,
		DisableReqLogs: true,
	}
	for _, o := range overrides {
		o(&opts)
	}
	app := NewServer(opts)
	return fixture{app: app, conf: conf, mailSvc: mailSvc, materialSvc: materialSvc, snapshotDir: snapshotDir}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config) string {
	token, err := GenerateToken(conf, GetAdminClaims(conf))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func unmarchall(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("unmarchall() failed: %v; body %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func materialIDs(materials []material.Material) []int {
	ids := make([]int, 0, len(materials))
	for _, m := range materials {
		ids = append(ids, m.ID)
	}
	return ids
}
