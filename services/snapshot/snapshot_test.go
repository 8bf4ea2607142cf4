package snapshotsvc

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adspirelabs/punotes/core"
)

func TestName(t *testing.T) {
	ts := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "studyMaterials-20240102T150405Z.json", Name("studyMaterials.json", ts))
}

func TestNew_Disabled(t *testing.T) {
	store, err := New(context.Background(), core.NewTestConfig())
	require.NoError(t, err)
	_, err = store.Put(context.Background(), "x.json", []byte("[]"))
	assert.Equal(t, ErrDisabled, err)
}

func TestLocalStore(t *testing.T) {
	conf := core.NewTestConfig()
	conf.Snapshot.Dir = filepath.Join(t.TempDir(), "snapshots")
	store, err := New(context.Background(), conf)
	require.NoError(t, err)

	loc, err := store.Put(context.Background(), "../escape.json", []byte("[]"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(conf.Snapshot.Dir, "escape.json"), loc)
	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

type putterMock struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *putterMock) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.input = params
	m.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, m.err
}

func TestS3Store_Put(t *testing.T) {
	mock := &putterMock{}
	store := &S3Store{client: mock, bucket: "punotes", region: "ap-south-1", prefix: "snapshots/"}

	loc, err := store.Put(context.Background(), "studyMaterials.json", []byte(`[{"id":1}]`))
	require.NoError(t, err)
	assert.Equal(t, "https://punotes.s3.ap-south-1.amazonaws.com/snapshots/studyMaterials.json", loc)
	assert.Equal(t, "snapshots/studyMaterials.json", aws.ToString(mock.input.Key))
	assert.Equal(t, "application/json", aws.ToString(mock.input.ContentType))
	assert.Equal(t, `[{"id":1}]`, string(mock.body))

	mock.err = errors.New("denied")
	_, err = store.Put(context.Background(), "studyMaterials.json", nil)
	assert.Error(t, err)
}
