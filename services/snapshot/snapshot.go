package snapshotsvc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core"
)

var ErrDisabled = errors.New("snapshots are not configured")

// New returns the S3 store when a bucket is configured, else the local store when a
// directory is configured, else a store refusing every Put.
func New(ctx context.Context, conf *core.Config) (core.SnapshotStore, error) {
	switch {
	case conf.Snapshot.S3Bucket != "":
		return NewS3Store(ctx, conf)
	case conf.Snapshot.Dir != "":
		return NewLocalStore(conf.Snapshot.Dir)
	default:
		return disabledStore{}, nil
	}
}

// Name builds a timestamped object name from a dataset file name,
// e.g. studyMaterials.json -> studyMaterials-20240102T150405Z.json.
func Name(fileName string, t time.Time) string {
	ext := filepath.Ext(fileName)
	return strings.TrimSuffix(fileName, ext) + "-" + t.UTC().Format("20060102T150405Z") + ext
}

type disabledStore struct{}

func (disabledStore) Put(context.Context, string, []byte) (string, error) {
	return "", ErrDisabled
}

type LocalStore struct {
	dir string
}

var _ core.SnapshotStore = (*LocalStore)(nil)

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(err, "creating snapshot dir")
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Put(_ context.Context, name string, data []byte) (string, error) {
	fp := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(fp, data, 0o644); err != nil {
		return "", pkgerrors.Wrap(err, "writing snapshot")
	}
	return fp, nil
}
