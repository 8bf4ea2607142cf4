package watchsvc

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adspirelabs/punotes/core"
	logsvc "github.com/adspirelabs/punotes/services/logger"
)

func newLogger(buf *bytes.Buffer) core.Logger {
	l := logsvc.NewRollbarLogger(log.New(buf, "", 0), core.NewTestConfig())
	l.Enable(false)
	return l
}

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	var calls int32
	reloaded := make(chan struct{}, 10)
	w := New(dir, 200*time.Millisecond, newLogger(&bytes.Buffer{}), func() error {
		atomic.AddInt32(&calls, 1)
		reloaded <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond) // let the watch start

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "studyMaterials.json"), []byte("[]"), 0o644))
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_FailedReloadIsLogged(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	failed := make(chan struct{}, 1)
	w := New(dir, time.Millisecond, newLogger(&buf), func() error {
		defer func() { failed <- struct{}{} }()
		return errors.New("bad json")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "blogPosts.json"), []byte("nope"), 0o644))
	select {
	case <-failed:
	case <-time.After(5 * time.Second):
		t.Fatal("reload was not attempted")
	}
}

func TestRun_MissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), 0, newLogger(&bytes.Buffer{}), func() error { return nil })
	assert.Error(t, w.Run(context.Background()))
}
