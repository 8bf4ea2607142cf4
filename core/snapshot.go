package core

import "context"

// SnapshotStore keeps copies of exported catalog files outside the running process.
type SnapshotStore interface {
	// Put stores data under name and returns where it ended up (path or URL).
	Put(ctx context.Context, name string, data []byte) (string, error)
}
