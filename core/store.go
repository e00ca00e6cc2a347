package core

import (
	"context"
	"errors"
)

// Persisted keys. Each holds exactly one serialized collection or value;
// notifications and chat transcripts are session-only and never stored.
const (
	KeyNotes           = "notes"
	KeyProfile         = "profile"
	KeyJoinedGroups    = "joined-groups"
	KeyRegisteredUsers = "registered-users"
	KeyTasks           = "tasks"
	KeySchedule        = "schedule"
	KeySession         = "session"
)

var ErrKeyNotFound = errors.New("key not found")

// KVStore is the durable store boundary: raw string values under namespaced
// keys, surviving restarts. No transactionality and no atomicity across keys.
// Every Set is visible to the next Get within the same process.
type KVStore interface {
	// Get returns the raw value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
