// Package lock implements the cross-process mutual exclusion used by the
// sync orchestrator: an expiring lease token in a shared directory.
// The contract is "expiring token, unconditional release, skip-on-contention":
// contention is a normal skip condition, never an error, and TTL expiry is
// the backstop if a crashed holder never releases.
package lock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// DefaultTTL is the lease lifetime. A lease older than this is treated as
// abandoned and may be taken over.
const DefaultTTL = 10 * time.Second

// Token is the lease payload visible to every process sharing the directory.
type Token struct {
	Timestamp time.Time `json:"timestamp"`
	OwnerID   string    `json:"ownerId"`
}

// FileLease is a file-based expiring lease. The token file carries the TTL
// semantics; a short-lived flock guards the token read-modify-write so two
// processes cannot interleave an acquire.
type FileLease struct {
	now       func() time.Time
	fl        *flock.Flock
	tokenPath string
	ownerID   string
	ttl       time.Duration
}

// NewFileLease creates a lease rooted in dir with the given TTL. Each lease
// instance gets a unique owner id. A non-positive ttl falls back to
// DefaultTTL.
func NewFileLease(dir string, ttl time.Duration) *FileLease {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileLease{
		tokenPath: filepath.Join(dir, "sync.lease"),
		fl:        flock.New(filepath.Join(dir, "sync.lease.lock")),
		ownerID:   uuid.New().String(),
		ttl:       ttl,
		now:       time.Now,
	}
}

// OwnerID returns this lease instance's identity.
func (l *FileLease) OwnerID() string { return l.ownerID }

// TryAcquire attempts to take the lease. It returns (false, nil) when an
// unexpired lease held by another owner exists; that is contention, not an
// error. A lease written at t is still held at t+TTL/2 and ignorable once
// its age exceeds the TTL.
func (l *FileLease) TryAcquire() (bool, error) {
	locked, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to lock lease file: %w", err)
	}
	if !locked {
		// Another process is mid acquire/release; defer to the next tick.
		return false, nil
	}
	defer func() {
		_ = l.fl.Unlock()
	}()

	token, err := l.readToken()
	if err != nil {
		return false, err
	}
	if token != nil && token.OwnerID != l.ownerID && l.now().Sub(token.Timestamp) < l.ttl {
		return false, nil
	}

	return true, l.writeToken()
}

// Release gives the lease up. It must be called on every code path after a
// successful TryAcquire, including failures; if the holder was already
// superseded by an expired-lease takeover, Release is a no-op.
func (l *FileLease) Release() error {
	if err := l.fl.Lock(); err != nil {
		return fmt.Errorf("failed to lock lease file: %w", err)
	}
	defer func() {
		_ = l.fl.Unlock()
	}()

	token, err := l.readToken()
	if err != nil {
		return err
	}
	if token == nil || token.OwnerID != l.ownerID {
		return nil
	}

	if err := os.Remove(l.tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lease token: %w", err)
	}
	return nil
}

// readToken loads the current lease token. A missing or unparseable token
// counts as no lease: a corrupt token must not wedge every future cycle.
func (l *FileLease) readToken() (*Token, error) {
	data, err := os.ReadFile(l.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lease token: %w", err)
	}

	token := &Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, nil
	}
	return token, nil
}

func (l *FileLease) writeToken() error {
	data, err := json.Marshal(Token{
		Timestamp: l.now().UTC(),
		OwnerID:   l.ownerID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal lease token: %w", err)
	}

	if err := os.WriteFile(l.tokenPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write lease token: %w", err)
	}
	return nil
}
