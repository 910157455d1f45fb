// Package autosave debounces writing-workspace saves: a fast local
// cache write followed by a slower remote save, with the cache entry
// kept until the remote side confirms.
package autosave

import (
	"context"
	"sync"
	"time"
)

// Snapshot is one saveable state of a workspace.
type Snapshot struct {
	IdeaID     string
	Pages      map[string]string
	ActivePage string
	WordCount  int
	Timestamp  time.Time
}

// LocalStore is the fast cache for unsaved changes.
type LocalStore interface {
	Put(key string, s Snapshot) error
	Delete(key string) error
}

// RemoteStore persists a snapshot durably.
type RemoteStore interface {
	Save(ctx context.Context, s Snapshot) error
}

// Options tunes the debounce intervals. Zero values fall back to the
// defaults used in production.
type Options struct {
	LocalDelay  time.Duration
	RemoteDelay time.Duration
}

const (
	defaultLocalDelay  = 500 * time.Millisecond
	defaultRemoteDelay = 2000 * time.Millisecond
)

// Coordinator debounces snapshot changes onto a local and a remote
// store. Every change restarts both timers: the local write lands
// first, the remote write later. The local cache entry is removed only
// after a remote save succeeds, so a remote failure leaves the change
// recoverable from cache.
type Coordinator struct {
	local  LocalStore
	remote RemoteStore
	opts   Options

	mu          sync.Mutex
	pending     *Snapshot
	localTimer  *time.Timer
	remoteTimer *time.Timer
	lastErr     error
	lastSaved   time.Time
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(local LocalStore, remote RemoteStore, opts Options) *Coordinator {
	if opts.LocalDelay <= 0 {
		opts.LocalDelay = defaultLocalDelay
	}
	if opts.RemoteDelay <= 0 {
		opts.RemoteDelay = defaultRemoteDelay
	}
	return &Coordinator{local: local, remote: remote, opts: opts}
}

// Change registers a new snapshot and restarts both debounce timers.
func (c *Coordinator) Change(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = &s

	if c.localTimer != nil {
		c.localTimer.Stop()
	}
	if c.remoteTimer != nil {
		c.remoteTimer.Stop()
	}

	c.localTimer = time.AfterFunc(c.opts.LocalDelay, c.saveLocal)
	c.remoteTimer = time.AfterFunc(c.opts.RemoteDelay, c.saveRemote)
}

// Flush cancels the timers and runs both saves immediately. Used on
// shutdown or page switch.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	if c.localTimer != nil {
		c.localTimer.Stop()
	}
	if c.remoteTimer != nil {
		c.remoteTimer.Stop()
	}
	c.mu.Unlock()

	c.saveLocal()
	return c.flushRemote(ctx)
}

// Err returns the error of the most recent remote attempt, or nil.
func (c *Coordinator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// LastSaved returns when the most recent remote save succeeded.
func (c *Coordinator) LastSaved() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSaved
}

func (c *Coordinator) saveLocal() {
	c.mu.Lock()
	s := c.pending
	c.mu.Unlock()
	if s == nil {
		return
	}
	c.local.Put(cacheKey(s.IdeaID), *s) //nolint:errcheck
}

func (c *Coordinator) saveRemote() {
	c.flushRemote(context.Background()) //nolint:errcheck
}

func (c *Coordinator) flushRemote(ctx context.Context) error {
	c.mu.Lock()
	s := c.pending
	c.mu.Unlock()
	if s == nil {
		return nil
	}

	err := c.remote.Save(ctx, *s)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != s {
		// A newer change landed while this save was in flight; its own
		// save cycle owns the cache entry and the error state.
		return err
	}
	c.lastErr = err
	if err != nil {
		// Cache entry stays; the next debounce cycle retries.
		return err
	}
	c.lastSaved = time.Now()
	c.pending = nil
	return c.local.Delete(cacheKey(s.IdeaID))
}

func cacheKey(ideaID string) string {
	return "writing-" + ideaID
}
