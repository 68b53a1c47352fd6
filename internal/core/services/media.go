package services

import (
	"context"
	"errors"
	"sync"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
	"github.com/mnemo-labs/mnemo-cli/internal/logger"
)

// mediaEntry is the shared future for one display filename. Done is closed
// exactly once when the entry reaches a terminal state; entries abandoned
// on disposal are never closed.
type mediaEntry struct {
	name  string
	state domain.MediaState
	url   string
	done  chan struct{}
}

// mediaResolver serialises archive member extraction behind a strict
// global FIFO admission queue: a single worker drains the queue, so at
// most one extraction is in flight at any instant. The underlying
// extraction capability is not assumed reentrant.
type mediaResolver struct {
	archive  driven.Archive
	store    driven.ResourceStore
	inverted map[string]string // display filename -> archive-internal path
	notify   func()

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*mediaEntry
	entries map[string]*mediaEntry
	handles []string
	stopped bool
	exited  chan struct{}
}

// newMediaResolver starts the single extraction worker. notify is invoked
// after every terminal transition so dependent views re-render.
func newMediaResolver(archive driven.Archive, store driven.ResourceStore, manifest domain.MediaManifest, notify func()) *mediaResolver {
	r := &mediaResolver{
		archive:  archive,
		store:    store,
		inverted: manifest.Invert(),
		notify:   notify,
		entries:  make(map[string]*mediaEntry),
		exited:   make(chan struct{}),
	}
	r.cond = sync.NewCond(&r.mu)
	go r.work()
	return r
}

// readyURL returns the resolved handle for a name, or "".
func (r *mediaResolver) readyURL(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok && e.state == domain.MediaResolved {
		return e.url
	}
	return ""
}

// resolve returns the shared future for a display filename, enqueuing an
// extraction on first request. Concurrent requests for the same name share
// one entry; a request after a failure creates a fresh entry (failures are
// not cached negatively).
func (r *mediaResolver) resolve(name string) *mediaEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[name]; ok && e.state != domain.MediaFailed {
		return e
	}
	e := &mediaEntry{
		name:  name,
		state: domain.MediaQueued,
		done:  make(chan struct{}),
	}
	r.entries[name] = e
	if r.stopped {
		// Abandoned: the future never resolves once disposed.
		return e
	}
	r.queue = append(r.queue, e)
	r.cond.Signal()
	return e
}

// work drains the admission queue one entry at a time.
func (r *mediaResolver) work() {
	defer close(r.exited)
	for {
		r.mu.Lock()
		for len(r.queue) == 0 && !r.stopped {
			r.cond.Wait()
		}
		if r.stopped {
			r.mu.Unlock()
			return
		}
		e := r.queue[0]
		r.queue = r.queue[1:]
		e.state = domain.MediaExtracting
		internal, known := r.inverted[e.name]
		archive, store := r.archive, r.store
		r.mu.Unlock()

		url := ""
		if !known {
			// A bad media reference must not block the queue.
			logger.Debug("media %q not in manifest, resolving empty", e.name)
		} else {
			data, err := archive.Extract(context.Background(), internal)
			if err != nil {
				logger.Warn("media %q (%s): %v", e.name, internal, err)
			} else if handle, err := store.Put(e.name, data); err != nil {
				logger.Warn("media %q: storing handle: %v", e.name, err)
			} else {
				url = handle
			}
		}

		r.mu.Lock()
		if url != "" {
			e.state = domain.MediaResolved
			e.url = url
			r.handles = append(r.handles, url)
		} else {
			e.state = domain.MediaFailed
		}
		notify := r.notify
		r.mu.Unlock()

		close(e.done)
		if notify != nil {
			notify()
		}
	}
}

// stop halts the worker and revokes every issued handle. Entries still
// queued are abandoned; the owning document is gone and no observer
// remains.
func (r *mediaResolver) stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.queue = nil
	handles := r.handles
	r.handles = nil
	r.cond.Broadcast()
	r.mu.Unlock()

	<-r.exited
	for _, handle := range handles {
		if err := r.store.Release(handle); err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("releasing media handle %q: %v", handle, err)
		}
	}
}
