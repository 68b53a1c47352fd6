package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driving"
	"github.com/mnemo-labs/mnemo-cli/internal/logger"
)

// Ensure Collection implements the interface.
var _ driving.CollectionService = (*Collection)(nil)

// archiveExts are the container extensions that branch the decode pipeline
// through the archive adapter. Everything else opens as a bare database.
var archiveExts = map[string]bool{
	".apkg":   true,
	".colpkg": true,
	".zip":    true,
	".7z":     true,
	".rar":    true,
	".tar":    true,
	".tgz":    true,
	".gz":     true,
}

// Collection is the collection model: it owns the single source of truth
// for the currently loaded document and broadcasts a notification on every
// state transition. Adapters are injected; there is no hidden shared state
// between instances.
type Collection struct {
	engine    driven.SQLEngine
	archives  driven.ArchiveOpener
	resources driven.ResourceStore
	router    driven.CardRouter

	mu       sync.Mutex
	path     string
	snapshot *domain.Collection
	db       driven.Database
	archive  driven.Archive
	manifest domain.MediaManifest
	media    *mediaResolver
	gen      uint64
	closed   bool

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewCollection creates a collection model with injected adapters.
// router may be nil; view requests are then dropped.
func NewCollection(engine driven.SQLEngine, archives driven.ArchiveOpener, resources driven.ResourceStore, router driven.CardRouter) *Collection {
	return &Collection{
		engine:    engine,
		archives:  archives,
		resources: resources,
		router:    router,
		subs:      make(map[int]func()),
	}
}

// SetPath updates the document path and notifies observers. It never
// re-triggers a decode; SetData is the sole decode trigger.
func (c *Collection) SetPath(path string) {
	c.mu.Lock()
	c.path = path
	c.mu.Unlock()
	c.notifyAll()
}

// Path returns the current document path.
func (c *Collection) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// Collection returns the last-computed snapshot, nil before the first
// successful decode. Consumers must not mutate it.
func (c *Collection) Collection() *domain.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// SetData replaces the loaded document. The pipeline runs strictly in
// sequence: decode bytes, open archive (if the path says so), locate and
// extract the database member, open the SQL engine, run the four
// projection queries, publish. Any failure leaves the previously
// published snapshot in place; a decode superseded by a newer SetData
// publishes nothing.
func (c *Collection) SetData(ctx context.Context, data string) error {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		logger.Error("decoding document payload: %v", err)
		return fmt.Errorf("base64: %v: %w", err, domain.ErrDecode)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrClosed
	}
	c.gen++
	gen := c.gen
	path := c.path
	c.mu.Unlock()

	var (
		archive  driven.Archive
		manifest domain.MediaManifest
		dbBytes  = raw
	)
	if isArchivePath(path) {
		if c.archives == nil {
			return fmt.Errorf("no archive adapter configured: %w", domain.ErrOpen)
		}
		archive, err = c.archives.Open(ctx, raw, path)
		if err != nil {
			logger.Error("opening archive %s: %v", path, err)
			return err
		}
		dbBytes, manifest, err = scanPackage(ctx, archive)
		if err != nil {
			archive.Close()
			logger.Error("scanning archive %s: %v", path, err)
			return err
		}
	}

	db, err := c.engine.Open(ctx, dbBytes)
	if err != nil {
		if archive != nil {
			archive.Close()
		}
		logger.Error("opening database from %s: %v", path, err)
		return err
	}

	snapshot, err := project(ctx, db, path)
	if err != nil {
		db.Close()
		if archive != nil {
			archive.Close()
		}
		logger.Error("projecting %s: %v", path, err)
		return err
	}

	c.mu.Lock()
	if c.closed || c.gen != gen {
		// Superseded by a newer SetData; last writer wins.
		c.mu.Unlock()
		db.Close()
		if archive != nil {
			archive.Close()
		}
		logger.Debug("decode of %s superseded, discarding", path)
		return nil
	}
	c.releaseLoadedLocked()
	c.db = db
	c.archive = archive
	c.snapshot = snapshot
	c.manifest = manifest
	if archive != nil && len(manifest) > 0 {
		c.media = newMediaResolver(archive, c.resources, manifest, c.notifyAll)
	}
	c.mu.Unlock()

	c.notifyAll()
	return nil
}

// MediaURL returns a ready resource handle for a display filename, or ""
// while a background resolution is enqueued. Callers re-invoke after every
// notification to pick up newly available media.
func (c *Collection) MediaURL(name string) string {
	c.mu.Lock()
	media := c.media
	c.mu.Unlock()
	if media == nil {
		return ""
	}
	if url := media.readyURL(name); url != "" {
		return url
	}
	media.resolve(name)
	return ""
}

// MediaState reports the resolution state of a display filename.
func (c *Collection) MediaState(name string) domain.MediaState {
	c.mu.Lock()
	media := c.media
	c.mu.Unlock()
	if media == nil {
		return domain.MediaUnrequested
	}
	media.mu.Lock()
	defer media.mu.Unlock()
	if e, ok := media.entries[name]; ok {
		return e.state
	}
	return domain.MediaUnrequested
}

// Subscribe registers a state-changed observer and returns its disposer.
func (c *Collection) Subscribe(fn func()) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

// RequestDecks forwards a filtered-view request to the router.
// Fire-and-forget; no response is awaited.
func (c *Collection) RequestDecks(query domain.CardsQuery) {
	if c.router == nil {
		return
	}
	c.router.RequestCards(domain.CardsRequest{Model: c, Query: query})
}

// RequestNewCard forwards a composition-view request to the router.
func (c *Collection) RequestNewCard(card *domain.Card, note *domain.Note, tmpl *domain.Template) {
	if c.router == nil {
		return
	}
	c.router.RequestNewCard(domain.NewCardRequest{
		Collection: c,
		Card:       card,
		Note:       note,
		Template:   tmpl,
	})
}

// Query runs ad hoc SQL text against the open database. The interactive
// query tool shares the same engine boundary as the projection.
func (c *Collection) Query(ctx context.Context, sqlText string) ([]domain.Row, error) {
	c.mu.Lock()
	db := c.db
	c.mu.Unlock()
	if db == nil {
		return nil, domain.ErrNotFound
	}
	return db.Query(ctx, sqlText)
}

// MediaNames returns the display filenames of the loaded manifest in
// sorted order, empty for bare databases.
func (c *Collection) MediaNames() []string {
	c.mu.Lock()
	manifest := c.manifest
	c.mu.Unlock()

	names := make([]string, 0, len(manifest))
	for _, display := range manifest {
		names = append(names, display)
	}
	sort.Strings(names)
	return names
}

// ResolveMedia blocks until a display filename reaches a terminal state
// and returns its handle ("" when resolution failed). Used by surfaces
// that cannot re-render on notification, like one-shot CLI commands.
func (c *Collection) ResolveMedia(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	media := c.media
	c.mu.Unlock()
	if media == nil {
		return "", nil
	}
	entry := media.resolve(name)
	select {
	case <-entry.done:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	media.mu.Lock()
	defer media.mu.Unlock()
	return entry.url, nil
}

// Export round-trips the open database back to bytes, for save-back.
func (c *Collection) Export(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	db := c.db
	c.mu.Unlock()
	if db == nil {
		return nil, domain.ErrNotFound
	}
	return db.Export(ctx)
}

// Close releases the database handle, the archive handle, the media worker
// and every issued resource handle. Observers are dropped.
func (c *Collection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.releaseLoadedLocked()
	c.mu.Unlock()

	c.subMu.Lock()
	c.subs = make(map[int]func())
	c.subMu.Unlock()
	return nil
}

// releaseLoadedLocked frees the handles of the currently loaded document.
// Caller holds c.mu.
func (c *Collection) releaseLoadedLocked() {
	c.manifest = nil
	if c.media != nil {
		media := c.media
		c.media = nil
		// stop blocks until the worker exits; it takes its own lock.
		go media.stop()
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			logger.Warn("closing database: %v", err)
		}
		c.db = nil
	}
	if c.archive != nil {
		if err := c.archive.Close(); err != nil {
			logger.Warn("closing archive: %v", err)
		}
		c.archive = nil
	}
}

// notifyAll invokes every observer outside the state lock.
func (c *Collection) notifyAll() {
	c.subMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// isArchivePath reports whether a path selects the archive branch of the
// decode pipeline. Derived from the current path only, at decode time.
func isArchivePath(path string) bool {
	return archiveExts[strings.ToLower(filepath.Ext(path))]
}

// scanPackage locates the well-known members of a card package: the
// embedded database and the media manifest. A missing database member
// fails the decode; a missing or malformed manifest only disables media.
func scanPackage(ctx context.Context, archive driven.Archive) ([]byte, domain.MediaManifest, error) {
	var dbBytes []byte
	var manifest domain.MediaManifest

	for _, member := range archive.Members() {
		switch member.Path {
		case domain.PackageDatabaseMember:
			data, err := archive.Extract(ctx, member.Path)
			if err != nil {
				return nil, nil, err
			}
			dbBytes = data
		case domain.PackageDatabaseMemberLegacy:
			if dbBytes != nil {
				continue
			}
			data, err := archive.Extract(ctx, member.Path)
			if err != nil {
				return nil, nil, err
			}
			dbBytes = data
		case domain.PackageMediaMember:
			data, err := archive.Extract(ctx, member.Path)
			if err != nil {
				logger.Warn("extracting media manifest: %v", err)
				continue
			}
			if err := json.Unmarshal(data, &manifest); err != nil {
				logger.Warn("parsing media manifest: %v: %v", err, domain.ErrManifest)
				manifest = nil
			}
		}
	}

	if dbBytes == nil {
		return nil, nil, fmt.Errorf("package has no %s member: %w", domain.PackageDatabaseMember, domain.ErrOpen)
	}
	return dbBytes, manifest, nil
}

// project runs the four fixed queries and folds the results into a new
// snapshot. Query errors abort the whole decode; no partial snapshot is
// ever produced.
func project(ctx context.Context, db driven.Database, path string) (*domain.Collection, error) {
	cardRows, err := db.Query(ctx, qCards)
	if err != nil {
		return nil, err
	}
	metaRows, err := db.Query(ctx, qCollMeta)
	if err != nil {
		return nil, err
	}
	noteRows, err := db.Query(ctx, qNotes)
	if err != nil {
		return nil, err
	}
	revRows, err := db.Query(ctx, qRevs)
	if err != nil {
		return nil, err
	}

	meta, err := projectMeta(metaRows)
	if err != nil {
		return nil, err
	}

	return &domain.Collection{
		Cards:  projectCards(cardRows),
		Notes:  projectNotes(noteRows),
		Meta:   meta,
		Revlog: projectRevs(revRows),
		Path:   path,
	}, nil
}
