package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
)

// fakeEngine serves scripted tables keyed by the projection statements.
type fakeEngine struct {
	tables  map[string][]domain.Row
	openErr error
	failSQL string // statement that fails with ErrQuery

	opened []([]byte)
}

func (e *fakeEngine) Open(_ context.Context, data []byte) (driven.Database, error) {
	if e.openErr != nil {
		return nil, e.openErr
	}
	e.opened = append(e.opened, data)
	return &fakeDB{engine: e}, nil
}

type fakeDB struct {
	engine *fakeEngine
	closed bool
}

func (d *fakeDB) Query(_ context.Context, sqlText string) ([]domain.Row, error) {
	if sqlText == d.engine.failSQL {
		return nil, fmt.Errorf("scripted failure: %w", domain.ErrQuery)
	}
	return d.engine.tables[sqlText], nil
}

func (d *fakeDB) Export(_ context.Context) ([]byte, error) { return []byte("exported"), nil }

func (d *fakeDB) Close() error {
	d.closed = true
	return nil
}

// fakeArchive holds members in memory and counts extractions. A non-zero
// delay makes overlap detectable; inFlight trips overlapped when two
// extractions ever run concurrently.
type fakeArchive struct {
	members    []domain.ArchiveMember
	data       map[string][]byte
	delay      time.Duration
	extractErr map[string]error

	extracts   map[string]*int64
	mu         sync.Mutex
	inFlight   int32
	overlapped atomic.Bool
	closed     bool
}

func newFakeArchive(data map[string][]byte) *fakeArchive {
	a := &fakeArchive{
		data:       data,
		extracts:   make(map[string]*int64),
		extractErr: make(map[string]error),
	}
	for path := range data {
		a.members = append(a.members, domain.ArchiveMember{Path: path, Size: int64(len(data[path]))})
		var n int64
		a.extracts[path] = &n
	}
	return a
}

func (a *fakeArchive) Members() []domain.ArchiveMember { return a.members }

func (a *fakeArchive) Extract(_ context.Context, path string) ([]byte, error) {
	if atomic.AddInt32(&a.inFlight, 1) > 1 {
		a.overlapped.Store(true)
	}
	defer atomic.AddInt32(&a.inFlight, -1)

	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	if counter, ok := a.extracts[path]; ok {
		atomic.AddInt64(counter, 1)
	}
	if err := a.extractErr[path]; err != nil {
		return nil, err
	}
	data, ok := a.data[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (a *fakeArchive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

func (a *fakeArchive) extractCount(path string) int64 {
	if counter, ok := a.extracts[path]; ok {
		return atomic.LoadInt64(counter)
	}
	return 0
}

// fakeOpener hands out a prepared archive regardless of bytes.
type fakeOpener struct {
	archive driven.Archive
	err     error
}

func (o *fakeOpener) Open(context.Context, []byte, string) (driven.Archive, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.archive, nil
}

// fakeResources issues fake:// handles and tracks releases.
type fakeResources struct {
	mu       sync.Mutex
	handles  map[string]string
	released []string
	putErr   error
}

func newFakeResources() *fakeResources {
	return &fakeResources{handles: make(map[string]string)}
}

func (s *fakeResources) Put(name string, _ []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return "", s.putErr
	}
	handle := "fake://" + name
	s.handles[handle] = name
	return handle, nil
}

func (s *fakeResources) Release(handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handles, handle)
	s.released = append(s.released, handle)
	return nil
}

func (s *fakeResources) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles = make(map[string]string)
	return nil
}

// fakeRouter records outbound requests.
type fakeRouter struct {
	mu       sync.Mutex
	cards    []domain.CardsRequest
	newCards []domain.NewCardRequest
}

func (r *fakeRouter) RequestCards(req domain.CardsRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards = append(r.cards, req)
}

func (r *fakeRouter) RequestNewCard(req domain.NewCardRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.newCards = append(r.newCards, req)
}

// scenarioTables is the bare-database fixture from the viewer's basic
// round-trip: one card, one note, one col row with models and decks JSON.
func scenarioTables() map[string][]domain.Row {
	return map[string][]domain.Row{
		qCards: {
			{
				Columns: []string{"id", "nid", "did", "ord"},
				Values:  map[string]any{"id": int64(1), "nid": int64(10), "did": int64(1), "ord": int64(0)},
			},
		},
		qNotes: {
			{
				Columns: []string{"id", "mid", "flds"},
				Values:  map[string]any{"id": int64(10), "mid": int64(100), "flds": "front\x1fback"},
			},
		},
		qCollMeta: {
			{
				Columns: []string{"id", "models", "decks"},
				Values: map[string]any{
					"id":     int64(1),
					"models": `{"100":{"flds":[{"name":"Front","ord":0},{"name":"Back","ord":1}],"tmpls":[{"ord":0,"qfmt":"{{Front}}","afmt":"{{Back}}"}]}}`,
					"decks":  `{"1":{"id":1,"name":"Default"}}`,
				},
			},
		},
		qRevs: {},
	}
}

func b64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
