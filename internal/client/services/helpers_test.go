package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/models"
	"github.com/dmitrijs2005/chatcore/internal/client/recipients"
	"github.com/dmitrijs2005/chatcore/internal/client/storage"
	"github.com/dmitrijs2005/chatcore/internal/logging"
	"github.com/stretchr/testify/require"
)

var testNow = time.UnixMilli(1_700_000_000_000)

var errLookup = errors.New("lookup failed")

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newEngineOn(db *sql.DB, opts ...Option) (*Engine, *events.Recorder) {
	rec := &events.Recorder{}
	all := append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewEngine(rec, storage.NewRepositories(db), logging.Nop(), all...), rec
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *events.Recorder) {
	t.Helper()
	return newEngineOn(openTestDB(t), opts...)
}

// newTestEngineAs is newTestEngine with the local identity set and the
// recorder cleared.
func newTestEngineAs(t *testing.T, me string, opts ...Option) (*Engine, *events.Recorder) {
	t.Helper()
	e, rec := newTestEngine(t, opts...)
	e.Me.Set(context.Background(), me)
	rec.Reset()
	return e, rec
}

func publicMsg(key string, ts int64) models.Message {
	return models.Message{Key: key, Author: "someone", Timestamp: ts}
}

func privateMsg(key, author string, ts int64, to ...string) models.Message {
	return models.Message{Key: key, Author: author, Timestamp: ts, Private: true, Recipients: recipients.New(to...)}
}

func keysOf(ms []models.Message) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Key)
	}
	return out
}

func eventNames(evs []events.Event) []events.Name {
	out := make([]events.Name, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Name)
	}
	return out
}

// fakeNetwork implements every capability the engine looks for.
type fakeNetwork struct {
	mu sync.Mutex

	names    map[string]string
	nameErrs map[string]error
	calls    map[string]int

	history    map[string]string
	historyErr error

	graph      map[string]*bool
	friendsErr error
	sources    []string
}

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{
		names:    map[string]string{},
		nameErrs: map[string]error{},
		calls:    map[string]int{},
	}
}

func (f *fakeNetwork) Name(_ context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[id]++
	if err := f.nameErrs[id]; err != nil {
		return "", err
	}
	return f.names[id], nil
}

func (f *fakeNetwork) Names(_ context.Context, _ string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.history, f.historyErr
}

func (f *fakeNetwork) Friends(_ context.Context, source string) (map[string]*bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, source)
	return f.graph, f.friendsErr
}

func (f *fakeNetwork) nameCalls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

func (f *fakeNetwork) totalNameCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// bareClient has none of the capabilities.
type bareClient struct{}

func ptr[T any](v T) *T { return &v }
