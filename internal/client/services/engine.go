// Package services is the chat engine: the state behind a chat UI and the
// operations that change it.
//
// All state lives in one Engine guarded by one mutex. Each operation applies
// its synchronous changes in full while holding the lock, queues the change
// notifications it produces, and dispatches them in order once the lock is
// released, so event handlers are free to call back into the engine. Calls to
// the network client are made without the lock held.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/models"
	"github.com/dmitrijs2005/chatcore/internal/client/network"
	"github.com/dmitrijs2005/chatcore/internal/client/recipients"
	"github.com/dmitrijs2005/chatcore/internal/client/storage"
	"github.com/dmitrijs2005/chatcore/internal/logging"
)

// DefaultTimeWindow is used for read-marker expiry until the timeWindow
// option is set.
const DefaultTimeWindow = 7 * 24 * time.Hour

// Option customises an Engine at construction.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithNetwork sets the initial network client.
func WithNetwork(c network.Client) Option {
	return func(e *Engine) { e.network = c }
}

// WithOptions seeds the option map. Seeded values are not persisted.
func WithOptions(opts models.Options) Option {
	return func(e *Engine) {
		for k, v := range opts {
			e.options[k] = v
		}
	}
}

type Engine struct {
	Authors    AuthorService
	Me         MeService
	Messages   MessageService
	Mode       ModeService
	Recipients RecipientService
	Unreads    UnreadService
	ReadState  ReadStateService
	Recents    RecentsService
	Options    OptionService
	Progress   ProgressService

	bus   events.Emitter
	repos *storage.Repositories
	log   logging.Logger
	now   func() time.Time

	mu             sync.Mutex
	pending        []events.Event
	network        network.Client
	me             string
	myNames        []string
	authors        map[string]string
	friends        models.Friends
	messages       []models.Message
	filtered       []models.Message
	mode           models.Mode
	recipients     recipients.Group
	lastRecipients recipients.Group
	root           string
	unreads        []recipients.Group
	options        models.Options
	progress       models.Progress

	bg sync.WaitGroup
}

// NewEngine builds an Engine in Public mode with empty state. Notifications
// go to bus; read markers, recents and persisted options live in repos.
func NewEngine(bus events.Emitter, repos *storage.Repositories, log logging.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logging.Nop()
	}

	e := &Engine{
		bus:        bus,
		repos:      repos,
		log:        log,
		now:        time.Now,
		myNames:    []string{},
		authors:    map[string]string{},
		friends:    models.Friends{Following: []string{}, Blocking: []string{}},
		messages:   []models.Message{},
		filtered:   []models.Message{},
		mode:       models.ModePublic,
		recipients: recipients.New(),
		unreads:    []recipients.Group{},
		options:    models.Options{models.OptionTimeWindow: DefaultTimeWindow.Milliseconds()},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.Authors = newAuthorService(e)
	e.Me = newMeService(e)
	e.Messages = newMessageService(e)
	e.Mode = newModeService(e)
	e.Recipients = newRecipientService(e)
	e.Unreads = newUnreadService(e)
	e.ReadState = newReadStateService(e)
	e.Recents = newRecentsService(e)
	e.Options = newOptionService(e)
	e.Progress = newProgressService(e)

	return e
}

// SetNetwork installs (or replaces) the network client.
func (e *Engine) SetNetwork(c network.Client) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.network = c
}

func (e *Engine) Network() network.Client {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.network
}

// Wait blocks until every background name resolution started so far has
// settled.
func (e *Engine) Wait() {
	e.bg.Wait()
}

// update runs fn under the state lock and then dispatches whatever fn
// queued with emitLocked.
func (e *Engine) update(fn func()) {
	queued := e.commit(fn)

	if e.bus == nil {
		return
	}
	for _, ev := range queued {
		e.bus.Emit(ev)
	}
}

// commit runs fn under the state lock and hands back the queued events.
// The lock is released and the queue emptied even if fn panics.
func (e *Engine) commit(fn func()) (queued []events.Event) {
	e.mu.Lock()
	defer func() {
		queued, e.pending = e.pending, nil
		e.mu.Unlock()
	}()
	fn()
	return queued
}

// view runs fn under the state lock for reading.
func (e *Engine) view(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}

func (e *Engine) emitLocked(name events.Name, payload any) {
	e.pending = append(e.pending, events.Event{Name: name, Payload: payload})
}

// background runs fn on its own goroutine, tracked by Wait. Cancelling ctx
// does not stop it.
func (e *Engine) background(ctx context.Context, fn func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	e.bg.Add(1)
	go func() {
		defer e.bg.Done()
		fn(ctx)
	}()
}

func groupsPayload(gs []recipients.Group) [][]string {
	out := make([][]string, len(gs))
	for i, g := range gs {
		out[i] = g.Strings()
	}
	return out
}
