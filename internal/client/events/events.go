// Package events is the change-notification bus between the engine and its
// observers (UI, CLI, tests). Every payload is a plain-data snapshot of the
// affected entity, never a delta.
package events

// Name identifies what changed.
type Name string

const (
	AuthorsChanged        Name = "authors-changed"
	FriendsChanged        Name = "friends-changed"
	MeChanged             Name = "me-changed"
	MyNamesChanged        Name = "my-names-changed"
	MessagesChanged       Name = "messages-changed"
	ModeChanged           Name = "mode-changed"
	RecipientsChanged     Name = "recipients-changed"
	LastRecipientsChanged Name = "last-recipients-changed"
	UnreadsChanged        Name = "unreads-changed"
	OptionsChanged        Name = "options-changed"
	RecentsChanged        Name = "recents-changed"
	ProgressChanged       Name = "progress-changed"
)

// Event is one notification.
type Event struct {
	Name    Name
	Payload any
}

// Emitter is what the engine needs from a bus.
type Emitter interface {
	Emit(ev Event)
}

// Handler observes events.
type Handler func(ev Event)
