package models

// Mode selects which part of the timeline is visible.
type Mode string

const (
	// ModePublic shows every non-private message.
	ModePublic Mode = "public"
	// ModePrivate shows only the conversation with the selected recipients.
	ModePrivate Mode = "private"
)
