// Package models defines the plain-data entities held by the chat engine.
package models

import "github.com/dmitrijs2005/chatcore/internal/client/recipients"

// Message is a post as delivered by the network client. The engine owns a
// message once it is pushed and never mutates it afterwards.
type Message struct {
	// Key is the network-wide unique id of the message.
	Key string `json:"key"`

	// Author is the identity that published the message.
	Author string `json:"author"`

	// Timestamp is the author-assigned time in unix milliseconds. It is not
	// guaranteed to increase across deliveries.
	Timestamp int64 `json:"timestamp"`

	// Private marks an encrypted message addressed to Recipients.
	Private bool `json:"private"`

	// Recipients is the group a private message is addressed to, author
	// included. Nil for public messages.
	Recipients recipients.Group `json:"recipients,omitempty"`

	Text string `json:"text,omitempty"`

	// Root is the thread root the author replied to, if any.
	Root string `json:"root,omitempty"`
}

// Clone returns a copy that shares no slices with m.
func (m Message) Clone() Message {
	m.Recipients = m.Recipients.Clone()
	return m
}

// CloneMessages copies a message slice, never returning nil.
func CloneMessages(in []Message) []Message {
	out := make([]Message, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}
