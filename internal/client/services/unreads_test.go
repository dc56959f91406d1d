package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/recipients"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPush_UnreadDedup(t *testing.T) {
	e, rec := newTestEngineAs(t, "me")
	ctx := context.Background()

	e.Messages.Push(ctx, privateMsg("a", "x", 1, "y", "me", "x"))
	e.Messages.Push(ctx, privateMsg("b", "x", 2, "x", "y", "me"))
	e.Messages.Push(ctx, privateMsg("c", "y", 3, "me", "y", "x"))

	unreads := e.Unreads.Get()
	require.Len(t, unreads, 1)
	assert.Equal(t, recipients.Group{"x", "y"}, unreads[0])
	assert.Len(t, rec.Named(events.UnreadsChanged), 1)
}

func TestPush_UnreadScenario(t *testing.T) {
	e, rec := newTestEngineAs(t, "me")
	ctx := context.Background()

	e.Messages.Push(ctx, privateMsg("m1", "x", testNow.UnixMilli(), "me", "y"))

	require.Equal(t, []recipients.Group{{"y"}}, e.Unreads.Get())
	ev, ok := rec.Last(events.UnreadsChanged)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"y"}}, ev.Payload)

	recents, err := e.Recents.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []recipients.Group{{"me", "y"}}, recents)

	require.NoError(t, e.Recipients.Set(ctx, "y"))
	assert.Empty(t, e.Unreads.Get())
}

func TestPush_NoUnread(t *testing.T) {
	ctx := context.Background()
	ts := testNow.UnixMilli() - 1000

	tests := []struct {
		name   string
		author string
		setup  func(t *testing.T, e *Engine)
	}{
		{name: "locally authored", author: "me"},
		{
			name:   "already read",
			author: "x",
			setup: func(t *testing.T, e *Engine) {
				require.NoError(t, e.ReadState.StoreAsRead(ctx, privateMsg("k", "x", ts, "me", "x")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestEngineAs(t, "me")
			if tt.setup != nil {
				tt.setup(t, e)
			}

			e.Messages.Push(ctx, privateMsg("k", tt.author, ts, "me", "x"))

			assert.Empty(t, e.Unreads.Get())
			assert.Empty(t, rec.Named(events.UnreadsChanged))
		})
	}
}

func TestPush_MessageOnlyToMeRaisesNoUnread(t *testing.T) {
	e, rec := newTestEngineAs(t, "me")
	ctx := context.Background()

	e.Messages.Push(ctx, privateMsg("k", "x", testNow.UnixMilli(), "me"))

	assert.Empty(t, e.Unreads.Get(), "an empty group could never be selected and cleared")
	assert.Empty(t, rec.Named(events.UnreadsChanged))
	assert.Empty(t, rec.Named(events.RecentsChanged))
	assert.Equal(t, []string{"k"}, keysOf(e.Messages.Timeline()))
}

func TestPush_PublicMessagesNeverUnread(t *testing.T) {
	e, _ := newTestEngineAs(t, "me")

	e.Messages.Push(context.Background(), publicMsg("p", 1))

	assert.Empty(t, e.Unreads.Get())
}

func TestPush_ExpiredMarkerCountsAsUnread(t *testing.T) {
	e, _ := newTestEngineAs(t, "me")
	ctx := context.Background()

	old := privateMsg("old", "x", testNow.Add(-8*24*time.Hour).UnixMilli(), "me", "x")
	require.NoError(t, e.ReadState.StoreAsRead(ctx, old))

	e.Messages.Push(ctx, old)

	assert.Equal(t, []recipients.Group{{"x"}}, e.Unreads.Get())
}

func TestSetAsRead_RemovesOnlyEqualGroups(t *testing.T) {
	e, rec := newTestEngineAs(t, "me")
	ctx := context.Background()

	e.Unreads.Add(recipients.Group{"y"})
	e.Unreads.Add(recipients.Group{"z", "y"})
	e.Unreads.Add(recipients.Group{"z"})
	rec.Reset()

	e.Unreads.SetAsRead(ctx, recipients.Group{"y", "me"})

	assert.Equal(t, []recipients.Group{{"y", "z"}, {"z"}}, e.Unreads.Get())
	ev, ok := rec.Last(events.UnreadsChanged)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"y", "z"}, {"z"}}, ev.Payload)
}

func TestSetAsRead_MarksFilteredView(t *testing.T) {
	e, _ := newTestEngineAs(t, "me")
	ctx := context.Background()

	require.NoError(t, e.Recipients.Set(ctx, "y"))
	msg := privateMsg("y1", "y", testNow.UnixMilli(), "me", "y")
	e.Messages.Push(ctx, msg)

	read, err := e.ReadState.HasBeenRead(ctx, msg)
	require.NoError(t, err)
	require.False(t, read)
	require.Len(t, e.Unreads.Get(), 1)

	e.Unreads.SetAsRead(ctx, recipients.Group{"y"})

	read, err = e.ReadState.HasBeenRead(ctx, msg)
	require.NoError(t, err)
	assert.True(t, read)
	assert.Empty(t, e.Unreads.Get())

	e.Messages.Push(ctx, privateMsg("y1", "y", testNow.UnixMilli(), "me", "y"))
	assert.Empty(t, e.Unreads.Get(), "a read message raises no unread")
}

func TestUnreads_Last(t *testing.T) {
	e, _ := newTestEngineAs(t, "me")

	_, ok := e.Unreads.Last()
	assert.False(t, ok)

	e.Unreads.Add(recipients.Group{"b", "a"})
	e.Unreads.Add(recipients.Group{"c"})

	last, ok := e.Unreads.Last()
	require.True(t, ok)
	assert.Equal(t, recipients.Group{"c"}, last)
	assert.Equal(t, []recipients.Group{{"a", "b"}, {"c"}}, e.Unreads.Get())
}
