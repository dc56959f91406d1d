package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/models"
	"github.com/dmitrijs2005/chatcore/internal/client/storage"
	"github.com/dmitrijs2005/chatcore/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetName_MissFallsBackAndResolvesOnce(t *testing.T) {
	n := newFakeNetwork()
	n.names["@a"] = "alice"
	e, rec := newTestEngineAs(t, "me", WithNetwork(n))
	ctx := context.Background()

	assert.Equal(t, "@a", e.Authors.GetName(ctx, "@a"))
	e.Wait()

	assert.Equal(t, 1, n.nameCalls("@a"))
	assert.Equal(t, "alice", e.Authors.GetName(ctx, "@a"))
	assert.Equal(t, 1, n.nameCalls("@a"), "a hit does not resolve again")

	evs := rec.Named(events.AuthorsChanged)
	require.Len(t, evs, 1)
	assert.Equal(t, map[string]string{"@a": "alice"}, evs[0].Payload)
}

func TestGetName_SelfMappedCountsAsMiss(t *testing.T) {
	n := newFakeNetwork()
	n.names["@a"] = "@a"
	e, _ := newTestEngineAs(t, "me", WithNetwork(n))
	ctx := context.Background()

	e.Authors.SetName(ctx, "@a")
	require.Equal(t, 1, n.nameCalls("@a"))

	assert.Equal(t, "@a", e.Authors.GetName(ctx, "@a"))
	e.Wait()
	assert.Equal(t, 2, n.nameCalls("@a"))
}

func TestGetName_WithoutNetwork(t *testing.T) {
	e, rec := newTestEngineAs(t, "me")

	assert.Equal(t, "@a", e.Authors.GetName(context.Background(), "@a"))
	e.Wait()

	assert.Empty(t, rec.Named(events.AuthorsChanged))
	assert.Empty(t, e.Authors.All())
}

func TestSetName_MissingCapability(t *testing.T) {
	e, rec := newTestEngineAs(t, "me", WithNetwork(bareClient{}))

	e.Authors.SetName(context.Background(), "@a", "@b")

	assert.Empty(t, rec.Named(events.AuthorsChanged))
}

func TestSetName_BatchEmitsOnceAndAbsorbsFailures(t *testing.T) {
	n := newFakeNetwork()
	n.names["@a"] = "alice"
	n.names["@c"] = "carol"
	n.nameErrs["@b"] = errLookup
	e, rec := newTestEngineAs(t, "me", WithNetwork(n))

	e.Authors.SetName(context.Background(), "@a", "@b", "@c")

	assert.Equal(t, map[string]string{"@a": "alice", "@c": "carol"}, e.Authors.All())
	assert.Len(t, rec.Named(events.AuthorsChanged), 1)
	assert.Equal(t, 3, n.totalNameCalls())
}

func TestSetName_EmptyBatch(t *testing.T) {
	n := newFakeNetwork()
	e, rec := newTestEngineAs(t, "me", WithNetwork(n))

	e.Authors.SetName(context.Background())

	assert.Empty(t, rec.Events())
	assert.Zero(t, n.totalNameCalls())
}

func TestBulkNames_OnlyUnresolved(t *testing.T) {
	n := newFakeNetwork()
	n.names["@a"] = "alice"
	n.names["@b"] = "bob"
	e, _ := newTestEngineAs(t, "me", WithNetwork(n))
	ctx := context.Background()

	e.Authors.SetName(ctx, "@a")
	e.Authors.BulkNames(ctx, []string{"@a", "@b", "@b"})

	assert.Equal(t, 1, n.nameCalls("@a"))
	assert.Equal(t, 1, n.nameCalls("@b"))
	assert.Equal(t, "bob", e.Authors.GetName(ctx, "@b"))
}

func TestGetID(t *testing.T) {
	n := newFakeNetwork()
	n.names["@a"] = "alice"
	n.names["@b"] = "bob"
	n.names["@z"] = "bob"
	e, _ := newTestEngineAs(t, "me", WithNetwork(n))
	e.Authors.SetName(context.Background(), "@a", "@b", "@z")

	tests := []struct {
		in, want string
	}{
		{in: "alice", want: "@a"},
		{in: "@alice", want: "@a"},
		{in: "bob", want: "@b"},
		{in: "carol", want: "carol"},
		{in: "@unknown", want: "@unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Authors.GetID(tt.in))
		})
	}
}

func TestFindMatches(t *testing.T) {
	n := newFakeNetwork()
	n.names["@1"] = "alice"
	n.names["@2"] = "alfred"
	n.names["@3"] = "Albert"
	n.names["@4"] = "alice"
	e, _ := newTestEngineAs(t, "me", WithNetwork(n))
	e.Authors.SetName(context.Background(), "@1", "@2", "@3", "@4")

	assert.Equal(t, []string{"alfred", "alice"}, e.Authors.FindMatches("al"))
	assert.Equal(t, []string{"Albert"}, e.Authors.FindMatches("Al"))
	assert.Empty(t, e.Authors.FindMatches("zed"))
}

func TestUpdateFriends(t *testing.T) {
	n := newFakeNetwork()
	n.graph = map[string]*bool{"@a": ptr(true), "@b": ptr(false), "@c": nil, "@d": ptr(true)}
	n.names["@a"] = "alice"
	e, rec := newTestEngineAs(t, "me", WithNetwork(n))

	e.Authors.UpdateFriends(context.Background())

	want := models.Friends{Following: []string{"@a", "@d"}, Blocking: []string{"@b"}}
	assert.Equal(t, want, e.Authors.Friends())
	assert.Equal(t, []string{"me"}, n.sources)

	ev, ok := rec.Last(events.FriendsChanged)
	require.True(t, ok)
	assert.Equal(t, want, ev.Payload)

	assert.Equal(t, 1, n.nameCalls("@a"))
	assert.Equal(t, 1, n.nameCalls("@b"))
	assert.Equal(t, 0, n.nameCalls("@c"))
	assert.Equal(t, "alice", e.Authors.All()["@a"])
	assert.Equal(t, []events.Name{events.FriendsChanged, events.AuthorsChanged}, eventNames(rec.Events()))
}

func TestUpdateFriends_FailureKeepsPreviousGraph(t *testing.T) {
	n := newFakeNetwork()
	n.graph = map[string]*bool{"@a": ptr(true)}
	e, rec := newTestEngineAs(t, "me", WithNetwork(n))
	ctx := context.Background()

	e.Authors.UpdateFriends(ctx)
	rec.Reset()

	n.friendsErr = errLookup
	e.Authors.UpdateFriends(ctx)

	assert.Equal(t, []string{"@a"}, e.Authors.Friends().Following)
	assert.Empty(t, rec.Events())
}

func TestUpdateFriends_NoCapability(t *testing.T) {
	e, rec := newTestEngineAs(t, "me", WithNetwork(bareClient{}))

	e.Authors.UpdateFriends(context.Background())

	assert.Empty(t, rec.Events())
	assert.Equal(t, models.Friends{Following: []string{}, Blocking: []string{}}, e.Authors.Friends())
}

func TestSetName_LogsShareBatchID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := newFakeNetwork()
	n.nameErrs["@a"] = errLookup
	n.nameErrs["@b"] = errLookup
	n.nameErrs["@c"] = errLookup
	e := NewEngine(&events.Recorder{}, storage.NewRepositories(openTestDB(t)),
		logging.NewZapLogger(zap.New(core)), WithNetwork(n))
	ctx := context.Background()

	e.Authors.SetName(ctx, "@a", "@b")
	e.Authors.SetName(ctx, "@c")

	failures := logs.FilterMessage("failed to resolve author name").All()
	require.Len(t, failures, 3)

	batch := func(i int) any { return failures[i].ContextMap()["batch"] }
	byID := map[any]any{}
	for i := range failures {
		require.NotEmpty(t, batch(i))
		byID[failures[i].ContextMap()["id"]] = batch(i)
	}
	assert.Equal(t, byID["@a"], byID["@b"])
	assert.NotEqual(t, byID["@a"], byID["@c"])
}
