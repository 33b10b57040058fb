package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationRoomSymmetric(t *testing.T) {
	assert.Equal(t, ConversationRoom("a", "b"), ConversationRoom("b", "a"))
	assert.Equal(t, "a:b", ConversationRoom("b", "a"))
}

func drain(c *Client) []any {
	var out []any
	for {
		select {
		case msg := <-c.Outbox():
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestBroadcastReachesRoomMembersOnly(t *testing.T) {
	hub := NewHub()
	alice := NewClient("alice", nil)
	bob := NewClient("bob", nil)
	eve := NewClient("eve", nil)
	for _, c := range []*Client{alice, bob, eve} {
		hub.Register(c)
	}

	room := ConversationRoom("alice", "bob")
	hub.Join(alice, room)
	hub.Join(bob, room)

	hub.Broadcast(room, "hello")

	assert.Equal(t, []any{"hello"}, drain(alice))
	assert.Equal(t, []any{"hello"}, drain(bob))
	assert.Empty(t, drain(eve))
}

func TestJoinRequiresRegistration(t *testing.T) {
	hub := NewHub()
	ghost := NewClient("ghost", nil)

	hub.Join(ghost, "a:b")
	hub.Broadcast("a:b", "x")
	assert.Empty(t, drain(ghost))
}

func TestLeaveStopsDelivery(t *testing.T) {
	hub := NewHub()
	c := NewClient("alice", nil)
	hub.Register(c)
	room := ConversationRoom("alice", "bob")

	hub.Join(c, room)
	hub.Leave(c, room)
	hub.Broadcast(room, "x")
	assert.Empty(t, drain(c))
}

func TestUnregisterDropsAllMemberships(t *testing.T) {
	hub := NewHub()
	c := NewClient("alice", nil)
	hub.Register(c)
	hub.Join(c, ConversationRoom("alice", "bob"))
	hub.Join(c, ConversationRoom("alice", "carol"))

	hub.Unregister(c)

	hub.Broadcast(ConversationRoom("alice", "bob"), "x")
	hub.Broadcast(ConversationRoom("alice", "carol"), "y")
	// the outbox is closed after unregister; nothing was queued before close
	_, open := <-c.Outbox()
	assert.False(t, open)
}

func TestSendDropsWhenBufferFull(t *testing.T) {
	c := NewClient("alice", nil)
	for i := 0; i < cap(c.send); i++ {
		require.True(t, c.Send(i))
	}
	assert.False(t, c.Send("overflow"), "full buffer drops instead of blocking")
}

func TestRoomHasMember(t *testing.T) {
	room := ConversationRoom("alice", "bob")

	assert.True(t, roomHasMember(room, "alice"))
	assert.True(t, roomHasMember(room, "bob"))
	assert.False(t, roomHasMember(room, "eve"))
	assert.False(t, roomHasMember("", "alice"))
	assert.False(t, roomHasMember(room, ""))
}
