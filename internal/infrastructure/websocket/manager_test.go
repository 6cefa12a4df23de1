package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rugstore/internal/domain/entity"
	"rugstore/pkg/logger"
)

func TestLeadCreatedReachesConnectedClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager(logger.Nop())
	m.Start(ctx)

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient("admin-1", conn)
		assert.True(t, m.Join(client))
		go client.WritePump()
		go client.ReadPump(m)
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return m.Connected() == 1 }, time.Second, 10*time.Millisecond)

	m.LeadCreated(entity.Lead{ID: "l1", Name: "Ada", Type: entity.LeadTypeTrade})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, EventLeadCreated, event.Type)
	require.NotNil(t, event.Lead)
	assert.Equal(t, "l1", event.Lead.ID)

	conn.Close()
	require.Eventually(t, func() bool { return m.Connected() == 0 }, time.Second, 10*time.Millisecond)
}

func TestLeadCreatedWithoutClientsDoesNotBlock(t *testing.T) {
	m := NewManager(logger.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBuffer*2; i++ {
			m.LeadCreated(entity.Lead{ID: "l"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("LeadCreated blocked")
	}
}

func TestJoinAfterShutdownReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager(logger.Nop())
	m.Start(ctx)
	cancel()

	select {
	case <-m.done:
	case <-time.After(time.Second):
		t.Fatal("manager did not stop")
	}

	joined := make(chan bool, 1)
	go func() { joined <- m.Join(NewClient("admin-1", nil)) }()

	select {
	case ok := <-joined:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Join blocked after shutdown")
	}
	assert.Equal(t, 0, m.Connected())
}
