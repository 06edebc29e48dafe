package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestClient(h *Hub) *Client {
	return &Client{hub: h, send: make(chan []byte, 4)}
}

func TestHub_BroadcastReachesRegisteredClients(t *testing.T) {
	h := NewHub(nil)
	done := make(chan struct{})
	defer close(done)
	go h.Run(done)

	c := newTestClient(h)
	h.Register(c)
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	h.NotifyAssignmentsCreated([]string{"e1"}, 2, 0)

	select {
	case msg := <-c.send:
		var evt AssignmentsCreatedEvent
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if evt.Type != EventAssignmentsCreated || evt.Created != 2 || len(evt.Employees) != 1 {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for broadcast")
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := NewHub(nil)
	done := make(chan struct{})
	defer close(done)
	go h.Run(done)

	c := newTestClient(h)
	h.Register(c)
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	h.Unregister(c)
	waitFor(t, func() bool { return h.ClientCount() == 0 })

	if _, ok := <-c.send; ok {
		t.Fatalf("expected send channel to be closed")
	}
}

func TestHub_CallsAfterStopDoNotBlock(t *testing.T) {
	h := NewHub(nil)
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		h.Run(done)
		close(stopped)
	}()

	c := newTestClient(h)
	h.Register(c)
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	close(done)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatalf("hub did not stop")
	}
	if _, ok := <-c.send; ok {
		t.Fatalf("expected registered client to be closed on stop")
	}

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 4*cap(h.unregister); i++ {
			h.Unregister(newTestClient(h))
		}
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatalf("Unregister blocked after the hub stopped")
	}

	late := newTestClient(h)
	registered := make(chan struct{})
	go func() {
		for i := 0; i < 2*cap(h.register); i++ {
			h.Register(newTestClient(h))
		}
		h.Register(late)
		close(registered)
	}()
	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatalf("Register blocked after the hub stopped")
	}
	if _, ok := <-late.send; ok {
		t.Fatalf("expected late client to be closed")
	}
}

func TestHub_NotifySkipsEmptyRuns(t *testing.T) {
	h := NewHub(nil)
	h.NotifyAssignmentsCreated(nil, 0, 3)
	if len(h.broadcast) != 0 {
		t.Fatalf("expected nothing queued, got %d", len(h.broadcast))
	}

	var nilHub *Hub
	nilHub.NotifyAssignmentsCreated([]string{"x"}, 1, 0)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}
