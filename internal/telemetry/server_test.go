package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

func dialTestServer(t *testing.T) (*Server, *websocket.Conn) {
	t.Helper()
	s := NewServer("127.0.0.1:0")
	ts := httptest.NewServer(http.HandlerFunc(s.handleWS))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return s, conn
}

func TestBroadcastReachesClient(t *testing.T) {
	s, conn := dialTestServer(t)

	if s.NumClients() != 1 {
		t.Fatalf("clients = %d, want 1", s.NumClients())
	}

	sent := StateFrame{
		ServerTime: 1.5,
		Objects: []ObjectState{{
			ID:       "crate",
			Position: vmath.Vec3{X: 1, Y: 2, Z: 3},
			Active:   true,
		}},
	}
	s.Broadcast(sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got StateFrame
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.ServerTime != 1.5 {
		t.Errorf("server_time = %v, want 1.5", got.ServerTime)
	}
	if len(got.Objects) != 1 || got.Objects[0].ID != "crate" {
		t.Fatalf("objects = %+v, want one entry with id crate", got.Objects)
	}
	if got.Objects[0].Position != (vmath.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("position = %v, want (1,2,3)", got.Objects[0].Position)
	}
}

func TestClientDroppedAfterClose(t *testing.T) {
	s, conn := dialTestServer(t)

	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for s.NumClients() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want 0 after close", s.NumClients())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
