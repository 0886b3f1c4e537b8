package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func receive(t *testing.T, ch <-chan []byte) string {
	t.Helper()
	select {
	case b, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return string(b)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
	return ""
}

func TestHubDeliversToEveryConnectionOfUser(t *testing.T) {
	hub := startHub(t)
	a1 := &Client{hub: hub, send: make(chan []byte, 4), userID: 1}
	a2 := &Client{hub: hub, send: make(chan []byte, 4), userID: 1}
	b := &Client{hub: hub, send: make(chan []byte, 4), userID: 2}
	for _, c := range []*Client{a1, a2, b} {
		if !hub.attach(c) {
			t.Fatal("attach failed")
		}
	}
	waitFor(t, "registrations", func() bool { return hub.ClientCount(1) == 2 && hub.ClientCount(2) == 1 })
	if got := hub.OnlineUsers(); got != 2 {
		t.Errorf("online users = %d, want 2", got)
	}

	hub.SendToUser(1, []byte(`{"n":1}`))

	if got := receive(t, a1.send); got != `{"n":1}` {
		t.Fatalf("a1 got %s", got)
	}
	if got := receive(t, a2.send); got != `{"n":1}` {
		t.Fatalf("a2 got %s", got)
	}
	select {
	case m := <-b.send:
		t.Fatalf("user 2 received %s", m)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubDetachAndClose(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	exited := make(chan struct{})
	go func() {
		hub.Run()
		close(exited)
	}()

	c := &Client{hub: hub, send: make(chan []byte, 1), userID: 5}
	hub.attach(c)
	waitFor(t, "registration", func() bool { return hub.ClientCount(5) == 1 })

	hub.detach(c)
	waitFor(t, "unregistration", func() bool { return hub.ClientCount(5) == 0 })
	if _, ok := <-c.send; ok {
		t.Fatal("send channel should be closed")
	}

	hub.Close()
	hub.Close()
	<-exited
	if hub.SendToUser(5, []byte("x")) {
		t.Fatal("closed hub accepted a delivery")
	}
	if hub.attach(&Client{hub: hub, send: make(chan []byte, 1), userID: 6}) {
		t.Fatal("closed hub accepted a client")
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := startHub(t)
	c := &Client{hub: hub, send: make(chan []byte), userID: 9}
	hub.attach(c)
	waitFor(t, "registration", func() bool { return hub.ClientCount(9) == 1 })

	hub.SendToUser(9, []byte("x"))
	waitFor(t, "slow client removal", func() bool { return hub.ClientCount(9) == 0 })
}

func TestNotifierThroughLocalBroker(t *testing.T) {
	hub := startHub(t)
	c := &Client{hub: hub, send: make(chan []byte, 1), userID: 3}
	hub.attach(c)
	waitFor(t, "registration", func() bool { return hub.ClientCount(3) == 1 })

	n := NewNotifier(NewLocalBroker(hub), zerolog.Nop())
	if err := n.NotifyUser(context.Background(), 3, map[string]string{"type": "message"}); err != nil {
		t.Fatalf("NotifyUser: %v", err)
	}
	if got := receive(t, c.send); got != `{"type":"message"}` {
		t.Fatalf("got %s", got)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.edu"})
	tests := []struct {
		origin string
		host   string
		want   bool
	}{
		{"", "api.example.edu", true},
		{"https://app.example.edu", "api.example.edu", true},
		{"https://evil.example.com", "api.example.edu", false},
		{"http://api.example.edu", "api.example.edu", true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/messages/ws", nil)
		r.Host = tt.host
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := check(r); got != tt.want {
			t.Errorf("origin %q host %q: got %v want %v", tt.origin, tt.host, got, tt.want)
		}
	}

	if !originChecker([]string{"*"})(func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Origin", "https://anything.test")
		return r
	}()) {
		t.Fatal("wildcard should allow any origin")
	}
}

func TestHandleConnectionPushesToSocket(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := startHub(t)
	h := NewHandler(hub, "caller_id", []string{"*"}, zerolog.Nop())

	router := gin.New()
	router.GET("/messages/ws", func(c *gin.Context) {
		c.Set("caller_id", int64(11))
		c.Next()
	}, h.HandleConnection)
	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/messages/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitFor(t, "socket registration", func() bool { return hub.ClientCount(11) == 1 })
	hub.SendToUser(11, []byte(`{"type":"message"}`))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != `{"type":"message"}` {
		t.Fatalf("got %s", msg)
	}
}

func TestHandleConnectionRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(startHub(t), "caller_id", nil, zerolog.Nop())

	router := gin.New()
	router.GET("/messages/ws", h.HandleConnection)
	// an id stored under any other key does not authenticate
	router.GET("/messages/ws-other-key", func(c *gin.Context) {
		c.Set("userID", int64(11))
		c.Next()
	}, h.HandleConnection)

	for _, path := range []string{"/messages/ws", "/messages/ws-other-key"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d", path, w.Code)
		}
	}
}

func TestRedisBroker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	hub := startHub(t)
	c := &Client{hub: hub, send: make(chan []byte, 1), userID: 21}
	hub.attach(c)
	waitFor(t, "registration", func() bool { return hub.ClientCount(21) == 1 })

	b, err := NewRedisBroker(ctx, client, "alumniconnect:test:"+t.Name(), hub, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRedisBroker: %v", err)
	}
	defer b.Close()

	if err := b.Publish(ctx, 21, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := receive(t, c.send); got != `{"ok":true}` {
		t.Fatalf("got %s", got)
	}
}
