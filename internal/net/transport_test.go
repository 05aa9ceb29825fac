package net

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/persist"
	"SketchBoard/internal/state"
)

func docWith(ids ...string) persist.Document {
	doc := persist.Document{Version: persist.Version, Viewport: state.DefaultViewport()}
	for i, id := range ids {
		doc.Elements = append(doc.Elements, &state.Rectangle{
			Base:  state.Base{ID: id, X: float64(i * 50), StrokeColor: "#000000", StrokeWidth: 2, Opacity: 1},
			Width: 40, Height: 40,
		})
	}
	return doc
}

func readDoc(t *testing.T, conn *websocket.Conn) persist.Document {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	doc, err := persist.Decode(bytes.NewReader(msg))
	require.NoError(t, err)
	return doc
}

func TestHubSendsLatestThenUpdates(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	require.NoError(t, hub.Publish(docWith("a")))

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + SharePath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	first := readDoc(t, conn)
	require.Len(t, first.Elements, 1)
	assert.Equal(t, "a", first.Elements[0].Common().ID)
	assert.Equal(t, 1, hub.Peers())

	require.NoError(t, hub.Publish(docWith("a", "b")))
	second := readDoc(t, conn)
	assert.Len(t, second.Elements, 2)
}

func TestHubDropsViewerOnClose(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return hub.Peers() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Peers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatchReceivesDocuments(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	require.NoError(t, hub.Publish(docWith("a", "b", "c")))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan persist.Document, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, strings.TrimPrefix(srv.URL, "http://"), func(doc persist.Document) { got <- doc })
	}()

	select {
	case doc := <-got:
		assert.Len(t, doc.Elements, 3)
	case <-time.After(2 * time.Second):
		t.Fatal("no document received")
	}

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchDialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := Watch(ctx, "127.0.0.1:1", func(persist.Document) {})
	assert.Error(t, err)
}

func TestLinks(t *testing.T) {
	link := Link("192.168.1.20", 8765)
	assert.Equal(t, "sketchboard://192.168.1.20:8765", link)

	addr, err := ParseLink(link)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20:8765", addr)

	for _, bad := range []string{"http://host:1", "sketchboard://host", "sketchboard://:80", "%zz"} {
		_, err := ParseLink(bad)
		assert.Error(t, err, bad)
	}
}

func TestInstanceName(t *testing.T) {
	assert.Equal(t, "My Laptop", instanceName(`My\ Laptop._sketchboard._tcp.local.`))
	assert.Equal(t, "plain", instanceName("plain"))
}

func TestGetOutgoingIP(t *testing.T) {
	ip, err := GetOutgoingIP()
	require.NoError(t, err)
	assert.NotEmpty(t, ip)
}

func TestFollowPublishesChanges(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	store := state.NewStore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Follow(ctx, store, 5*time.Millisecond)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+SharePath, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Empty(t, readDoc(t, conn).Elements)

	store.AddElement(&state.Rectangle{Base: state.Base{ID: "r", StrokeWidth: 1, Opacity: 1}, Width: 10, Height: 10})
	assert.Len(t, readDoc(t, conn).Elements, 1)
}
