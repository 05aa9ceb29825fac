package net

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/gorilla/websocket"

	"SketchBoard/internal/persist"
)

// Watch connects to a host's hub at addr (host:port) and calls onDoc for
// every board it receives. It returns nil once ctx is cancelled.
func Watch(ctx context.Context, addr string, onDoc func(persist.Document)) error {
	u := url.URL{Scheme: "ws", Host: addr, Path: SharePath}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", u.String(), err)
	}
	defer conn.Close()
	log.Printf("[SHARE] watching %s", u.String())

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read from %s: %w", addr, err)
		}
		doc, err := persist.Decode(bytes.NewReader(msg))
		if errors.Is(err, persist.ErrUnsupportedVersion) {
			return err
		}
		if err != nil {
			log.Printf("[SHARE] dropping bad document from %s: %v", addr, err)
			continue
		}
		onDoc(doc)
	}
}
