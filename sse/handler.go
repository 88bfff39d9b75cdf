package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// keepAliveInterval must stay below typical proxy idle timeouts.
const keepAliveInterval = 30 * time.Second

// Handler returns a Gin handler that streams published SLI samples as
// Server-Sent Events. The optional ?sli= query parameter restricts the
// stream to a single SLI.
func Handler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		flusher, ok := c.Writer.(http.Flusher)
		if !ok {
			c.String(http.StatusInternalServerError, "streaming not supported")
			return
		}

		// SSE connections are long-lived; the server's WriteTimeout
		// must not cut them off.
		rc := http.NewResponseController(c.Writer)
		_ = rc.SetWriteDeadline(time.Time{})

		header := c.Writer.Header()
		header.Set("Content-Type", "text/event-stream")
		header.Set("Cache-Control", "no-cache")
		header.Set("Connection", "keep-alive")
		header.Set("X-Accel-Buffering", "no")

		client := NewClient(uuid.NewString(), c.Query("sli"))
		hub.Register(client)
		defer hub.Unregister(client)

		connected, _ := json.Marshal(ConnectedEvent{ClientID: client.ID(), SLI: client.SLI()})
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", EventTypeConnected, connected)
		flusher.Flush()

		keepAlive := time.NewTicker(keepAliveInterval)
		defer keepAlive.Stop()

		ctx := c.Request.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, open := <-client.Events():
				if !open {
					return
				}
				fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", EventTypeSample, event)
				flusher.Flush()

			case <-keepAlive.C:
				fmt.Fprintf(c.Writer, ": keepalive %d\n\n", time.Now().Unix())
				flusher.Flush()
			}
		}
	}
}
