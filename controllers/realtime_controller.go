package controllers

import (
	"net/http"
	"time"

	"github.com/999NK/teste2nutria-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	Hub *services.ProgressHub
}

func NewRealtimeController(hub *services.ProgressHub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

// ProgressWS upgrades the connection and streams daily-totals updates pushed
// whenever the user's meals change.
func (rc *RealtimeController) ProgressWS(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.ProgressClient{UserID: uid, Conn: conn}
	rc.Hub.Register(cl)
	defer rc.Hub.Unregister(cl)

	// keep connections alive through proxies; closing the conn on a failed
	// ping unblocks the read loop, which owns the cleanup
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
		}
	}()

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
