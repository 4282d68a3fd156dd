package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hygienewatch/hygienewatch-backend/internal/middleware"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
	"github.com/hygienewatch/hygienewatch-backend/internal/services"
)

var commentsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin policy is enforced by the CORS layer on the HTTP side.
		return true
	},
}

// CommentsWebSocket streams new comments for one target to the client as
// they are published. Browser clients pass the session token as a query
// parameter since they cannot set websocket headers.
func CommentsWebSocket(w http.ResponseWriter, r *http.Request) {
	if middleware.AuthFromRequest(r) == nil {
		http.Error(w, "missing or invalid session token", http.StatusUnauthorized)
		return
	}

	targetType := models.TargetType(r.URL.Query().Get("target_type"))
	targetID := r.URL.Query().Get("target_id")
	if !models.ValidTargetType(targetType) || targetID == "" {
		http.Error(w, "target_type and target_id are required", http.StatusBadRequest)
		return
	}

	conn, err := commentsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, cancel := services.SubscribeComments(targetType, targetID)
	defer cancel()

	// Reader goroutine exists only to notice the peer going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(1024)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}
