package orders

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"nova/middleware"
	"nova/mq"
	"nova/rdx"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced at the HTTP layer; upgrades carry a token instead.
		return true
	},
}

// LiveOrders streams placed-order events to an admin dashboard. The JWT
// travels in the query string because browsers cannot set headers on
// websocket upgrades.
func (h *Handlers) LiveOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.URL.Query().Get("token"))
	if err != nil || !claims.IsAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := rdx.Conn.Subscribe(ctx, mq.OrderEventsChannel)
	defer sub.Close()
	ch := sub.Channel()

	// Drain client frames so we notice the disconnect.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Println("LiveOrders write error:", err)
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
