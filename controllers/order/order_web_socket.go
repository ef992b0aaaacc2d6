package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

type ordersChangedEvent struct {
	Event string `json:"event"`
	Date  string `json:"date"`
}

// OrderWebSocketHandler keeps a connection open and feeds it day-invalidation
// events, so day views know to re-fetch after any order mutation.
func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

// broadcastOrdersChanged tells every subscriber that the given day's order
// list is stale. Called after each successful mutation.
func broadcastOrdersChanged(date time.Time) {
	data, err := json.Marshal(ordersChangedEvent{
		Event: "orders_changed",
		Date:  date.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(wsClients, client)
		}
	}
}
