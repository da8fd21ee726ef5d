package handlers

import (
	"log"
	"net/http"

	"recipe-server/usecases"
	"recipe-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// EventsHandler upgrades authenticated clients to a websocket that
// streams changes to their own ingredients and recipes.
type EventsHandler struct {
	mgr    *ws.Manager
	tokens *usecases.TokenUseCase
}

func NewEventsHandler(mgr *ws.Manager, tokens *usecases.TokenUseCase) *EventsHandler {
	return &EventsHandler{mgr: mgr, tokens: tokens}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleEvents serves GET /ws/events?token=<key>. Browsers cannot set
// headers on websocket dials, so the key rides in the query string.
func (h *EventsHandler) HandleEvents(c *gin.Context) {
	user, err := h.tokens.Resolve(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	h.mgr.Register(user.ID, conn)
	log.Printf("event feed opened: user %s", user.ID)

	defer func() {
		h.mgr.Unregister(user.ID)
		log.Printf("event feed closed: user %s", user.ID)
	}()

	// The feed is write-only; drain client frames until the peer goes
	// away so control frames keep flowing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("user %s closed event feed", user.ID)
			} else {
				log.Printf("event feed read error for user %s: %v", user.ID, err)
			}
			return
		}
	}
}

// ConnectedUsers serves GET /ws/connected for operational visibility.
func (h *EventsHandler) ConnectedUsers(c *gin.Context) {
	ids := h.mgr.List()
	c.JSON(http.StatusOK, gin.H{"users": ids, "count": len(ids)})
}
