package ws

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/server/middleware"
	redisstore "github.com/lotwise/dealerd/internal/store/redis"
)

// Hub streams Redis pub/sub events to WebSocket clients.
type Hub struct {
	gate   *authgate.Gate
	client *redisstore.Client
}

// NewHub creates a new WebSocket hub.
func NewHub(gate *authgate.Gate, client *redisstore.Client) *Hub {
	return &Hub{gate: gate, client: client}
}

// ServeSales handles WebSocket connections for a dealer's live sale feed.
// The caller's dealer is resolved from their profile; each recorded sale is
// forwarded as a JSON event on the channel for that dealer.
func (h *Hub) ServeSales(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	profile, err := h.gate.ResolveProfile(r.Context(), id)
	if err != nil {
		http.Error(w, "identity cannot be resolved", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	channel := redisstore.SaleChannel(profile.DealerID)

	messages, cleanup, err := h.client.Subscribe(ctx, channel)
	if err != nil {
		log.Error().Err(err).Msg("websocket subscribe")
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer cleanup()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		case msg, msgOK := <-messages:
			if !msgOK {
				_ = conn.Close(websocket.StatusNormalClosure, "channel closed")
				return
			}
			if writeErr := conn.Write(ctx, websocket.MessageText, msg); writeErr != nil {
				log.Debug().Err(writeErr).Msg("websocket write")
				return
			}
		}
	}
}
