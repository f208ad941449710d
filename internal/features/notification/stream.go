package notification

import (
	"context"

	common_models "go-spear/internal/common/models"
	"go-spear/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// StreamController pushes store change events to connected dashboards.
type StreamController struct {
	service NotificationService
	logger  *zap.Logger
}

func NewStreamController(service NotificationService, logger *zap.Logger) *StreamController {
	return &StreamController{
		service: service,
		logger:  logger,
	}
}

// HandleWebSocket sends an initial unread-count frame, then relays every
// event for the caller's session until the peer goes away.
func (h *StreamController) HandleWebSocket(c *websocket.Conn) {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok || claims == nil {
		c.Close()
		return
	}

	store := h.service.Feed(context.Background(), claims.SessionID, common_models.Role(claims.Role))
	events, cancel := h.service.Subscribe(claims.SessionID)
	defer cancel()

	hello := Event{Type: EventFeedLoaded, UnreadCount: store.UnreadCount()}
	if err := c.WriteJSON(hello); err != nil {
		return
	}

	// Reader goroutine: we only care about the close frame.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, open := <-events:
			if !open {
				return
			}
			if err := c.WriteJSON(ev); err != nil {
				h.logger.Debug("notification stream write failed", zap.Error(err))
				return
			}
		case <-done:
			return
		}
	}
}
