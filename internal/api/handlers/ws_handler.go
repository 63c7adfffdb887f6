package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/domain/analytics"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	minLiveInterval = time.Second
)

// LiveAnalyticsHandler streams a form's analytics summary over a websocket.
type LiveAnalyticsHandler struct {
	svc      *application.AnalyticsService
	interval time.Duration
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewLiveAnalyticsHandler(svc *application.AnalyticsService, interval time.Duration, allowedOrigins []string, logger *zap.Logger) *LiveAnalyticsHandler {
	if interval < minLiveInterval {
		interval = minLiveInterval
	}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &LiveAnalyticsHandler{
		svc:      svc,
		interval: interval,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed["*"]; ok {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// Stream godoc
// @Summary Live analytics for a form
// @Description Upgrades to a websocket and pushes the summary on every tick. Browsers pass the token as ?token=.
// @Tags analytics
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Param period query string false "7d, 30d, 90d or all" default(30d)
// @Success 101 {object} analytics.Summary
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /ws/analytics/{formId} [get]
func (h *LiveAnalyticsHandler) Stream(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	formID, ok := formIDParam(c, "formId")
	if !ok {
		return
	}
	period, err := analytics.ParsePeriod(c.Query("period"))
	if err != nil {
		respondError(c, err)
		return
	}

	// Ownership is settled before the upgrade so failures are plain HTTP.
	first, err := h.svc.OwnerSummary(c.Request.Context(), userID, formID, period)
	if err != nil {
		respondError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("form_id", formID), zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Reader: only pongs and close frames are expected.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Debug("live analytics reader closed", zap.String("form_id", formID), zap.Error(err))
				}
				return
			}
		}
	}()

	send := func(v any) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(v)
	}
	if err := send(first); err != nil {
		return
	}

	tick := time.NewTicker(h.interval)
	defer tick.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			summary, err := h.svc.Summary(ctx, formID, period)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				_ = send(map[string]string{"error": "failed to load analytics"})
				continue
			}
			if err := send(summary); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
