package bridge

import (
	"context"
	"log/slog"
	"time"

	"nightfall/domain"
)

// Heartbeat はホストへ定期的に ping を送る死活監視です。
// セッションIDが割り当てられるまでは送信しません。
type Heartbeat struct {
	pingInterval time.Duration
	session      *domain.Session
	send         func([]byte) error
}

func NewHeartbeat(pingInterval time.Duration, session *domain.Session, send func([]byte) error) *Heartbeat {
	return &Heartbeat{
		pingInterval: pingInterval,
		session:      session,
		send:         send,
	}
}

// Run は ctx がキャンセルされるまで pingInterval 間隔で ping を送ります。
func (h *Heartbeat) Run(ctx context.Context) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			id := h.session.ID()
			if id.IsZero() {
				continue
			}
			if err := h.send(domain.EncodeControlMessage(id, 0, domain.ControlSubTypePing)); err != nil {
				slog.WarnContext(ctx, "heartbeat: ping dropped", "sessionID", id, "err", err)
				continue
			}
			slog.DebugContext(ctx, "heartbeat: ping sent", "sessionID", id)
		}
	}
}
