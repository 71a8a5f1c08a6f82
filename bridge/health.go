package bridge

import (
	"net/http"
	"sync/atomic"
)

// Health はプロセスのヘルスチェック用に現在のクライアントを追跡します。
type Health struct {
	client atomic.Pointer[Client]
}

// Track は監視対象のクライアントを差し替えます。nil で未接続扱いになります。
func (h *Health) Track(c *Client) {
	h.client.Store(c)
}

// Ready はホストからセッションが割り当て済みかを返します。
func (h *Health) Ready() bool {
	c := h.client.Load()
	return c != nil && !c.session.IsClosed() && !c.SessionID().IsZero()
}

// Handler はセッション確立中なら 200、それ以外は 503 を返します。
func (h *Health) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
