package bridge

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coder/websocket"

	"nightfall/domain"
)

// ReadLimit はホストから受け取る1メッセージの上限です。スナップショットは大きくなりうるため既定値より広げています。
const ReadLimit = 8 << 20

type wsTransport struct {
	conn *websocket.Conn
}

// NewTransportFrom は websocket 接続を domain.Transport として包みます。
func NewTransportFrom(conn *websocket.Conn) domain.Transport {
	conn.SetReadLimit(ReadLimit)
	return &wsTransport{conn: conn}
}

// Dial はホストへ接続します。token が空でなければ Bearer 認証ヘッダーを付与します。
func Dial(ctx context.Context, url, token string) (domain.Transport, error) {
	opts := &websocket.DialOptions{}
	if token != "" {
		opts.HTTPHeader = http.Header{"Authorization": []string{"Bearer " + token}}
	}
	conn, _, err := websocket.Dial(ctx, url, opts)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewTransportFrom(conn), nil
}

func (t *wsTransport) Read(ctx context.Context) ([]byte, error) {
	_, data, err := t.conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (t *wsTransport) Write(ctx context.Context, data []byte) error {
	return t.conn.Write(ctx, websocket.MessageBinary, data)
}

func (t *wsTransport) Close(code int32, reason string) error {
	return t.conn.Close(websocket.StatusCode(code), reason)
}
