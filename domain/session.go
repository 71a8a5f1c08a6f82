package domain

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// SessionID はホストが割り当てる接続単位の識別子 (UUID) です。
type SessionID [16]byte

func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

// SessionIDFromBytes はヘッダーのバイト列から SessionID を復元します。
func SessionIDFromBytes(b [16]byte) SessionID {
	return SessionID(b)
}

func (s SessionID) Bytes() [16]byte { return s }

func (s SessionID) IsZero() bool { return s == SessionID{} }

func (s SessionID) String() string {
	return uuid.UUID(s).String()
}

// Session はホストとの1接続の論理状態です。
type Session struct {
	id atomic.Value // SessionID

	lastRead atomic.Int64
	lastPong atomic.Int64

	closed atomic.Bool
}

func NewSession() *Session {
	s := &Session{}
	s.id.Store(SessionID{})
	now := time.Now().UnixNano()
	s.lastRead.Store(now)
	s.lastPong.Store(now)
	return s
}

// ID はホストから割り当てられた SessionID を返します。未割り当ての場合はゼロ値です。
func (s *Session) ID() SessionID {
	return s.id.Load().(SessionID)
}

// Assign はホストから通知された SessionID を記録します。
func (s *Session) Assign(id SessionID) {
	s.id.Store(id)
}

func (s *Session) TouchRead() {
	s.lastRead.Store(time.Now().UnixNano())
}

func (s *Session) TouchPong() {
	s.lastPong.Store(time.Now().UnixNano())
}

// Close はセッションを閉じます。初回呼び出し時のみ true を返します。
func (s *Session) Close() bool {
	return s.closed.CompareAndSwap(false, true)
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// IsIdle は timeout を超えて受信または pong が途絶えているかを返します。
func (s *Session) IsIdle(timeout time.Duration) (bool, IdleReason) {
	if timeout <= 0 {
		return false, IdleDisabled
	}
	var reason IdleReason
	if since(s.lastRead.Load()) > timeout {
		reason |= IdleRead
	}
	if since(s.lastPong.Load()) > timeout {
		reason |= IdlePong
	}
	return reason != IdleNone, reason
}

func since(unixNano int64) time.Duration {
	return time.Since(time.Unix(0, unixNano))
}
