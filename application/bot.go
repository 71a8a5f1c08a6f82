package application

import (
	"context"

	"nightfall/domain"
)

//go:generate go tool mockgen -destination=./mocks/bot_mock.go -package=mocks . Agent,Strategist

// Agent は1キャラクターの意思決定インターフェースです。
// ホストから tick ごとに呼び出されます。
type Agent interface {
	Hero() string
	Run(ctx context.Context, snap *domain.Snapshot) domain.Movement
}

// Strategist はレベルアップ時に強化するステータスを選びます。
type Strategist interface {
	Levelup(ctx context.Context, t float64, info domain.LevelupInfo, players map[string]domain.PlayerInfo) domain.Levelup
}
