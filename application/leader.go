package application

import (
	"context"
	"log/slog"
	"maps"
	"math"
	"slices"

	"nightfall/domain"
)

// threat は進行方向前方にいるモンスター1体です。
type threat struct {
	dist    float64
	bearing float64 // 進行方向からの相対角 (-π, π]
}

// Leader はモンスターを避けつつピックアップへ向かう先頭キャラクターです。
// 進行方向と再計画時刻を tick をまたいで保持します。
type Leader struct {
	hero   string
	tuning Tuning

	heading  domain.Vec2
	dodge    bool
	nextTurn float64
}

// NewLeader は hero を操作するリーダーを生成します。初期進行方向は +x です。
func NewLeader(hero string, tuning Tuning) *Leader {
	tuning = tuning.withDefaults()
	return &Leader{
		hero:     hero,
		tuning:   tuning,
		heading:  domain.Vec2{X: 1, Y: 0},
		nextTurn: tuning.ReplanInterval,
	}
}

func (l *Leader) Hero() string { return l.hero }

// Heading は現在の進行方向を返します。
func (l *Leader) Heading() domain.Vec2 { return l.heading }

// Dodging は直近の再計画で回避を選んだかを返します。
func (l *Leader) Dodging() bool { return l.dodge }

func (l *Leader) Run(ctx context.Context, snap *domain.Snapshot) domain.Movement {
	self, ok := snap.Players[l.hero]
	if !ok {
		slog.WarnContext(ctx, "leader hero not in snapshot", "hero", l.hero)
		return domain.NoMove()
	}
	if snap.T <= l.nextTurn {
		return domain.NoMove()
	}

	pos := self.Position()
	threats := l.monstersAhead(pos, snap.Monsters)
	rotation, dodge := l.steer(threats)
	l.heading = l.heading.Rotate(rotation)
	l.dodge = dodge
	l.nextTurn += l.tuning.ReplanInterval
	if l.nextTurn <= snap.T {
		// 途中参加や長い停止の後は現在時刻から数え直す
		l.nextTurn = snap.T + l.tuning.ReplanInterval
	}

	if dodge {
		slog.DebugContext(ctx, "leader dodging",
			"hero", l.hero,
			"t", snap.T,
			"threats", len(threats),
			"rotation", rotation,
		)
		return domain.Direction(l.heading)
	}
	return l.treasureNearby(pos, snap.Pickups)
}

// monstersAhead は危険距離内かつ検知角内にいるモンスターを列挙します。
func (l *Leader) monstersAhead(pos domain.Vec2, monsters map[string]domain.Group) []threat {
	heading := l.heading.Angle()
	var threats []threat
	for _, name := range slices.Sorted(maps.Keys(monsters)) {
		group := monsters[name]
		for i := range group.Len() {
			rel := group.At(i).Sub(pos)
			dist := rel.Len()
			if dist >= l.tuning.DangerDistance {
				continue
			}
			bearing := domain.WrapAngle(rel.Angle() - heading)
			if math.Abs(bearing) >= l.tuning.DetectionAngle {
				continue
			}
			threats = append(threats, threat{dist: dist, bearing: bearing})
		}
	}
	return threats
}

// steer は脅威から進行方向の回転角を決めます。
// 戻り値の絶対値は MaxDodgeAngle を超えません。
func (l *Leader) steer(threats []threat) (float64, bool) {
	t := l.tuning

	var critical float64
	var criticalCount int
	var deviation float64
	for _, th := range threats {
		if th.dist < t.CriticalDistance {
			critical += th.bearing * (t.CriticalDistance - th.dist) / t.CriticalDistance
			criticalCount++
			continue
		}
		deviation += -sign(th.bearing) * t.DetectionAngle * (t.DangerDistance - th.dist) / t.DangerDistance
	}

	if criticalCount > 0 {
		// 重み付き相対角が正 (左寄り) なら右へ、それ以外は左へ全力で曲がる
		if critical > 0 {
			return -t.MaxDodgeAngle, true
		}
		return t.MaxDodgeAngle, true
	}
	return domain.Clamp(deviation, -t.MaxDodgeAngle, t.MaxDodgeAngle), false
}

// treasureNearby は探索半径内で最も近いピックアップへ向かう指示を返します。
// 見つからなければ現在の進行方向を維持します。
func (l *Leader) treasureNearby(pos domain.Vec2, pickups map[string]domain.Group) domain.Movement {
	nearest := l.tuning.PickupRadius
	var target domain.Vec2
	found := false
	for _, name := range slices.Sorted(maps.Keys(pickups)) {
		group := pickups[name]
		for i := range group.Len() {
			p := group.At(i)
			if d := pos.Dist(p); d < nearest {
				nearest = d
				target = p
				found = true
			}
		}
	}
	if !found {
		return domain.Direction(l.heading)
	}
	return domain.Towards(target)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
