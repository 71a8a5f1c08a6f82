package utils

import (
	"math"

	"nightfall/domain"
)

func FiniteVec(v domain.Vec2) bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// FiniteGroup は全要素の座標が有限値かを返します。
func FiniteGroup(g domain.Group) bool {
	for i := range g.Len() {
		if !FiniteVec(g.At(i)) {
			return false
		}
	}
	return true
}

// FiniteSnapshot はスナップショット内の座標がすべて有限値かを返します。
func FiniteSnapshot(s *domain.Snapshot) bool {
	if !isFinite(s.T) {
		return false
	}
	for _, g := range s.Monsters {
		if !FiniteGroup(g) {
			return false
		}
	}
	for _, g := range s.Pickups {
		if !FiniteGroup(g) {
			return false
		}
	}
	for _, p := range s.Players {
		if !FiniteVec(p.Position()) {
			return false
		}
	}
	return true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
