package application

import "math"

// Tuning はリーダーの回避・探索パラメータです。
type Tuning struct {
	DetectionAngle   float64 // 前方の脅威検知範囲 (±rad)
	MaxDodgeAngle    float64 // 1回の再計画で曲がれる最大角 (rad)
	DangerDistance   float64 // これより近いモンスターを脅威とみなす
	CriticalDistance float64 // これより近い脅威は全力で回避する
	PickupRadius     float64 // ピックアップを探す半径
	ReplanInterval   float64 // 再計画の間隔 (秒)
}

func DefaultTuning() Tuning {
	return Tuning{
		DetectionAngle:   3 * math.Pi / 8,
		MaxDodgeAngle:    math.Pi / 4,
		DangerDistance:   800,
		CriticalDistance: 200,
		PickupRadius:     1000,
		ReplanInterval:   5.0,
	}
}

// withDefaults はゼロ値のフィールドをデフォルト値で埋めます。
func (t Tuning) withDefaults() Tuning {
	def := DefaultTuning()
	if t.DetectionAngle <= 0 {
		t.DetectionAngle = def.DetectionAngle
	}
	if t.MaxDodgeAngle <= 0 {
		t.MaxDodgeAngle = def.MaxDodgeAngle
	}
	if t.DangerDistance <= 0 {
		t.DangerDistance = def.DangerDistance
	}
	if t.CriticalDistance <= 0 {
		t.CriticalDistance = def.CriticalDistance
	}
	if t.PickupRadius <= 0 {
		t.PickupRadius = def.PickupRadius
	}
	if t.ReplanInterval <= 0 {
		t.ReplanInterval = def.ReplanInterval
	}
	return t
}
