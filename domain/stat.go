package domain

import (
	"errors"
	"fmt"
)

// Stat はレベルアップで強化できるステータスです。
type Stat string

const (
	StatPlayerHealth    Stat = "player_health"
	StatPlayerSpeed     Stat = "player_speed"
	StatWeaponHealth    Stat = "weapon_health"
	StatWeaponSpeed     Stat = "weapon_speed"
	StatWeaponDamage    Stat = "weapon_damage"
	StatWeaponCooldown  Stat = "weapon_cooldown"
	StatWeaponSize      Stat = "weapon_size"
	StatWeaponLongevity Stat = "weapon_longevity"
)

// Stats は全ステータスを定義順に並べたものです。
var Stats = []Stat{
	StatPlayerHealth,
	StatPlayerSpeed,
	StatWeaponHealth,
	StatWeaponSpeed,
	StatWeaponDamage,
	StatWeaponCooldown,
	StatWeaponSize,
	StatWeaponLongevity,
}

var ErrUnknownStat = errors.New("unknown stat")

// ParseStat は名前から Stat を取得します。
func ParseStat(name string) (Stat, error) {
	s := Stat(name)
	if _, ok := upgrades[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStat, name)
	}
	return s, nil
}

func (s Stat) String() string { return string(s) }

// UpgradeOp は強化の適用方法です。
type UpgradeOp uint8

const (
	UpgradeMul UpgradeOp = iota + 1
	UpgradeAdd
)

// Upgrade はホストが1レベル分の強化をどう適用するかを表します。
type Upgrade struct {
	Op     UpgradeOp
	Factor float64
}

// Apply は強化後の値を返します。
func (u Upgrade) Apply(v float64) float64 {
	switch u.Op {
	case UpgradeAdd:
		return v + u.Factor
	case UpgradeMul:
		return v * u.Factor
	default:
		return v
	}
}

func (u Upgrade) String() string {
	if u.Op == UpgradeAdd {
		return fmt.Sprintf("+%g", u.Factor)
	}
	return fmt.Sprintf("*%g", u.Factor)
}

var upgrades = map[Stat]Upgrade{
	StatPlayerHealth:    {Op: UpgradeMul, Factor: 1.05},
	StatPlayerSpeed:     {Op: UpgradeAdd, Factor: 1.0},
	StatWeaponHealth:    {Op: UpgradeMul, Factor: 1.05},
	StatWeaponSpeed:     {Op: UpgradeAdd, Factor: 1.0},
	StatWeaponDamage:    {Op: UpgradeMul, Factor: 1.02},
	StatWeaponCooldown:  {Op: UpgradeMul, Factor: 0.9},
	StatWeaponSize:      {Op: UpgradeMul, Factor: 1.10},
	// 寿命はレベルアップ見積もりの係数に合わせた推定値で、ログ表示にのみ使う
	StatWeaponLongevity: {Op: UpgradeMul, Factor: 1.05},
}

// UpgradeOf は stat の強化ルールを返します。
func UpgradeOf(s Stat) (Upgrade, bool) {
	u, ok := upgrades[s]
	return u, ok
}
