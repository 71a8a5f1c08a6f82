package application

import (
	"context"
	"log/slog"
	"maps"
	"math"
	"slices"

	"nightfall/domain"
)

// candidate は1ステータス分の強化後の見積もり値を計算します。
// lvl はそのステータスの現在レベルです (未記録なら 1)。
type candidate struct {
	stat     domain.Stat
	estimate func(w domain.WeaponInfo, lvl float64) float64
}

// レベルが上がるほど伸びが鈍る前提の見積もり。
var candidates = []candidate{
	{domain.StatWeaponHealth, func(w domain.WeaponInfo, lvl float64) float64 {
		return w.Health * 1.05 / (1 + lvl)
	}},
	{domain.StatWeaponSpeed, func(w domain.WeaponInfo, lvl float64) float64 {
		return w.Speed + 1.0/(1+lvl)
	}},
	{domain.StatWeaponDamage, func(w domain.WeaponInfo, lvl float64) float64 {
		return 0.5 * w.Damage * 1.02 / (1 + lvl)
	}},
	{domain.StatWeaponCooldown, func(w domain.WeaponInfo, lvl float64) float64 {
		return 0.8 * w.Cooldown * 0.9 * (1 + lvl)
	}},
	{domain.StatWeaponSize, func(w domain.WeaponInfo, lvl float64) float64 {
		return 1.05 * w.Size * 1.10 / (1 + lvl)
	}},
	{domain.StatWeaponLongevity, func(w domain.WeaponInfo, lvl float64) float64 {
		return 1.1 * w.Longevity * 1.05 / (1 + lvl)
	}},
}

// DPSStrategist は実効DPSの伸び率が最大になるステータスを貪欲に選びます。
type DPSStrategist struct {
	defaultHero string
}

// NewDPSStrategist は、どの候補もDPSを伸ばさない場合に defaultHero の
// weapon_cooldown を選ぶストラテジストを生成します。
func NewDPSStrategist(defaultHero string) *DPSStrategist {
	return &DPSStrategist{defaultHero: defaultHero}
}

// EffectiveDPS は武器の実効DPS (size * damage * health * longevity / cooldown) を返します。
// override が weapon_* のいずれかで value > 0 の場合、そのステータスを value に置き換えます。
// weapon_health の置き換え値は 50 ごとに耐久1として換算します。
func EffectiveDPS(w domain.WeaponInfo, override domain.Stat, value float64) float64 {
	health, size, longevity, cooldown, damage := w.Health, w.Size, w.Longevity, w.Cooldown, w.Damage
	if value > 0 {
		switch override {
		case domain.StatWeaponHealth:
			health = 1 + math.Floor(value/50)
		case domain.StatWeaponSize:
			size = value
		case domain.StatWeaponLongevity:
			longevity = value
		case domain.StatWeaponCooldown:
			cooldown = value
		case domain.StatWeaponDamage:
			damage = value
		}
	}
	if cooldown <= 0 {
		cooldown = 1
	}
	return size * damage * health * longevity / cooldown
}

func (s *DPSStrategist) Levelup(ctx context.Context, t float64, info domain.LevelupInfo, players map[string]domain.PlayerInfo) domain.Levelup {
	best := domain.Levelup{Hero: s.defaultHero, Choice: domain.StatWeaponCooldown}
	bestGain := 1.0

	for _, hero := range slices.Sorted(maps.Keys(players)) {
		p := players[hero]
		if !p.Alive {
			continue
		}
		base := EffectiveDPS(p.Weapon, "", 0)
		if base <= 0 || math.IsInf(base, 0) || math.IsNaN(base) {
			slog.DebugContext(ctx, "skip player with degenerate dps", "hero", hero, "dps", base)
			continue
		}
		for _, c := range candidates {
			lvl := float64(p.Level(c.stat, 1))
			gain := EffectiveDPS(p.Weapon, c.stat, c.estimate(p.Weapon, lvl)) / base
			if gain > bestGain {
				best = domain.Levelup{Hero: hero, Choice: c.stat}
				bestGain = gain
			}
		}
	}

	attrs := []any{"t", t, "hero", best.Hero, "stat", best.Choice, "gain", bestGain}
	if p, ok := players[best.Hero]; ok {
		if u, ok := domain.UpgradeOf(best.Choice); ok {
			current := StatValue(p, best.Choice)
			attrs = append(attrs, "current", current, "projected", u.Apply(current))
		}
	}
	slog.InfoContext(ctx, "levelup chosen", attrs...)
	return best
}

// StatValue はプレイヤーの stat の現在値を返します。
func StatValue(p domain.PlayerInfo, stat domain.Stat) float64 {
	switch stat {
	case domain.StatPlayerHealth:
		return p.Health
	case domain.StatPlayerSpeed:
		return p.Speed
	case domain.StatWeaponHealth:
		return p.Weapon.Health
	case domain.StatWeaponSpeed:
		return p.Weapon.Speed
	case domain.StatWeaponDamage:
		return p.Weapon.Damage
	case domain.StatWeaponCooldown:
		return p.Weapon.Cooldown
	case domain.StatWeaponSize:
		return p.Weapon.Size
	case domain.StatWeaponLongevity:
		return p.Weapon.Longevity
	default:
		return 0
	}
}
