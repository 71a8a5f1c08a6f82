package domain

import (
	"errors"
	"testing"
)

func TestParseStat(t *testing.T) {
	for _, s := range Stats {
		got, err := ParseStat(string(s))
		if err != nil {
			t.Errorf("ParseStat(%q) failed: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStat(%q) = %q", s, got)
		}
	}

	if _, err := ParseStat("mana"); !errors.Is(err, ErrUnknownStat) {
		t.Errorf("err = %v, want ErrUnknownStat", err)
	}
}

func TestUpgrade_Apply(t *testing.T) {
	tests := []struct {
		stat Stat
		in   float64
		want float64
	}{
		{StatPlayerHealth, 100, 105},
		{StatPlayerSpeed, 3, 4},
		{StatWeaponDamage, 50, 51},
		{StatWeaponCooldown, 2, 1.8},
		{StatWeaponSize, 1, 1.1},
		{StatWeaponLongevity, 2, 2.1},
	}
	for _, tt := range tests {
		u, ok := UpgradeOf(tt.stat)
		if !ok {
			t.Fatalf("UpgradeOf(%s) not found", tt.stat)
		}
		if got := u.Apply(tt.in); !near(got, tt.want) {
			t.Errorf("%s (%s): Apply(%f) = %f, want %f", tt.stat, u, tt.in, got, tt.want)
		}
	}
}

func TestUpgradeOf_CoversAllStats(t *testing.T) {
	for _, s := range Stats {
		if _, ok := UpgradeOf(s); !ok {
			t.Errorf("no upgrade rule for %s", s)
		}
	}
	if _, ok := UpgradeOf("mana"); ok {
		t.Error("unexpected upgrade rule for unknown stat")
	}
}

func TestUpgrade_String(t *testing.T) {
	if got := (Upgrade{Op: UpgradeAdd, Factor: 1}).String(); got != "+1" {
		t.Errorf("String = %q, want +1", got)
	}
	if got := (Upgrade{Op: UpgradeMul, Factor: 0.9}).String(); got != "*0.9" {
		t.Errorf("String = %q, want *0.9", got)
	}
}

func TestMovement(t *testing.T) {
	if m := NoMove(); !m.IsNone() || m.Kind.String() != "none" {
		t.Errorf("NoMove = %+v", m)
	}
	m := Direction(Vec2{X: 1, Y: 2})
	if m.Kind != MoveVector || m.Vec() != (Vec2{X: 1, Y: 2}) {
		t.Errorf("Direction = %+v", m)
	}
	m = Towards(Vec2{X: -3, Y: 4})
	if m.Kind != MoveTowards || m.Kind.String() != "towards" || m.Vec() != (Vec2{X: -3, Y: 4}) {
		t.Errorf("Towards = %+v", m)
	}
	if got := MoveKind(9).String(); got != "unknown(9)" {
		t.Errorf("String = %q", got)
	}
}

func TestPlayerInfo_Level(t *testing.T) {
	p := PlayerInfo{Levels: map[Stat]int{StatWeaponSize: 3}}
	if got := p.Level(StatWeaponSize, 1); got != 3 {
		t.Errorf("Level(size) = %d, want 3", got)
	}
	if got := p.Level(StatWeaponDamage, 1); got != 1 {
		t.Errorf("Level(damage) = %d, want default 1", got)
	}
}
