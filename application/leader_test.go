package application

import (
	"context"
	"math"
	"testing"

	"pgregory.net/rapid"

	"nightfall/domain"
)

const eps = 1e-9

func leaderSnapshot(t float64, monsters, pickups map[string]domain.Group) *domain.Snapshot {
	return &domain.Snapshot{
		T:  t,
		Dt: 0.1,
		Players: map[string]domain.PlayerInfo{
			"garron": {Hero: "garron", X: 0, Y: 0, Alive: true},
		},
		Monsters: monsters,
		Pickups:  pickups,
	}
}

func group(points ...domain.Vec2) domain.Group {
	g := domain.Group{}
	for _, p := range points {
		g.X = append(g.X, p.X)
		g.Y = append(g.Y, p.Y)
	}
	return g
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestNewLeader_Defaults(t *testing.T) {
	l := NewLeader("garron", Tuning{})

	if l.Hero() != "garron" {
		t.Errorf("Hero = %s, want garron", l.Hero())
	}
	if l.Heading() != (domain.Vec2{X: 1, Y: 0}) {
		t.Errorf("Heading = %+v, want {1 0}", l.Heading())
	}
	if l.tuning != DefaultTuning() {
		t.Errorf("tuning = %+v, want defaults", l.tuning)
	}
	if l.nextTurn != 5.0 {
		t.Errorf("nextTurn = %f, want 5", l.nextTurn)
	}
}

func TestLeader_Run_BeforeReplan(t *testing.T) {
	l := NewLeader("garron", Tuning{})
	m := l.Run(context.Background(), leaderSnapshot(1.0, nil, nil))
	if !m.IsNone() {
		t.Errorf("movement = %+v, want none", m)
	}
}

func TestLeader_Run_HeroMissing(t *testing.T) {
	l := NewLeader("nobody", Tuning{})
	m := l.Run(context.Background(), leaderSnapshot(6.0, nil, nil))
	if !m.IsNone() {
		t.Errorf("movement = %+v, want none", m)
	}
	// 再計画時刻は進まない
	if l.nextTurn != 5.0 {
		t.Errorf("nextTurn = %f, want 5", l.nextTurn)
	}
}

func TestLeader_Run_Pickups(t *testing.T) {
	tests := []struct {
		name    string
		pickups map[string]domain.Group
		want    domain.Movement
	}{
		{
			name: "nearest pickup in range",
			pickups: map[string]domain.Group{
				"gem":    group(domain.Vec2{X: 300, Y: 40}, domain.Vec2{X: -700, Y: 0}),
				"potion": group(domain.Vec2{X: 0, Y: 900}),
			},
			want: domain.Towards(domain.Vec2{X: 300, Y: 40}),
		},
		{
			name:    "no pickups keeps heading",
			pickups: nil,
			want:    domain.Direction(domain.Vec2{X: 1, Y: 0}),
		},
		{
			name: "pickup out of range keeps heading",
			pickups: map[string]domain.Group{
				"gem": group(domain.Vec2{X: 1000, Y: 0}),
			},
			want: domain.Direction(domain.Vec2{X: 1, Y: 0}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLeader("garron", Tuning{})
			got := l.Run(context.Background(), leaderSnapshot(6.0, nil, tt.pickups))
			if got != tt.want {
				t.Errorf("movement = %+v, want %+v", got, tt.want)
			}
			if l.Dodging() {
				t.Error("leader should not dodge without threats")
			}
		})
	}
}

func TestLeader_Run_CriticalThreat(t *testing.T) {
	tests := []struct {
		name      string
		monster   domain.Vec2
		wantAngle float64
	}{
		{name: "threat on the left turns right", monster: domain.Vec2{X: 100, Y: 50}, wantAngle: -math.Pi / 4},
		{name: "threat on the right turns left", monster: domain.Vec2{X: 100, Y: -50}, wantAngle: math.Pi / 4},
		{name: "threat dead ahead turns left", monster: domain.Vec2{X: 100, Y: 0}, wantAngle: math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLeader("garron", Tuning{})
			monsters := map[string]domain.Group{"bat": group(tt.monster)}
			pickups := map[string]domain.Group{"gem": group(domain.Vec2{X: 10, Y: 10})}

			got := l.Run(context.Background(), leaderSnapshot(6.0, monsters, pickups))

			if !l.Dodging() {
				t.Fatal("leader should dodge a critical threat")
			}
			if got.Kind != domain.MoveVector {
				t.Fatalf("kind = %s, want vector", got.Kind)
			}
			if !almostEqual(got.Vec().Angle(), tt.wantAngle) {
				t.Errorf("angle = %f, want %f", got.Vec().Angle(), tt.wantAngle)
			}
		})
	}
}

func TestLeader_Run_ProportionalSteer(t *testing.T) {
	l := NewLeader("garron", Tuning{})
	// 距離500, 相対角 atan2(300,400)
	monsters := map[string]domain.Group{"bat": group(domain.Vec2{X: 400, Y: 300})}

	got := l.Run(context.Background(), leaderSnapshot(6.0, monsters, nil))

	want := -(3 * math.Pi / 8) * (800 - 500) / 800.0
	if !almostEqual(l.Heading().Angle(), want) {
		t.Errorf("heading angle = %f, want %f", l.Heading().Angle(), want)
	}
	if l.Dodging() {
		t.Error("non-critical threat should not trigger dodge")
	}
	// ピックアップがないので新しい進行方向を返す
	if got.Kind != domain.MoveVector || !almostEqual(got.Vec().Angle(), want) {
		t.Errorf("movement = %+v, want direction at %f", got, want)
	}
}

func TestLeader_Run_DeviationClamped(t *testing.T) {
	l := NewLeader("garron", Tuning{})
	// 左前方に近い脅威を複数置き、合計偏差が MaxDodgeAngle を超えるようにする
	monsters := map[string]domain.Group{
		"bat": group(
			domain.Vec2{X: 250, Y: 50},
			domain.Vec2{X: 240, Y: 80},
			domain.Vec2{X: 260, Y: 30},
		),
	}

	l.Run(context.Background(), leaderSnapshot(6.0, monsters, nil))

	if !almostEqual(l.Heading().Angle(), -math.Pi/4) {
		t.Errorf("heading angle = %f, want %f", l.Heading().Angle(), -math.Pi/4)
	}
}

func TestLeader_Run_IgnoresThreatsBehindAndFar(t *testing.T) {
	l := NewLeader("garron", Tuning{})
	monsters := map[string]domain.Group{
		"bat":   group(domain.Vec2{X: -100, Y: 0}),
		"ghoul": group(domain.Vec2{X: 900, Y: 0}, domain.Vec2{X: 0, Y: 150}),
	}

	l.Run(context.Background(), leaderSnapshot(6.0, monsters, nil))

	if l.Heading() != (domain.Vec2{X: 1, Y: 0}) {
		t.Errorf("heading = %+v, want unchanged", l.Heading())
	}
}

func TestLeader_Run_ReplansOncePerInterval(t *testing.T) {
	l := NewLeader("garron", Tuning{})
	ctx := context.Background()

	if m := l.Run(ctx, leaderSnapshot(5.0, nil, nil)); !m.IsNone() {
		t.Errorf("t=5: movement = %+v, want none", m)
	}
	if m := l.Run(ctx, leaderSnapshot(5.1, nil, nil)); m.IsNone() {
		t.Error("t=5.1: expected a decision")
	}
	if m := l.Run(ctx, leaderSnapshot(9.9, nil, nil)); !m.IsNone() {
		t.Errorf("t=9.9: movement = %+v, want none", m)
	}
	if m := l.Run(ctx, leaderSnapshot(10.5, nil, nil)); m.IsNone() {
		t.Error("t=10.5: expected a decision")
	}
	if l.nextTurn != 15.0 {
		t.Errorf("nextTurn = %f, want 15", l.nextTurn)
	}
}

// 途中から参加したリーダーも1区間に1回しか再計画しない
func TestLeader_Run_JoinMidGame(t *testing.T) {
	l := NewLeader("garron", Tuning{})
	ctx := context.Background()

	replans := 0
	for i := range 50 {
		if m := l.Run(ctx, leaderSnapshot(300+float64(i)/10, nil, nil)); !m.IsNone() {
			replans++
		}
	}
	if replans != 1 {
		t.Errorf("replans = %d, want 1", replans)
	}
	if !almostEqual(l.nextTurn, 305) {
		t.Errorf("nextTurn = %f, want 305", l.nextTurn)
	}
	if m := l.Run(ctx, leaderSnapshot(305.05, nil, nil)); m.IsNone() {
		t.Error("t=305.05: expected a decision")
	}
}

func TestLeader_Run_ReplanRateBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewLeader("garron", Tuning{})
		ctx := context.Background()

		t0 := rapid.Float64Range(0, 1e4).Draw(t, "t0")
		dt := rapid.Float64Range(0.01, 1).Draw(t, "dt")
		n := rapid.IntRange(1, 200).Draw(t, "n")

		replans := 0
		for i := range n {
			if m := l.Run(ctx, leaderSnapshot(t0+float64(i)*dt, nil, nil)); !m.IsNone() {
				replans++
			}
		}
		span := float64(n-1) * dt
		if limit := int(span/l.tuning.ReplanInterval) + 2; replans > limit {
			t.Fatalf("replans = %d over %.2fs, want <= %d", replans, span, limit)
		}
	})
}

func TestLeader_MonstersAhead_WrapsBearing(t *testing.T) {
	l := NewLeader("garron", Tuning{})
	// 進行方向 ≈ π, モンスターは角度 -π+0.1 の位置
	l.heading = domain.Vec2{X: -1, Y: 0}
	m := domain.Vec2{X: math.Cos(-math.Pi + 0.1), Y: math.Sin(-math.Pi + 0.1)}.Scale(300)

	threats := l.monstersAhead(domain.Vec2{}, map[string]domain.Group{"bat": group(m)})

	if len(threats) != 1 {
		t.Fatalf("threats = %d, want 1", len(threats))
	}
	if !almostEqual(threats[0].bearing, 0.1) {
		t.Errorf("bearing = %f, want 0.1", threats[0].bearing)
	}
}

func TestLeader_Steer_SymmetricThreatsCancel(t *testing.T) {
	l := NewLeader("garron", Tuning{})
	rot, dodge := l.steer([]threat{
		{dist: 500, bearing: 0.3},
		{dist: 500, bearing: -0.3},
	})
	if dodge {
		t.Error("dodge = true, want false")
	}
	if math.Abs(rot) > eps {
		t.Errorf("rotation = %f, want 0", rot)
	}
}

func TestLeader_Steer_Bounded(t *testing.T) {
	l := NewLeader("garron", Tuning{})
	tn := l.tuning

	rapid.Check(t, func(t *rapid.T) {
		threats := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) threat {
			return threat{
				dist:    rapid.Float64Range(0, tn.DangerDistance).Draw(t, "dist"),
				bearing: rapid.Float64Range(-tn.DetectionAngle, tn.DetectionAngle).Draw(t, "bearing"),
			}
		}), 0, 40).Draw(t, "threats")

		rot, dodge := l.steer(threats)

		if math.Abs(rot) > tn.MaxDodgeAngle+eps {
			t.Fatalf("|rotation| = %f exceeds %f", math.Abs(rot), tn.MaxDodgeAngle)
		}
		critical := false
		for _, th := range threats {
			if th.dist < tn.CriticalDistance {
				critical = true
			}
		}
		if dodge != critical {
			t.Fatalf("dodge = %v, want %v", dodge, critical)
		}
		if critical && !almostEqual(math.Abs(rot), tn.MaxDodgeAngle) {
			t.Fatalf("critical dodge rotation = %f, want ±%f", rot, tn.MaxDodgeAngle)
		}
	})
}

func TestLeader_Run_HeadingChangeBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewLeader("garron", Tuning{})
		before := l.Heading().Angle()

		n := rapid.IntRange(0, 30).Draw(t, "n")
		g := domain.Group{}
		for range n {
			g.X = append(g.X, rapid.Float64Range(-1000, 1000).Draw(t, "x"))
			g.Y = append(g.Y, rapid.Float64Range(-1000, 1000).Draw(t, "y"))
		}

		l.Run(context.Background(), leaderSnapshot(6.0, map[string]domain.Group{"m": g}, nil))

		turned := math.Abs(domain.WrapAngle(l.Heading().Angle() - before))
		if turned > math.Pi/4+1e-6 {
			t.Fatalf("turned %f rad, want <= π/4", turned)
		}
	})
}
