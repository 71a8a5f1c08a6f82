package utils

import (
	"math"
	"testing"
	"time"

	"nightfall/domain"
)

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("NIGHTFALL_TEST_SET", "value")
	t.Setenv("NIGHTFALL_TEST_EMPTY", "")

	if got := GetEnvDefault("NIGHTFALL_TEST_SET", "def"); got != "value" {
		t.Errorf("set = %q, want value", got)
	}
	if got := GetEnvDefault("NIGHTFALL_TEST_EMPTY", "def"); got != "def" {
		t.Errorf("empty = %q, want def", got)
	}
	if got := GetEnvDefault("NIGHTFALL_TEST_UNSET", "def"); got != "def" {
		t.Errorf("unset = %q, want def", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("NIGHTFALL_TEST_DURATION", "150ms")
	t.Setenv("NIGHTFALL_TEST_BAD_DURATION", "soon")

	if got := GetEnvDuration("NIGHTFALL_TEST_DURATION", time.Second); got != 150*time.Millisecond {
		t.Errorf("duration = %s, want 150ms", got)
	}
	if got := GetEnvDuration("NIGHTFALL_TEST_BAD_DURATION", time.Second); got != time.Second {
		t.Errorf("bad duration = %s, want default", got)
	}
	if got := GetEnvDuration("NIGHTFALL_TEST_UNSET_DURATION", 2*time.Second); got != 2*time.Second {
		t.Errorf("unset = %s, want default", got)
	}
}

func TestFiniteSnapshot(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name string
		snap domain.Snapshot
		want bool
	}{
		{name: "empty", snap: domain.Snapshot{}, want: true},
		{
			name: "all finite",
			snap: domain.Snapshot{
				T:        1,
				Monsters: map[string]domain.Group{"bat": {X: []float64{1}, Y: []float64{2}}},
				Players:  map[string]domain.PlayerInfo{"garron": {X: 3, Y: 4}},
			},
			want: true,
		},
		{name: "nan time", snap: domain.Snapshot{T: nan}, want: false},
		{
			name: "inf monster",
			snap: domain.Snapshot{Monsters: map[string]domain.Group{"bat": {X: []float64{inf}, Y: []float64{0}}}},
			want: false,
		},
		{
			name: "nan pickup",
			snap: domain.Snapshot{Pickups: map[string]domain.Group{"gem": {X: []float64{0}, Y: []float64{nan}}}},
			want: false,
		},
		{
			name: "nan player",
			snap: domain.Snapshot{Players: map[string]domain.PlayerInfo{"garron": {X: nan}}},
			want: false,
		},
		{
			// 対応する Y がない要素は参照しない
			name: "unpaired coordinate ignored",
			snap: domain.Snapshot{Monsters: map[string]domain.Group{"bat": {X: []float64{0, nan}, Y: []float64{0}}}},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FiniteSnapshot(&tt.snap); got != tt.want {
				t.Errorf("FiniteSnapshot = %v, want %v", got, tt.want)
			}
		})
	}
}
