package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"nightfall/application"
)

//go:embed default_team.yaml
var defaultTeamYAML []byte

var (
	ErrNoLeader           = errors.New("team leader is required")
	ErrEmptyHeroName      = errors.New("hero name is empty")
	ErrDuplicateHero      = errors.New("hero appears more than once")
	ErrUnknownFollow      = errors.New("follower follows a hero outside the team")
	ErrUnknownDefaultHero = errors.New("strategist default hero is not in the team")
	ErrInvalidTuning      = errors.New("invalid tuning")
)

// TeamConfig はチーム構成とリーダーの調整値を表すYAML設定です。
type TeamConfig struct {
	Name       string           `yaml:"name"`
	Leader     string           `yaml:"leader"`
	Followers  []FollowerConfig `yaml:"followers"`
	Strategist StrategistConfig `yaml:"strategist"`
	Tuning     TuningConfig     `yaml:"tuning"`
}

type FollowerConfig struct {
	Hero      string `yaml:"hero"`
	Following string `yaml:"following"`
}

type StrategistConfig struct {
	// DefaultHero はどの強化もDPSを伸ばさないときに選ぶヒーローです。省略時はリーダー。
	DefaultHero string `yaml:"default_hero"`
}

// TuningConfig は角度を度数で持ちます。0 の項目はデフォルト値になります。
type TuningConfig struct {
	DetectionAngleDeg float64 `yaml:"detection_angle_deg"`
	MaxDodgeAngleDeg  float64 `yaml:"max_dodge_angle_deg"`
	DangerDistance    float64 `yaml:"danger_distance"`
	CriticalDistance  float64 `yaml:"critical_distance"`
	PickupRadius      float64 `yaml:"pickup_radius"`
	ReplanInterval    float64 `yaml:"replan_interval"`
}

// Default は組み込みのチーム設定を返します。
func Default() *TeamConfig {
	cfg, err := Parse(defaultTeamYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default team is invalid: %v", err))
	}
	return cfg
}

// Load は path のYAMLを読み込みます。path が空なら組み込み設定を返します。
func Load(path string) (*TeamConfig, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read team config: %w", err)
	}
	return Parse(data)
}

// Parse はYAMLをパースして検証します。
func Parse(data []byte) (*TeamConfig, error) {
	var cfg TeamConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse team config: %w", err)
	}
	if cfg.Strategist.DefaultHero == "" {
		cfg.Strategist.DefaultHero = cfg.Leader
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *TeamConfig) Validate() error {
	if c.Leader == "" {
		return ErrNoLeader
	}
	heroes := map[string]struct{}{c.Leader: {}}
	for _, f := range c.Followers {
		if f.Hero == "" {
			return ErrEmptyHeroName
		}
		if _, dup := heroes[f.Hero]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateHero, f.Hero)
		}
		heroes[f.Hero] = struct{}{}
	}
	for _, f := range c.Followers {
		if _, ok := heroes[f.Following]; !ok {
			return fmt.Errorf("%w: %s -> %q", ErrUnknownFollow, f.Hero, f.Following)
		}
	}
	if _, ok := heroes[c.Strategist.DefaultHero]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDefaultHero, c.Strategist.DefaultHero)
	}

	t := c.Tuning
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"detection_angle_deg", t.DetectionAngleDeg},
		{"max_dodge_angle_deg", t.MaxDodgeAngleDeg},
		{"danger_distance", t.DangerDistance},
		{"critical_distance", t.CriticalDistance},
		{"pickup_radius", t.PickupRadius},
		{"replan_interval", t.ReplanInterval},
	} {
		if v := field.value; v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidTuning, field.name, v)
		}
	}
	if t.DetectionAngleDeg > 180 || t.MaxDodgeAngleDeg > 180 {
		return fmt.Errorf("%w: angles must be within 180 degrees", ErrInvalidTuning)
	}
	tuning := c.LeaderTuning()
	if tuning.CriticalDistance > tuning.DangerDistance {
		return fmt.Errorf("%w: critical_distance %v exceeds danger_distance %v",
			ErrInvalidTuning, tuning.CriticalDistance, tuning.DangerDistance)
	}
	return nil
}

// LeaderTuning は設定をリーダーの調整値 (rad) に変換します。
func (c *TeamConfig) LeaderTuning() application.Tuning {
	def := application.DefaultTuning()
	t := c.Tuning
	out := application.Tuning{
		DetectionAngle:   t.DetectionAngleDeg * math.Pi / 180,
		MaxDodgeAngle:    t.MaxDodgeAngleDeg * math.Pi / 180,
		DangerDistance:   t.DangerDistance,
		CriticalDistance: t.CriticalDistance,
		PickupRadius:     t.PickupRadius,
		ReplanInterval:   t.ReplanInterval,
	}
	if out.DetectionAngle == 0 {
		out.DetectionAngle = def.DetectionAngle
	}
	if out.MaxDodgeAngle == 0 {
		out.MaxDodgeAngle = def.MaxDodgeAngle
	}
	if out.DangerDistance == 0 {
		out.DangerDistance = def.DangerDistance
	}
	if out.CriticalDistance == 0 {
		out.CriticalDistance = def.CriticalDistance
	}
	if out.PickupRadius == 0 {
		out.PickupRadius = def.PickupRadius
	}
	if out.ReplanInterval == 0 {
		out.ReplanInterval = def.ReplanInterval
	}
	return out
}

// Heroes はリーダー、フォロワーの順でヒーロー名を返します。
func (c *TeamConfig) Heroes() []string {
	heroes := []string{c.Leader}
	for _, f := range c.Followers {
		heroes = append(heroes, f.Hero)
	}
	return heroes
}

// BuildTeam は設定からチームを組み立てます。
func (c *TeamConfig) BuildTeam() *application.Team {
	agents := []application.Agent{application.NewLeader(c.Leader, c.LeaderTuning())}
	for _, f := range c.Followers {
		agents = append(agents, application.NewFollower(f.Hero, f.Following))
	}
	return application.NewTeam(c.Name, application.NewDPSStrategist(c.Strategist.DefaultHero), agents...)
}
