package application

import (
	"context"
	"errors"

	"nightfall/domain"
)

var ErrNoStrategist = errors.New("team has no strategist")

// Team はホストに登録する1チーム分のエージェントとストラテジストです。
type Team struct {
	Name       string
	Agents     []Agent
	Strategist Strategist
}

func NewTeam(name string, strategist Strategist, agents ...Agent) *Team {
	return &Team{
		Name:       name,
		Agents:     agents,
		Strategist: strategist,
	}
}

// Heroes はロスター順のヒーロー名を返します。
func (t *Team) Heroes() []string {
	heroes := make([]string, 0, len(t.Agents))
	for _, a := range t.Agents {
		heroes = append(heroes, a.Hero())
	}
	return heroes
}

// Run は全エージェントを順に呼び出し、指示のあったヒーローの移動指示を返します。
func (t *Team) Run(ctx context.Context, snap *domain.Snapshot) map[string]domain.Movement {
	moves := make(map[string]domain.Movement, len(t.Agents))
	for _, a := range t.Agents {
		m := a.Run(ctx, snap)
		if m.IsNone() {
			continue
		}
		moves[a.Hero()] = m
	}
	return moves
}

// Levelup はストラテジストに強化対象の選択を委譲します。
func (t *Team) Levelup(ctx context.Context, tm float64, info domain.LevelupInfo, players map[string]domain.PlayerInfo) (domain.Levelup, error) {
	if t.Strategist == nil {
		return domain.Levelup{}, ErrNoStrategist
	}
	return t.Strategist.Levelup(ctx, tm, info, players), nil
}
