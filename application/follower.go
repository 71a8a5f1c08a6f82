package application

import (
	"context"

	"nightfall/domain"
)

// Follower は指定したヒーローの位置へ向かい続けるキャラクターです。
type Follower struct {
	hero      string
	following string
}

func NewFollower(hero, following string) *Follower {
	return &Follower{hero: hero, following: following}
}

func (f *Follower) Hero() string { return f.hero }

// Following は追従対象のヒーロー名を返します。
func (f *Follower) Following() string { return f.following }

func (f *Follower) Run(ctx context.Context, snap *domain.Snapshot) domain.Movement {
	target, ok := snap.Players[f.following]
	if !ok {
		return domain.NoMove()
	}
	return domain.Towards(target.Position())
}
