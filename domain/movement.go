package domain

import "fmt"

// MoveKind は移動指示の種別です。
type MoveKind uint8

const (
	MoveNone    MoveKind = 0 // 指示なし。ホストは直前の指示を継続する
	MoveVector  MoveKind = 1 // 方向ベクトル
	MoveTowards MoveKind = 2 // 目標座標
)

func (k MoveKind) String() string {
	switch k {
	case MoveNone:
		return "none"
	case MoveVector:
		return "vector"
	case MoveTowards:
		return "towards"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Movement はエージェントが1tickで返す移動指示です。
type Movement struct {
	Kind MoveKind `msgpack:"kind"`
	X    float64  `msgpack:"x"`
	Y    float64  `msgpack:"y"`
}

func NoMove() Movement { return Movement{} }

// Direction は v の方向へ進む指示を返します。
func Direction(v Vec2) Movement {
	return Movement{Kind: MoveVector, X: v.X, Y: v.Y}
}

// Towards は座標 p へ向かう指示を返します。
func Towards(p Vec2) Movement {
	return Movement{Kind: MoveTowards, X: p.X, Y: p.Y}
}

// IsNone は指示なしかどうかを返します。
func (m Movement) IsNone() bool { return m.Kind == MoveNone }

// Vec は指示のベクトル成分を返します。
func (m Movement) Vec() Vec2 { return Vec2{X: m.X, Y: m.Y} }
