package domain

import "math"

// Vec2 はワールド座標系の2次元ベクトルです。
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len はベクトルの長さを返します。
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist は2点間の距離を返します。
func (v Vec2) Dist(o Vec2) float64 { return o.Sub(v).Len() }

// Angle はx軸からの角度 (rad) を返します。
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Rotate は原点まわりに angle (rad) だけ反時計回りに回転したベクトルを返します。
func (v Vec2) Rotate(angle float64) Vec2 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Normalize は単位ベクトルを返します。長さがほぼ0の場合はゼロベクトルを返します。
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// WrapAngle は角度を (-π, π] に正規化します。
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Clamp は v を [lo, hi] に収めます。
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
