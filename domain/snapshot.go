package domain

// Group は同種のモンスターまたはピックアップの集合です。
// ホストは座標を配列の組 (struct of arrays) で渡します。
type Group struct {
	X []float64 `msgpack:"x"`
	Y []float64 `msgpack:"y"`
}

// Len は要素数を返します。X と Y の長さが異なる場合は短い方に合わせます。
func (g Group) Len() int {
	return min(len(g.X), len(g.Y))
}

// At は i 番目の要素の座標を返します。
func (g Group) At(i int) Vec2 {
	return Vec2{X: g.X[i], Y: g.Y[i]}
}

// WeaponInfo はプレイヤーの武器ステータスです。
type WeaponInfo struct {
	Health    float64 `msgpack:"health"`
	Speed     float64 `msgpack:"speed"`
	Damage    float64 `msgpack:"damage"`
	Cooldown  float64 `msgpack:"cooldown"`
	Size      float64 `msgpack:"size"`
	Longevity float64 `msgpack:"longevity"`
}

// PlayerInfo はホストから渡される1キャラクターの状態です。
type PlayerInfo struct {
	Hero   string       `msgpack:"hero"`
	X      float64      `msgpack:"x"`
	Y      float64      `msgpack:"y"`
	Alive  bool         `msgpack:"alive"`
	Health float64      `msgpack:"health"`
	Speed  float64      `msgpack:"speed"`
	Levels map[Stat]int `msgpack:"levels"`
	Weapon WeaponInfo   `msgpack:"weapon"`
}

// Position はプレイヤーの座標を返します。
func (p PlayerInfo) Position() Vec2 {
	return Vec2{X: p.X, Y: p.Y}
}

// Level は stat のレベルを返します。未記録の場合は def を返します。
func (p PlayerInfo) Level(stat Stat, def int) int {
	if lvl, ok := p.Levels[stat]; ok {
		return lvl
	}
	return def
}

// Snapshot は1tick分のワールド状態です。エージェントは読み取り専用で扱います。
type Snapshot struct {
	T        float64               `msgpack:"t"`
	Dt       float64               `msgpack:"dt"`
	Monsters map[string]Group      `msgpack:"monsters"`
	Players  map[string]PlayerInfo `msgpack:"players"`
	Pickups  map[string]Group      `msgpack:"pickups"`
}

// LevelupInfo はレベルアップイベントの付帯情報です。内容はホスト依存です。
type LevelupInfo map[string]any

// Levelup はストラテジストの選択結果です。
type Levelup struct {
	Hero   string `msgpack:"hero"`
	Choice Stat   `msgpack:"stat"`
}
