package server

import (
	. "WurmDuel/internal/game"
)

type stateMsg struct {
	Type        string          `json:"type"`
	Now         float64         `json:"now"`
	Room        string          `json:"room"`
	Seed        int64           `json:"seed"`
	Phase       string          `json:"phase"`
	Turn        int             `json:"turn"`
	Due         string          `json:"due"`
	Winner      string          `json:"winner"`
	You         string          `json:"you"`
	Bot         bool            `json:"bot"`
	Stalled     bool            `json:"stalled,omitempty"`
	Meta        roomMeta        `json:"meta"`
	Wurms       []wurmDTO       `json:"wurms"`
	Projectiles []projectileDTO `json:"projectiles"`
	Explosions  []explosionDTO  `json:"explosions"`
	Terrain     terrainDTO      `json:"terrain"`
}

type roomMeta struct {
	W int `json:"w"`
	H int `json:"h"`
}

type wurmDTO struct {
	Side   string  `json:"side"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Health float64 `json:"health"`
	Angle  float64 `json:"angle"`
}

type pointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type projectileDTO struct {
	ID     string     `json:"id"`
	Owner  string     `json:"owner"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	VX     float64    `json:"vx"`
	VY     float64    `json:"vy"`
	Radius float64    `json:"radius"`
	Fuse   int        `json:"fuse"`
	Trail  []pointDTO `json:"trail,omitempty"`
}

type explosionDTO struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius"`
	Progress float64 `json:"progress"`
}

// terrainDTO carries the visible surface: Heights[i] is the first solid row
// of column i*Step.
type terrainDTO struct {
	Step    int       `json:"step"`
	Heights []float64 `json:"heights"`
}

type firePayload struct {
	Weapon string  `json:"weapon"`
	Angle  float64 `json:"angle"`
	Power  float64 `json:"power"`
}

type resetPayload struct {
	Seed *int64 `json:"seed,omitempty"`
}

type errorDTO struct {
	Message string `json:"message"`
}

// buildStateLocked snapshots the room for one player. Caller holds room.Mu.
func buildStateLocked(room *Room, playerID string) stateMsg {
	g := room.Game
	w, h := g.Dimensions()
	msg := stateMsg{
		Type:    "state",
		Now:     room.Now,
		Room:    room.ID,
		Seed:    g.Seed(),
		Phase:   g.Phase().String(),
		Turn:    g.Turn(),
		Due:     g.DueSide().String(),
		Winner:  g.Winner().String(),
		You:     SideNone.String(),
		Bot:     room.Bot != nil,
		Stalled: room.StalledLocked(),
		Meta:    roomMeta{W: w, H: h},
		Terrain: terrainDTO{
			Step:    TerrainSampleStep,
			Heights: SampleSurface(g.Ground(), TerrainSampleStep),
		},
	}
	if p := room.Players[playerID]; p != nil {
		msg.You = p.Side.String()
	}

	for i, wu := range g.Wurms() {
		msg.Wurms = append(msg.Wurms, wurmDTO{
			Side:   Side(i).String(),
			X:      wu.X,
			Y:      wu.Y,
			W:      wu.Width,
			H:      wu.Height,
			Health: wu.Health,
			Angle:  wu.BarrelAngle,
		})
	}

	msg.Projectiles = make([]projectileDTO, 0)
	for _, p := range g.Projectiles() {
		dto := projectileDTO{
			ID:     p.ID,
			Owner:  p.Owner.String(),
			X:      p.X,
			Y:      p.Y,
			VX:     p.DX,
			VY:     p.DY,
			Radius: p.Radius,
			Fuse:   p.Fuse,
		}
		for _, pt := range p.Trail() {
			dto.Trail = append(dto.Trail, pointDTO{X: pt.X, Y: pt.Y})
		}
		msg.Projectiles = append(msg.Projectiles, dto)
	}

	msg.Explosions = make([]explosionDTO, 0)
	for _, e := range g.Explosions() {
		msg.Explosions = append(msg.Explosions, explosionDTO{
			X:        e.X,
			Y:        e.Y,
			Radius:   e.Radius,
			Progress: e.Progress(),
		})
	}
	return msg
}
