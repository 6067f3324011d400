package game

import "math"

type Side int

const (
	SidePlayer Side = 0
	SideAI     Side = 1
	SideNone   Side = -1
)

func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideAI
	}
	return SidePlayer
}

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideAI:
		return "ai"
	default:
		return "none"
	}
}

// Wurm is a combatant. X, Y is the top-left corner of its bounding box.
type Wurm struct {
	X, Y          float64
	DY            float64
	Width, Height float64
	Health        float64
	BarrelAngle   float64
}

// NewWurm places a wurm whose feet rest on groundY.
func NewWurm(x, groundY float64) *Wurm {
	return &Wurm{
		X:      x,
		Y:      groundY - WurmHeight,
		Width:  WurmWidth,
		Height: WurmHeight,
		Health: WurmMaxHealth,
	}
}

func (w *Wurm) Center() Vec2 {
	return Vec2{X: w.X + w.Width/2, Y: w.Y + w.Height/2}
}

func (w *Wurm) Alive() bool { return w.Health > 0 }

func (w *Wurm) TakeDamage(amount float64) {
	w.Health -= amount
	if w.Health < 0 {
		w.Health = 0
	}
}

// OverlapsCircle tests the bounding box against a circle using the closest
// point on the rectangle.
func (w *Wurm) OverlapsCircle(c Vec2, radius float64) bool {
	if radius < 0 {
		return false
	}
	center := w.Center()
	halfW := w.Width / 2
	halfH := w.Height / 2
	offX := c.X - center.X
	offY := c.Y - center.Y
	closestX := Clamp(offX, -halfW, halfW)
	closestY := Clamp(offY, -halfH, halfH)
	dx := offX - closestX
	dy := offY - closestY
	return dx*dx+dy*dy <= radius*radius
}

// Fall applies gravity while the pixel under the middle of the wurm's feet is
// empty, and stops it the moment it is solid. A wurm that drops out of the
// bottom of the world dies.
func (w *Wurm) Fall(g Ground) {
	belowX := math.Floor(w.X + w.Width/2)
	belowY := math.Floor(w.Y + w.Height + 1)
	if g.IsColliding(belowX, belowY) {
		w.DY = 0
		return
	}
	w.DY += WurmGravity
	w.Y += w.DY
	if _, h := g.Dimensions(); w.Y > float64(h) {
		w.Health = 0
	}
}

func (w *Wurm) respawn(x, groundY float64) {
	w.X = x
	w.Y = groundY - w.Height
	w.DY = 0
	w.Health = WurmMaxHealth
	w.BarrelAngle = 0
}
