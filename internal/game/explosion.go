package game

// Explosion is a cosmetic blast marker kept for renderers.
type Explosion struct {
	X, Y     float64
	Radius   float64
	Duration int
	Frame    int
}

func newExplosion(c Vec2, radius float64) *Explosion {
	return &Explosion{X: c.X, Y: c.Y, Radius: radius, Duration: ExplosionFrames}
}

func (e *Explosion) advance() { e.Frame++ }

func (e *Explosion) Done() bool { return e.Frame >= e.Duration }

func (e *Explosion) Progress() float64 {
	if e.Duration <= 0 {
		return 1
	}
	return Clamp(float64(e.Frame)/float64(e.Duration), 0, 1)
}
