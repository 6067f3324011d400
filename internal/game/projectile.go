package game

// Projectile is any airborne munition. Position is the top-left corner of its
// 2·Radius bounding square. Fuse > 0 means a timed weapon; Fuse == 0 detonates
// on first contact.
type Projectile struct {
	ID              string
	Owner           Side
	X, Y            float64
	DX, DY          float64
	Radius          float64
	Damage          float64
	ExplosionRadius float64
	Fuse            int
	InitialFuse     int
	Cluster         int

	trail *Trail
}

func NewProjectile(x, y, dx, dy float64, w Weapon) *Projectile {
	return &Projectile{
		ID:              NewID("shot"),
		X:               x,
		Y:               y,
		DX:              dx,
		DY:              dy,
		Radius:          w.Radius,
		Damage:          w.Damage,
		ExplosionRadius: w.ExplosionRadius,
		Fuse:            w.Fuse,
		InitialFuse:     w.Fuse,
		Cluster:         w.Cluster,
		trail:           newTrail(TrailLength),
	}
}

func (p *Projectile) Center() Vec2 {
	return Vec2{X: p.X + p.Radius, Y: p.Y + p.Radius}
}

// Armed reports whether the projectile is still counting down and should
// bounce rather than detonate on contact.
func (p *Projectile) Armed() bool { return p.Fuse > 0 }

// TimerExpired is true only for timed weapons whose countdown has run out.
func (p *Projectile) TimerExpired() bool {
	return p.InitialFuse > 0 && p.Fuse <= 0
}

func (p *Projectile) Trail() []Vec2 { return p.trail.Points() }

func (p *Projectile) advance(gravity float64) {
	p.DY += gravity
	p.X += p.DX
	p.Y += p.DY
	if p.trail == nil {
		p.trail = newTrail(TrailLength)
	}
	p.trail.push(p.Center())
}

// bounceWalls reflects the projectile off the left and right edges. The top
// edge is open.
func (p *Projectile) bounceWalls(width float64) {
	if p.X < 0 {
		p.X = 0
		p.DX = -p.DX
	} else if p.X+p.Radius*2 > width {
		p.X = width - p.Radius*2
		p.DX = -p.DX
	}
}

func (p *Projectile) offWorld(width, height float64) bool {
	return p.X+p.Radius*2 < 0 || p.X > width || p.Y > height
}

func (p *Projectile) tickFuse() {
	if p.Fuse > 0 {
		p.Fuse--
	}
}
