package game

import "math"

type Outcome int

const (
	OutcomeFlying Outcome = iota
	OutcomeBounced
	OutcomeDirectHit
	OutcomeTerrainHit
	OutcomeOffWorld
	OutcomeTimerExpired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFlying:
		return "flying"
	case OutcomeBounced:
		return "bounced"
	case OutcomeDirectHit:
		return "direct_hit"
	case OutcomeTerrainHit:
		return "terrain_hit"
	case OutcomeOffWorld:
		return "off_world"
	case OutcomeTimerExpired:
		return "timer_expired"
	default:
		return "unknown"
	}
}

// Detonates reports whether the outcome ends the projectile with an explosion.
func (o Outcome) Detonates() bool {
	return o == OutcomeDirectHit || o == OutcomeTerrainHit || o == OutcomeTimerExpired
}

// Resolution is the verdict for one projectile on one tick.
type Resolution struct {
	Outcome Outcome
	Wurm    int // index of the wurm hit directly, -1 otherwise
}

// resolveProjectile decides what happened to p after it moved from prev this
// tick. Checks run in a fixed order: wurms in slice order, terrain, world
// bounds, then the expired timer. Bounces mutate p in place.
func resolveProjectile(p *Projectile, prev Vec2, wurms []*Wurm, g Ground) Resolution {
	center := p.Center()

	for i, w := range wurms {
		if !w.OverlapsCircle(center, p.Radius) {
			continue
		}
		if p.Armed() {
			bounce(p, prev, 0)
			return Resolution{Outcome: OutcomeBounced, Wurm: -1}
		}
		return Resolution{Outcome: OutcomeDirectHit, Wurm: i}
	}

	if g.IsColliding(center.X, center.Y) {
		if p.Armed() {
			bounce(p, prev, g.SlopeAt(center.X))
			return Resolution{Outcome: OutcomeBounced, Wurm: -1}
		}
		return Resolution{Outcome: OutcomeTerrainHit, Wurm: -1}
	}

	width, height := g.Dimensions()
	if p.offWorld(float64(width), float64(height)) {
		return Resolution{Outcome: OutcomeOffWorld, Wurm: -1}
	}

	if p.TimerExpired() {
		return Resolution{Outcome: OutcomeTimerExpired, Wurm: -1}
	}
	return Resolution{Outcome: OutcomeFlying, Wurm: -1}
}

// bounce puts p back where it started the tick and either settles it into a
// roll on gentle ground or reflects it off the surface with losses.
func bounce(p *Projectile, prev Vec2, slope float64) {
	p.X = prev.X
	p.Y = prev.Y

	if math.Abs(slope) < RestSlopeMax && math.Abs(p.DY) < RestSpeedMax {
		p.DY = 0
		p.DX += slope * RollAccel
		p.DX *= RollFriction
		return
	}
	p.DX, p.DY = reflect(p.DX, p.DY, slope)
}

// reflect mirrors (dx, dy) about the surface whose height changes by slope per
// px, keeping BounceTangent of the along-surface part and BounceNormal of the
// reversed into-surface part.
func reflect(dx, dy, slope float64) (float64, float64) {
	norm := math.Sqrt(1 + slope*slope)
	t := Vec2{X: 1 / norm, Y: slope / norm}
	n := Vec2{X: -slope / norm, Y: 1 / norm}
	v := Vec2{X: dx, Y: dy}

	vt := t.Scale(v.Dot(t))
	vn := n.Scale(v.Dot(n))
	out := vt.Scale(BounceTangent).Sub(vn.Scale(BounceNormal))
	return out.X, out.Y
}

// blastRadius is the splash radius used for damage; a direct hit always
// reaches the wurm it touched.
func blastRadius(p *Projectile) float64 {
	return math.Max(p.ExplosionRadius, p.Radius)
}

// applyBlast carves the crater and damages every wurm whose box the blast
// disc touches. It returns the indices of damaged wurms.
func applyBlast(p *Projectile, wurms []*Wurm, g Ground) []int {
	c := p.Center()
	g.Destroy(c.X, c.Y, p.ExplosionRadius)

	var hit []int
	r := blastRadius(p)
	for i, w := range wurms {
		if w.OverlapsCircle(c, r) {
			w.TakeDamage(p.Damage)
			hit = append(hit, i)
		}
	}
	return hit
}
