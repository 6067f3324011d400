package game

import (
	"fmt"
	"math"
	"math/rand"
)

type Config struct {
	Width  int
	Height int
	Seed   *int64 // nil picks a random seed

	// Room pacing; zero values fall back to SimHz, DefaultSimulateTicks and BotThinkS.
	TickHz          float64
	SimulateCeiling int
	BotThink        float64
}

func DefaultConfig() Config {
	return Config{
		Width:           WorldW,
		Height:          WorldH,
		TickHz:          SimHz,
		SimulateCeiling: DefaultSimulateTicks,
		BotThink:        BotThinkS,
	}
}

func (c Config) tickHz() float64 {
	if c.TickHz <= 0 {
		return SimHz
	}
	return c.TickHz
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (c Config) simulateCeiling() int {
	if c.SimulateCeiling <= 0 {
		return DefaultSimulateTicks
	}
	return c.SimulateCeiling
}

func (c Config) botThink() float64 {
	if c.BotThink < 0 {
		return BotThinkS
	}
	return c.BotThink
}

// Detonation records one explosion for observers that care when, not how, a
// blast happened.
type Detonation struct {
	Tick         int
	ProjectileID string
	Owner        Side
	Outcome      Outcome
	At           Vec2
	Radius       float64
	Damaged      []Side
}

// Game is the round controller. It owns the terrain, both wurms and every
// projectile, and mutates them only inside Update, Fire and Reset.
type Game struct {
	width   int
	height  int
	seed    int64
	ceiling int

	ground  Ground
	terrain *Terrain
	rng     *rand.Rand

	wurms       [2]*Wurm
	projectiles []*Projectile
	current     []*Projectile
	explosions  []*Explosion
	detonations []Detonation

	phase   Phase
	shooter Side
	winner  Side
	turn    int
	tick    int
}

func NewGame(cfg Config) (*Game, error) {
	seed := RandomSeed()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	g := &Game{
		width:   cfg.Width,
		height:  cfg.Height,
		seed:    seed,
		ceiling: cfg.simulateCeiling(),
		wurms:   [2]*Wurm{{}, {}},
	}
	if err := g.Reset(nil); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset rebuilds the terrain, puts both wurms back at full health on their
// spawns and clears every list. A nil seed keeps the current one.
func (g *Game) Reset(seed *int64) error {
	if seed != nil {
		g.seed = *seed
	}
	terrain, err := NewTerrain(g.width, g.height, g.seed)
	if err != nil {
		return fmt.Errorf("reset round: %w", err)
	}
	g.terrain = terrain
	g.ground = terrain
	g.rng = rand.New(rand.NewSource(g.seed ^ 0x5eed))

	playerX := WurmSpawnEdge + g.rng.Float64()*WurmSpawnJit
	aiX := float64(g.width) - WurmSpawnEdge - g.rng.Float64()*WurmSpawnJit
	g.placeWurm(g.wurms[SidePlayer], playerX)
	g.placeWurm(g.wurms[SideAI], aiX)

	g.projectiles = nil
	g.current = nil
	g.explosions = nil
	g.detonations = nil
	g.phase = PhasePlanning
	g.shooter = SideNone
	g.winner = SideNone
	g.turn = 0
	g.tick = 0
	return nil
}

func (g *Game) placeWurm(w *Wurm, x float64) {
	x = Clamp(x, 0, math.Max(0, float64(g.width)-WurmWidth))
	w.Width = WurmWidth
	w.Height = WurmHeight
	w.respawn(x, g.ground.HeightAt(x+WurmWidth/2))
}

// SetGround swaps the surface the round is played on. The wurms are left
// where they are.
func (g *Game) SetGround(ground Ground) {
	g.ground = ground
	if t, ok := ground.(*Terrain); ok {
		g.terrain = t
	}
}

func (g *Game) sideOf(w *Wurm) Side {
	for i, candidate := range g.wurms {
		if candidate == w {
			return Side(i)
		}
	}
	return SideNone
}

// Fire launches weapon from w at angle degrees (0 = right, 90 = up) with the
// given power. It starts the Execution phase.
func (g *Game) Fire(w *Wurm, weapon string, angle, power float64) (*Projectile, error) {
	side := g.sideOf(w)
	if side == SideNone {
		return nil, ErrUnknownWurm
	}
	if err := g.checkCanFire(side); err != nil {
		return nil, fmt.Errorf("%s fire: %w", side, err)
	}
	if !finite(angle) || !finite(power) {
		return nil, fmt.Errorf("%s fire: %w: angle %v power %v", side, ErrInvalidShot, angle, power)
	}
	spec, err := LookupWeapon(weapon)
	if err != nil {
		return nil, err
	}

	rad := angle * math.Pi / 180
	w.BarrelAngle = angle
	offset := w.Width/2 + spec.Radius + 0.1
	c := w.Center()
	startX := c.X + math.Cos(rad)*offset - spec.Radius
	startY := c.Y - math.Sin(rad)*offset - spec.Radius
	velX := power * math.Cos(rad) * VelocityScale
	velY := -power * math.Sin(rad) * VelocityScale

	p := NewProjectile(startX, startY, velX, velY, spec)
	p.Owner = side

	g.current = nil
	g.Spawn(p)
	g.shooter = side
	g.phase = PhaseExecution
	g.turn++
	return p, nil
}

// Spawn adds p to the airborne list and to the current turn.
func (g *Game) Spawn(p *Projectile) {
	if p.trail == nil {
		p.trail = newTrail(TrailLength)
	}
	g.projectiles = append(g.projectiles, p)
	g.current = append(g.current, p)
}

// Update advances the round by one tick.
func (g *Game) Update() {
	g.tick++
	for _, w := range g.wurms {
		w.Fall(g.ground)
	}
	if g.phase == PhasePlanning || g.phase == PhaseResolution {
		g.checkGameOver()
	}

	live := g.explosions[:0]
	for _, e := range g.explosions {
		e.advance()
		if !e.Done() {
			live = append(live, e)
		}
	}
	g.explosions = live

	width, _ := g.ground.Dimensions()
	for i := len(g.projectiles) - 1; i >= 0; i-- {
		p := g.projectiles[i]
		prev := Vec2{X: p.X, Y: p.Y}
		p.advance(Gravity)
		p.bounceWalls(float64(width))

		res := resolveProjectile(p, prev, g.wurms[:], g.ground)
		switch {
		case res.Outcome.Detonates():
			g.detonate(p, res.Outcome)
		case res.Outcome == OutcomeOffWorld:
			g.remove(p)
		default:
			p.tickFuse()
		}
	}

	if g.phase == PhaseExecution && len(g.current) == 0 {
		g.endTurn()
	}
}

func (g *Game) detonate(p *Projectile, outcome Outcome) {
	hit := applyBlast(p, g.wurms[:], g.ground)
	c := p.Center()
	g.explosions = append(g.explosions, newExplosion(c, p.ExplosionRadius))

	damaged := make([]Side, 0, len(hit))
	for _, i := range hit {
		damaged = append(damaged, Side(i))
	}
	g.detonations = append(g.detonations, Detonation{
		Tick:         g.tick,
		ProjectileID: p.ID,
		Owner:        p.Owner,
		Outcome:      outcome,
		At:           c,
		Radius:       p.ExplosionRadius,
		Damaged:      damaged,
	})

	if p.Cluster > 0 {
		g.spawnCluster(p, c)
	}
	g.remove(p)
}

func (g *Game) spawnCluster(parent *Projectile, c Vec2) {
	child := clusterChildWeapon()
	spread := parent.ExplosionRadius * ClusterSpread
	speed := parent.ExplosionRadius * ClusterSpeedScale
	for k := 0; k < parent.Cluster; k++ {
		off := Vec2{
			X: (g.rng.Float64()*2 - 1) * spread,
			Y: -g.rng.Float64() * spread,
		}
		pos := c.Add(off)
		dx := (g.rng.Float64()*2 - 1) * speed
		dy := -(0.5 + 0.5*g.rng.Float64()) * speed
		p := NewProjectile(pos.X-child.Radius, pos.Y-child.Radius, dx, dy, child)
		p.Owner = parent.Owner
		g.Spawn(p)
	}
}

func (g *Game) remove(p *Projectile) {
	g.projectiles = removeProjectile(g.projectiles, p)
	g.current = removeProjectile(g.current, p)
}

func removeProjectile(list []*Projectile, p *Projectile) []*Projectile {
	for i, candidate := range list {
		if candidate == p {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// SimulateUntilResolved ticks until the current turn has no projectiles left
// or maxTicks is reached. It reports the ticks run and whether the turn
// actually resolved; hitting the ceiling leaves the round as it is.
func (g *Game) SimulateUntilResolved(maxTicks int) (int, bool) {
	if maxTicks <= 0 {
		maxTicks = g.ceiling
	}
	n := 0
	for len(g.current) > 0 && n < maxTicks {
		g.Update()
		n++
	}
	return n, len(g.current) == 0
}

// DrainDetonations returns the detonations since the last call and forgets them.
func (g *Game) DrainDetonations() []Detonation {
	out := g.detonations
	g.detonations = nil
	return out
}

func (g *Game) Ground() Ground           { return g.ground }
func (g *Game) Terrain() *Terrain        { return g.terrain }
func (g *Game) Seed() int64              { return g.seed }
func (g *Game) SimulateCeiling() int     { return g.ceiling }
func (g *Game) Dimensions() (int, int)   { return g.width, g.height }
func (g *Game) Wurm(side Side) *Wurm     { return g.wurms[side] }
func (g *Game) Wurms() []*Wurm           { return g.wurms[:] }
func (g *Game) Phase() Phase             { return g.phase }
func (g *Game) Winner() Side             { return g.winner }
func (g *Game) Shooter() Side            { return g.shooter }
func (g *Game) Turn() int                { return g.turn }
func (g *Game) Tick() int                { return g.tick }
func (g *Game) Explosions() []*Explosion { return append([]*Explosion(nil), g.explosions...) }

func (g *Game) Projectiles() []*Projectile {
	return append([]*Projectile(nil), g.projectiles...)
}

func (g *Game) CurrentTurn() []*Projectile {
	return append([]*Projectile(nil), g.current...)
}
