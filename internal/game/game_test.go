package game

import (
	"errors"
	"math"
	"testing"
)

func TestNewGameRejectsBadDimensions(t *testing.T) {
	seed := int64(1)
	_, err := NewGame(Config{Width: 0, Height: 600, Seed: &seed})
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestFireDoesNotHurtShooter(t *testing.T) {
	g := newTestGame(t, 42)
	if _, err := g.Fire(g.Wurm(SidePlayer), WeaponBazooka, 45, 50); err != nil {
		t.Fatalf("fire: %v", err)
	}
	g.Update()
	if h := g.Wurm(SidePlayer).Health; h != 100 {
		t.Fatalf("player health = %v, want 100", h)
	}
	if len(g.Projectiles()) != 1 {
		t.Fatalf("expected projectile still in flight")
	}
}

func TestFireSpawnsOutsideShooter(t *testing.T) {
	for _, angle := range []float64{0, 30, 90, 150, 180} {
		g := newTestGame(t, 3)
		w := g.Wurm(SidePlayer)
		p, err := g.Fire(w, WeaponNuke, angle, 10)
		if err != nil {
			t.Fatalf("fire: %v", err)
		}
		if w.OverlapsCircle(p.Center(), p.Radius) {
			t.Fatalf("angle %v: projectile spawned overlapping shooter", angle)
		}
		if w.BarrelAngle != angle {
			t.Fatalf("barrel angle = %v, want %v", w.BarrelAngle, angle)
		}
	}
}

func TestFireVelocityFromAngleAndPower(t *testing.T) {
	g := newTestGame(t, 3)
	p, err := g.Fire(g.Wurm(SidePlayer), WeaponBazooka, 90, 40)
	if err != nil {
		t.Fatalf("fire: %v", err)
	}
	if math.Abs(p.DX) > 1e-9 || math.Abs(p.DY+6) > 1e-9 {
		t.Fatalf("velocity = (%v,%v), want (0,-6)", p.DX, p.DY)
	}
}

func TestFireUnknownWeaponFails(t *testing.T) {
	g := newTestGame(t, 1)
	_, err := g.Fire(g.Wurm(SidePlayer), "laser", 45, 50)
	if !errors.Is(err, ErrUnknownWeapon) {
		t.Fatalf("err = %v, want ErrUnknownWeapon", err)
	}
	if g.Phase() != PhasePlanning || len(g.Projectiles()) != 0 {
		t.Fatalf("failed fire must not change the round")
	}
}

func TestFireRejectsForeignWurm(t *testing.T) {
	g := newTestGame(t, 1)
	if _, err := g.Fire(NewWurm(0, 0), WeaponBazooka, 45, 50); !errors.Is(err, ErrUnknownWurm) {
		t.Fatalf("err = %v, want ErrUnknownWurm", err)
	}
}

func TestSideWallsBounce(t *testing.T) {
	g := newTestGame(t, 1)
	s := stubbed(t, g)
	s.colliding = always(false)

	left := testProjectile(-1, 100, -2, 0, 5, 0, 0, 0)
	g.Spawn(left)
	g.Update()
	if left.DX != 2 || left.X != 0 {
		t.Fatalf("left wall: x=%v dx=%v, want x=0 dx=2", left.X, left.DX)
	}

	right := testProjectile(791, 100, 2, 0, 5, 0, 0, 0)
	g.Spawn(right)
	g.Update()
	if right.DX != -2 || right.X != 790 {
		t.Fatalf("right wall: x=%v dx=%v, want x=790 dx=-2", right.X, right.DX)
	}
	if len(g.Projectiles()) != 2 {
		t.Fatalf("wall bounces must not remove projectiles")
	}
}

func TestProjectileAboveTopIsKept(t *testing.T) {
	g := newTestGame(t, 1)
	p := testProjectile(200, -6, 0, 0, 5, 0, 0, 0)
	g.Spawn(p)
	g.Update()
	if len(g.Projectiles()) != 1 {
		t.Fatalf("projectile above the top edge was removed")
	}
	if p.DY <= 0 {
		t.Fatalf("expected gravity to pull it back down, dy=%v", p.DY)
	}
}

func TestProjectileBelowBottomDespawnsSilently(t *testing.T) {
	g := newTestGame(t, 1)
	s := stubbed(t, g)
	s.colliding = always(false)
	g.Spawn(testProjectile(300, 601, 0, 0, 5, 50, 20, 0))
	g.Update()
	if len(g.Projectiles()) != 0 || len(g.CurrentTurn()) != 0 {
		t.Fatalf("expected projectile removed from both lists")
	}
	if len(s.destroyed) != 0 || len(g.Explosions()) != 0 {
		t.Fatalf("leaving the world must not detonate")
	}
}

func TestFusedProjectileBouncesThenDetonates(t *testing.T) {
	g := newTestGame(t, 1)
	s := stubbed(t, g)
	p := testProjectile(100, 100, 0, 3, 5, 0, 0, 1)
	g.Spawn(p)

	s.colliding = always(true)
	s.slope = func(float64) float64 { return 0 }
	g.Update()
	if p.DY >= 0 {
		t.Fatalf("dy = %v, expected reversed", p.DY)
	}
	if math.Abs(p.DY) >= 3+Gravity {
		t.Fatalf("|dy| = %v, expected damped", math.Abs(p.DY))
	}
	if len(g.Projectiles()) != 1 {
		t.Fatalf("fused projectile detonated on first contact")
	}

	s.colliding = always(false)
	g.Update()
	if len(g.Projectiles()) != 0 {
		t.Fatalf("expected detonation once the fuse ran out")
	}
	if len(s.destroyed) != 1 {
		t.Fatalf("destroy calls = %d, want 1", len(s.destroyed))
	}
	d := g.DrainDetonations()
	if len(d) != 1 || d[0].Outcome != OutcomeTimerExpired {
		t.Fatalf("detonations = %+v, want one timer expiry", d)
	}
}

func TestContactProjectileDetonatesOnFirstContact(t *testing.T) {
	g := newTestGame(t, 1)
	s := stubbed(t, g)
	s.colliding = always(true)

	g.Spawn(testProjectile(100, 100, 0, 0, 10, 25, 50, 0))
	g.Update()

	if len(g.Projectiles()) != 0 {
		t.Fatalf("contact projectile survived terrain contact")
	}
	if len(g.Explosions()) != 1 {
		t.Fatalf("explosions = %d, want 1", len(g.Explosions()))
	}
	if len(s.destroyed) != 1 || s.destroyed[0].Radius != 50 {
		t.Fatalf("destroy calls = %+v", s.destroyed)
	}
}

func TestTimedFuseSurvivesExactlyItsTicks(t *testing.T) {
	g := newTestGame(t, 1)
	s := stubbed(t, g)
	s.colliding = always(false)

	const fuse = 5
	p := testProjectile(400, 50, 0, 0, 5, 0, 10, fuse)
	g.Spawn(p)
	for i := 1; i <= fuse; i++ {
		g.Update()
		if len(g.Projectiles()) != 1 {
			t.Fatalf("detonated after %d ticks, want %d", i, fuse+1)
		}
	}
	g.Update()
	if len(g.Projectiles()) != 0 {
		t.Fatalf("expected detonation on tick %d", fuse+1)
	}
}

func TestRollingOnGentleSlope(t *testing.T) {
	g := newTestGame(t, 1)
	s := stubbed(t, g)
	s.colliding = always(true)
	s.slope = func(float64) float64 { return 0.2 }

	p := testProjectile(100, 100, 1, 0.2, 5, 0, 0, 1)
	g.Spawn(p)
	g.Update()

	if p.DY != 0 {
		t.Fatalf("dy = %v, want 0", p.DY)
	}
	if math.Abs(p.DX-0.936) > 1e-3 {
		t.Fatalf("dx = %v, want ~0.936", p.DX)
	}
}

func TestRollsDownhillAfterLanding(t *testing.T) {
	g := newTestGame(t, 1)
	s := stubbed(t, g)
	ground := func(x float64) float64 { return 0.5*x + 50 }
	s.colliding = func(x, y float64) bool { return y >= ground(x) }
	s.slope = func(float64) float64 { return 0.5 }

	p := testProjectile(100, 100, 0, 1, 5, 0, 0, 1)
	g.Spawn(p)
	g.Update()

	if p.DY != 0 {
		t.Fatalf("dy = %v, want 0", p.DY)
	}
	if p.DX <= 0 {
		t.Fatalf("dx = %v, expected to roll downhill", p.DX)
	}
}

func TestSplashReachesWurmFromOutsideItsBox(t *testing.T) {
	for _, tc := range []struct {
		name       string
		blast      float64
		wantHealth float64
	}{
		{"in range", 5, 80},
		{"out of range", 3, 100},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, 1)
			s := stubbed(t, g)
			s.colliding = always(true)
			w := g.Wurm(SidePlayer)

			// Centre 4px to the right of the box, too small to touch it directly.
			const r = 2.0
			cx := w.X + w.Width + 4
			cy := w.Y + w.Height/2 - Gravity
			g.Spawn(testProjectile(cx-r, cy-r, 0, 0, r, 20, tc.blast, 0))
			g.Update()

			if w.Health != tc.wantHealth {
				t.Fatalf("health = %v, want %v", w.Health, tc.wantHealth)
			}
		})
	}
}

func TestClusterSpawnsChildrenIntoCurrentTurn(t *testing.T) {
	g := newTestGame(t, 1)
	s := stubbed(t, g)
	s.colliding = always(true)

	w, err := LookupWeapon(WeaponMortar)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	g.Spawn(NewProjectile(400, 100, 0, 0, w))
	g.Update()

	kids := g.CurrentTurn()
	if len(kids) != w.Cluster || len(g.Projectiles()) != w.Cluster {
		t.Fatalf("children = %d/%d, want %d", len(kids), len(g.Projectiles()), w.Cluster)
	}
	grenade, _ := LookupWeapon(WeaponGrenade)
	for _, k := range kids {
		if k.Damage != grenade.Damage*ClusterDamageScale || k.InitialFuse != grenade.Fuse || k.Cluster != 0 {
			t.Fatalf("unexpected child %+v", k)
		}
	}
}

func TestClusterSpawnIsSeedReproducible(t *testing.T) {
	run := func() []Vec2 {
		g := newTestGame(t, 77)
		s := stubbed(t, g)
		s.colliding = always(true)
		w, _ := LookupWeapon(WeaponClusterGrenade)
		w.Fuse = 0
		g.Spawn(NewProjectile(400, 100, 0, 0, w))
		g.Update()
		var out []Vec2
		for _, p := range g.Projectiles() {
			out = append(out, Vec2{X: p.DX, Y: p.DY})
		}
		return out
	}
	a, b := run(), run()
	if len(a) != 3 || len(a) != len(b) {
		t.Fatalf("children %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("child %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestExplosionEffectExpires(t *testing.T) {
	g := newTestGame(t, 1)
	s := stubbed(t, g)
	s.colliding = always(true)
	g.Spawn(testProjectile(400, 100, 0, 0, 5, 0, 20, 0))
	g.Update()

	for i := 0; i < ExplosionFrames-1; i++ {
		g.Update()
	}
	if len(g.Explosions()) != 1 {
		t.Fatalf("explosion gone early")
	}
	g.Update()
	if len(g.Explosions()) != 0 {
		t.Fatalf("explosion not dropped after %d frames", ExplosionFrames)
	}
}

func TestSimulateStopsAtCeiling(t *testing.T) {
	g := newTestGame(t, 1)
	s := stubbed(t, g)
	s.colliding = always(true)
	s.slope = func(float64) float64 { return 0 }
	p := testProjectile(400, 100, 0, 0, 5, 0, 0, 1_000_000)
	g.Spawn(p)

	n, ok := g.SimulateUntilResolved(50)
	if ok || n != 50 {
		t.Fatalf("simulate = (%d,%v), want (50,false)", n, ok)
	}
	if len(g.CurrentTurn()) != 1 {
		t.Fatalf("stalled round should keep its projectile")
	}
}

func TestTurnsAlternate(t *testing.T) {
	g := newTestGame(t, 12)
	player := g.Wurm(SidePlayer)
	ai := g.Wurm(SideAI)

	if g.DueSide() != SidePlayer {
		t.Fatalf("player should act first")
	}
	if _, err := g.Fire(ai, WeaponBazooka, 90, 0); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("err = %v, want ErrNotYourTurn", err)
	}
	if _, err := g.Fire(player, WeaponBazooka, 90, 0); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if g.Phase() != PhaseExecution {
		t.Fatalf("phase = %s, want execution", g.Phase())
	}
	if _, err := g.Fire(player, WeaponBazooka, 90, 0); !errors.Is(err, ErrShotInFlight) {
		t.Fatalf("err = %v, want ErrShotInFlight", err)
	}
	if _, ok := g.SimulateUntilResolved(0); !ok {
		t.Fatalf("shot did not resolve")
	}
	if g.Phase() != PhaseResolution || g.DueSide() != SideAI {
		t.Fatalf("phase = %s, want resolution", g.Phase())
	}

	if _, err := g.Fire(ai, WeaponBazooka, 90, 0); err != nil {
		t.Fatalf("ai fire: %v", err)
	}
	if _, ok := g.SimulateUntilResolved(0); !ok {
		t.Fatalf("ai shot did not resolve")
	}
	if g.Phase() != PhasePlanning || g.Turn() != 2 {
		t.Fatalf("phase = %s turn = %d, want planning turn 2", g.Phase(), g.Turn())
	}
}

func TestGameOverWinnerAndDraw(t *testing.T) {
	g := newTestGame(t, 12)
	g.Wurm(SideAI).Health = 0
	if _, err := g.Fire(g.Wurm(SidePlayer), WeaponBazooka, 90, 0); err != nil {
		t.Fatalf("fire: %v", err)
	}
	g.SimulateUntilResolved(0)
	if g.Phase() != PhaseGameOver || g.Winner() != SidePlayer {
		t.Fatalf("phase=%s winner=%s, want game_over/player", g.Phase(), g.Winner())
	}
	if _, err := g.Fire(g.Wurm(SidePlayer), WeaponBazooka, 90, 0); !errors.Is(err, ErrRoundOver) {
		t.Fatalf("err = %v, want ErrRoundOver", err)
	}

	if err := g.Reset(nil); err != nil {
		t.Fatalf("reset: %v", err)
	}
	g.Wurm(SideAI).Health = 0
	g.Wurm(SidePlayer).Health = 5
	if _, err := g.Fire(g.Wurm(SidePlayer), WeaponBazooka, 90, 0); err != nil {
		t.Fatalf("fire: %v", err)
	}
	g.SimulateUntilResolved(0)
	if g.Phase() != PhaseGameOver || g.Winner() != SideNone {
		t.Fatalf("phase=%s winner=%s, want draw", g.Phase(), g.Winner())
	}
}

func TestSpawnPositionsFollowSeed(t *testing.T) {
	a := newTestGame(t, 42)
	b := newTestGame(t, 42)
	if a.Wurm(SidePlayer).X != b.Wurm(SidePlayer).X || a.Wurm(SideAI).X != b.Wurm(SideAI).X {
		t.Fatalf("same seed gave different spawns")
	}

	c := newTestGame(t, 1)
	d := newTestGame(t, 2)
	if c.Wurm(SidePlayer).X == d.Wurm(SidePlayer).X || c.Wurm(SideAI).X == d.Wurm(SideAI).X {
		t.Fatalf("different seeds gave identical spawns")
	}
}

func TestResetRestoresRound(t *testing.T) {
	g := newTestGame(t, 5)
	px, ax := g.Wurm(SidePlayer).X, g.Wurm(SideAI).X

	g.Wurm(SidePlayer).TakeDamage(40)
	g.Wurm(SidePlayer).X += 30
	if _, err := g.Fire(g.Wurm(SidePlayer), WeaponGrenade, 60, 50); err != nil {
		t.Fatalf("fire: %v", err)
	}
	g.Terrain().Destroy(400, 300, 80)
	g.Update()

	if err := g.Reset(nil); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if g.Wurm(SidePlayer).X != px || g.Wurm(SideAI).X != ax {
		t.Fatalf("spawns moved after reset")
	}
	if g.Wurm(SidePlayer).Health != WurmMaxHealth {
		t.Fatalf("health not restored")
	}
	if len(g.Projectiles()) != 0 || len(g.CurrentTurn()) != 0 || len(g.Explosions()) != 0 {
		t.Fatalf("lists not cleared")
	}
	if g.Phase() != PhasePlanning || g.Turn() != 0 {
		t.Fatalf("phase=%s turn=%d after reset", g.Phase(), g.Turn())
	}
	fresh := newTestGame(t, 5)
	if g.Terrain().SurfaceY(400) != fresh.Terrain().SurfaceY(400) {
		t.Fatalf("crater survived reset")
	}

	seed := int64(6)
	if err := g.Reset(&seed); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if g.Seed() != 6 {
		t.Fatalf("seed = %d, want 6", g.Seed())
	}
}

func TestWurmFallsUntilGround(t *testing.T) {
	g := newTestGame(t, 9)
	w := g.Wurm(SidePlayer)
	rest := w.Y
	w.Y -= 40
	for i := 0; i < 200; i++ {
		g.Update()
	}
	if w.DY != 0 {
		t.Fatalf("wurm still falling, dy=%v", w.DY)
	}
	if w.Y < rest-2 || w.Y > rest+WurmGravity*30 {
		t.Fatalf("wurm rests at %v, expected near %v", w.Y, rest)
	}
}

func TestWurmDiesFallingOutOfWorld(t *testing.T) {
	g := newTestGame(t, 9)
	s := stubbed(t, g)
	s.colliding = always(false)
	for i := 0; i < 500; i++ {
		g.Update()
	}
	if g.Wurm(SidePlayer).Alive() {
		t.Fatalf("wurm survived falling out of the world")
	}
}

func TestWurmFallingOutBetweenTurnsEndsRound(t *testing.T) {
	g := newTestGame(t, 12)
	if _, err := g.Fire(g.Wurm(SidePlayer), WeaponBazooka, 90, 0); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if _, ok := g.SimulateUntilResolved(0); !ok || g.Phase() != PhaseResolution {
		t.Fatalf("phase = %s, want resolution", g.Phase())
	}

	ai := g.Wurm(SideAI)
	_, h := g.Dimensions()
	cx := ai.X + ai.Width/2
	for y := ai.Y; y <= float64(h)+20; y += 10 {
		g.Terrain().Destroy(cx, y, 20)
	}
	for i := 0; i < 200; i++ {
		g.Update()
	}

	if ai.Alive() {
		t.Fatalf("ai wurm survived the shaft")
	}
	if g.Phase() != PhaseGameOver || g.Winner() != SidePlayer {
		t.Fatalf("phase=%s winner=%s, want game_over/player", g.Phase(), g.Winner())
	}
	if _, err := g.Fire(ai, WeaponNuke, 45, 50); !errors.Is(err, ErrRoundOver) {
		t.Fatalf("err = %v, want ErrRoundOver", err)
	}
}

func TestDeadWurmCannotFire(t *testing.T) {
	g := newTestGame(t, 12)
	g.Wurm(SidePlayer).Health = 0
	if _, err := g.Fire(g.Wurm(SidePlayer), WeaponBazooka, 45, 50); !errors.Is(err, ErrRoundOver) {
		t.Fatalf("err = %v, want ErrRoundOver", err)
	}
	if len(g.Projectiles()) != 0 {
		t.Fatalf("dead wurm launched a projectile")
	}
}

func TestFireRejectsNonFiniteShot(t *testing.T) {
	g := newTestGame(t, 1)
	for _, tc := range []struct{ angle, power float64 }{
		{math.NaN(), 50},
		{45, math.NaN()},
		{math.Inf(1), 50},
		{45, math.Inf(-1)},
	} {
		if _, err := g.Fire(g.Wurm(SidePlayer), WeaponBazooka, tc.angle, tc.power); !errors.Is(err, ErrInvalidShot) {
			t.Fatalf("fire(%v, %v): err = %v, want ErrInvalidShot", tc.angle, tc.power, err)
		}
	}
	if g.Phase() != PhasePlanning || len(g.Projectiles()) != 0 {
		t.Fatalf("rejected shots changed the round")
	}
	g.Update()
}

func TestSimulateCeilingFollowsConfig(t *testing.T) {
	seed := int64(1)
	cfg := DefaultConfig()
	cfg.Seed = &seed
	cfg.SimulateCeiling = 40
	g, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if g.SimulateCeiling() != 40 {
		t.Fatalf("ceiling = %d, want 40", g.SimulateCeiling())
	}
	s := stubbed(t, g)
	s.colliding = always(true)
	s.slope = func(float64) float64 { return 0 }
	g.Spawn(testProjectile(400, 100, 0, 0, 5, 0, 0, 1_000_000))

	if n, ok := g.SimulateUntilResolved(0); ok || n != 40 {
		t.Fatalf("simulate = (%d,%v), want (40,false)", n, ok)
	}
}
