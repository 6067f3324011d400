package game

import "testing"

type destroyCall struct {
	X, Y, Radius float64
}

// stubGround wraps a real terrain and lets a test override contact and slope.
type stubGround struct {
	*Terrain
	colliding func(x, y float64) bool
	slope     func(x float64) float64
	destroyed []destroyCall
}

func (s *stubGround) IsColliding(x, y float64) bool {
	if s.colliding != nil {
		return s.colliding(x, y)
	}
	return s.Terrain.IsColliding(x, y)
}

func (s *stubGround) SlopeAt(x float64) float64 {
	if s.slope != nil {
		return s.slope(x)
	}
	return s.Terrain.SlopeAt(x)
}

func (s *stubGround) Destroy(x, y, radius float64) int {
	s.destroyed = append(s.destroyed, destroyCall{X: x, Y: y, Radius: radius})
	return s.Terrain.Destroy(x, y, radius)
}

func always(v bool) func(x, y float64) bool {
	return func(float64, float64) bool { return v }
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = &seed
	g, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

// stubbed swaps the game's ground for a stub over the same terrain.
func stubbed(t *testing.T, g *Game) *stubGround {
	t.Helper()
	s := &stubGround{Terrain: g.Terrain()}
	g.SetGround(s)
	return s
}

func testProjectile(x, y, dx, dy, radius, damage, explosionRadius float64, fuse int) *Projectile {
	return NewProjectile(x, y, dx, dy, Weapon{
		Name:            "test",
		Radius:          radius,
		Damage:          damage,
		ExplosionRadius: explosionRadius,
		Fuse:            fuse,
	})
}
