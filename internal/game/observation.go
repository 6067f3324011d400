package game

import (
	"fmt"
	"math/rand"
)

// Observation is what an opponent sees before choosing a shot. Positions use
// the middle of each wurm's top edge.
type Observation struct {
	Side           Side
	ShooterX       float64
	ShooterY       float64
	ShooterHealth  float64
	TargetX        float64
	TargetY        float64
	TargetHealth   float64
	DX             float64 // TargetX - ShooterX
	DY             float64 // ShooterY - TargetY
	TerrainHeights []float64
}

// Action is an opponent's shot. WeaponIndex indexes WeaponChoices; Weapon, if
// set, takes precedence.
type Action struct {
	WeaponIndex int
	Weapon      string
	Angle       float64
	Power       float64
}

// Opponent chooses shots from observations.
type Opponent interface {
	Decide(obs Observation) Action
}

func weaponIndex(name string) int {
	for i, w := range WeaponChoices {
		if w == name {
			return i
		}
	}
	return -1
}

// WeaponName resolves the action's weapon, falling back to the first choice
// for an out-of-range index.
func (a Action) WeaponName() string {
	if a.Weapon != "" {
		return a.Weapon
	}
	if a.WeaponIndex < 0 || a.WeaponIndex >= len(WeaponChoices) {
		return WeaponChoices[0]
	}
	return WeaponChoices[a.WeaponIndex]
}

// Observe builds side's view of the round. sampleEvery <= 0 skips the terrain
// samples.
func (g *Game) Observe(side Side, sampleEvery int) Observation {
	shooter := g.wurms[side]
	target := g.wurms[side.Opponent()]
	obs := Observation{
		Side:          side,
		ShooterX:      shooter.X + shooter.Width/2,
		ShooterY:      shooter.Y,
		ShooterHealth: shooter.Health,
		TargetX:       target.X + target.Width/2,
		TargetY:       target.Y,
		TargetHealth:  target.Health,
	}
	obs.DX = obs.TargetX - obs.ShooterX
	obs.DY = obs.ShooterY - obs.TargetY
	if sampleEvery > 0 {
		obs.TerrainHeights = SampleSurface(g.ground, sampleEvery)
	}
	return obs
}

// Apply fires an opponent's action for side, clamping angle and power into
// range. Non-finite values are rejected rather than clamped.
func (g *Game) Apply(side Side, a Action) (*Projectile, error) {
	if side != SidePlayer && side != SideAI {
		return nil, ErrUnknownWurm
	}
	if !finite(a.Angle) || !finite(a.Power) {
		return nil, fmt.Errorf("%s action: %w", side, ErrInvalidShot)
	}
	angle := Clamp(a.Angle, 0, MaxAngle)
	power := Clamp(a.Power, 0, MaxPower)
	return g.Fire(g.wurms[side], a.WeaponName(), angle, power)
}

// RandomOpponent fires uniformly random shots from a seeded stream.
type RandomOpponent struct {
	rng *rand.Rand
}

func NewRandomOpponent(seed int64) *RandomOpponent {
	return &RandomOpponent{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomOpponent) Decide(Observation) Action {
	return Action{
		WeaponIndex: r.rng.Intn(len(WeaponChoices)),
		Angle:       r.rng.Float64() * MaxAngle,
		Power:       r.rng.Float64() * MaxPower,
	}
}
