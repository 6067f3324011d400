package game

import "math"

const (
	SolverPower          = 60.0
	SolverStandardWeapon = WeaponMortar
	SolverEscalateAfter  = 6 // shots fired before switching to the strongest weapon
)

// rangingOffsets are the deliberate aim errors, in degrees, for the first
// shots of a solver. Later shots use the solved angle.
var rangingOffsets = []float64{45, 20, 5}

// BallisticSolver aims by inverting the projectile-motion equations. Each
// solver counts its own shots, so every scripted wurm ranges in separately.
type BallisticSolver struct {
	shots int
}

func NewBallisticSolver() *BallisticSolver { return &BallisticSolver{} }

func (s *BallisticSolver) Shots() int { return s.shots }

// Solve aims shooter at target. Both wurms are referenced by the middle of
// their top edge.
func (s *BallisticSolver) Solve(shooter, target *Wurm) Action {
	dx := (target.X + target.Width/2) - (shooter.X + shooter.Width/2)
	dy := shooter.Y - target.Y
	return s.solve(dx, dy)
}

// Decide implements Opponent from an observation.
func (s *BallisticSolver) Decide(obs Observation) Action {
	return s.solve(obs.DX, obs.DY)
}

func (s *BallisticSolver) solve(dx, dy float64) Action {
	s.shots++

	angle := SolvedAngle(dx, dy, SolverPower*VelocityScale, Gravity)
	if s.shots <= len(rangingOffsets) {
		dir := 1.0
		if dx < 0 {
			dir = -1.0
		}
		angle -= dir * rangingOffsets[s.shots-1]
	}
	angle = Clamp(angle, 0, MaxAngle)

	weapon := SolverStandardWeapon
	if s.shots > SolverEscalateAfter {
		weapon = StrongestWeapon().Name
	}
	return Action{
		WeaponIndex: weaponIndex(weapon),
		Weapon:      weapon,
		Angle:       angle,
		Power:       SolverPower,
	}
}

// SolvedAngle returns the launch angle in degrees for a target dx to the right
// with dy = shooterY - targetY, at launch speed v under gravity g. Straight up
// for dx == 0, 45° when the target is out of reach.
func SolvedAngle(dx, dy, v, g float64) float64 {
	if dx == 0 {
		return 90
	}
	dxAbs := math.Abs(dx)
	v2 := v * v
	disc := v2*v2 - g*(g*dxAbs*dxAbs+2*dy*v2)

	var rad float64
	if disc <= 0 {
		rad = math.Pi / 4
	} else {
		rad = math.Atan((v2 + math.Sqrt(disc)) / (g * dxAbs))
	}
	deg := rad * 180 / math.Pi
	if dx < 0 {
		deg = 180 - deg
	}
	return deg
}
