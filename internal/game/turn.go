package game

import "errors"

var (
	ErrNotYourTurn  = errors.New("not this wurm's turn")
	ErrShotInFlight = errors.New("a shot is still in flight")
	ErrRoundOver    = errors.New("round is over")
	ErrUnknownWurm  = errors.New("wurm does not belong to this round")
	ErrInvalidShot  = errors.New("angle and power must be finite")
)

// Phase is the round's turn state. Planning waits on the player side,
// Resolution waits on the opponent, Execution runs the shot in flight.
type Phase int

const (
	PhasePlanning Phase = iota
	PhaseExecution
	PhaseResolution
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "planning"
	case PhaseExecution:
		return "execution"
	case PhaseResolution:
		return "resolution"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// DueSide is the side allowed to fire next, or SideNone while a shot is in
// flight or the round is over.
func (g *Game) DueSide() Side {
	switch g.phase {
	case PhasePlanning:
		return SidePlayer
	case PhaseResolution:
		return SideAI
	default:
		return SideNone
	}
}

func (g *Game) checkCanFire(side Side) error {
	switch g.phase {
	case PhaseGameOver:
		return ErrRoundOver
	case PhaseExecution:
		return ErrShotInFlight
	}
	if !g.wurms[side].Alive() {
		return ErrRoundOver
	}
	if side != g.DueSide() {
		return ErrNotYourTurn
	}
	return nil
}

// checkGameOver ends the round if either wurm is dead. Wurms can die between
// shots by falling out of the world, so Update calls it outside Execution too.
func (g *Game) checkGameOver() bool {
	playerDead := !g.wurms[SidePlayer].Alive()
	aiDead := !g.wurms[SideAI].Alive()

	switch {
	case playerDead && aiDead:
		g.winner = SideNone
	case playerDead:
		g.winner = SideAI
	case aiDead:
		g.winner = SidePlayer
	default:
		return false
	}
	g.phase = PhaseGameOver
	return true
}

// endTurn runs once the current-turn set empties after a shot.
func (g *Game) endTurn() {
	if g.checkGameOver() {
		return
	}
	if g.shooter == SidePlayer {
		g.phase = PhaseResolution
	} else {
		g.phase = PhasePlanning
	}
}
