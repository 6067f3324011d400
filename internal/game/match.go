package game

type MatchResult struct {
	Winner  Side
	Turns   int
	Stalled bool // a shot hit the simulate ceiling without resolving
	Over    bool
}

// PlayMatch lets two opponents trade shots headlessly until the round ends,
// a shot stalls, or maxTurns shots have been fired.
func PlayMatch(g *Game, player, ai Opponent, maxTurns int) MatchResult {
	opponents := [2]Opponent{player, ai}
	res := MatchResult{Winner: SideNone}
	for res.Turns < maxTurns {
		side := g.DueSide()
		if side == SideNone {
			break
		}
		obs := g.Observe(side, ObservationStep)
		if _, err := g.Apply(side, opponents[side].Decide(obs)); err != nil {
			break
		}
		res.Turns++
		if _, ok := g.SimulateUntilResolved(g.SimulateCeiling()); !ok {
			res.Stalled = true
			break
		}
	}
	res.Over = g.Phase() == PhaseGameOver
	res.Winner = g.Winner()
	return res
}
