package rules

import "shufflechess-backend/internal/model"

// legalUpdates enumerates every fully-legal move of the active player's piece
// on pos. Each pseudo-legal command from the movement engine is extended with
// an end-turn and a record step, applied speculatively against the original
// snapshot, and kept only when it both applies cleanly and leaves the mover's
// king safe. An empty or opponent-held square yields an empty result.
func legalUpdates(g model.Game, pos model.Position, movement Movement, check Check) []model.Update {
	piece, ok := g.Board.PieceAt(pos)
	if !ok || piece.Color != g.Active.Color {
		return nil
	}

	var updates []model.Update
	for _, candidate := range movement.GetCommands(g, pos, piece) {
		update := &model.Update{}
		chain := candidate.Then(model.EndTurn).Then(model.Record(update))
		next, ok := chain.Apply(g)
		if !ok {
			continue
		}
		update.Cmd = chain
		update.Game = next
		// Turns already swapped, so the mover is the passive player here.
		if check.Check(next, next.Passive) {
			continue
		}
		updates = append(updates, *update)
	}
	return updates
}
