package agent

import "lighthouses/game"

// begin orients the sweep from the starting corner: passes run away from the
// corner's vertical edge and rows advance away from its horizontal edge.
func (s *Sweep) begin(corner game.Corner) {
	s.Corner = corner
	s.Heading = West
	if corner.Left() {
		s.Heading = East
	}
	s.Rise = South
	if corner.Bottom() {
		s.Rise = North
	}
	s.Stage = Sweeping
}

// visit marks p as covered, reversing the whole pattern once every cell of the
// board has been covered.
func (s *Sweep) visit(p game.Position, board game.Board) {
	s.Visited[p] = struct{}{}
	if len(s.Visited) < board.Cells() {
		return
	}
	s.Completions++
	s.Heading = s.Heading.Opposite()
	s.Rise = s.Rise.Opposite()
	s.Visited = map[game.Position]struct{}{p: {}}
	if s.Stage == Sweeping {
		s.Stage = Retracing
	} else {
		s.Stage = Sweeping
	}
}

// next returns the cell after p, updating heading and rise on row changes.
func (s *Sweep) next(p game.Position, board game.Board, nav navigation) game.Position {
	if dest := nav.step(p, s.Heading); board.Contains(dest) {
		return dest
	}

	// End of the pass: one vertical step, then run the other way.
	s.Heading = s.Heading.Opposite()
	dest := nav.step(p, s.Rise)
	if !board.Contains(dest) {
		s.Rise = s.Rise.Opposite()
		dest = nav.step(p, s.Rise)
	}
	if !board.Contains(dest) {
		// Single row, bounce back along it.
		dest = nav.step(p, s.Heading)
	}
	return board.Clamp(dest)
}
