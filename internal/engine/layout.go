package engine

import "github.com/Cam-Smith-Games/Card-Game/internal/game"

const (
	layoutMargin = 50
	// room under each entity for its name and health bars
	layoutLabel = 50
)

// placeTeams stacks each team bottom-up from its own edge of the arena,
// starting a new column when the current one is full. Team 0 fills from the
// left, team 1 from the right and faces left.
func placeTeams(arena game.Vec, teams [2][]*game.Entity) {
	for i, team := range teams {
		x := float64(layoutMargin)
		bottom := arena.Y - layoutMargin
		y := bottom
		colWidth := 0.0
		for _, e := range team {
			if y-e.Size.Y < layoutMargin && y != bottom {
				x += layoutMargin + colWidth
				y = bottom
				colWidth = 0
			}
			if e.Size.X > colWidth {
				colWidth = e.Size.X
			}
			e.Flipped = i > 0
			cx := x + e.Size.X/2
			if e.Flipped {
				cx = arena.X - cx
			}
			e.Pos = game.Vec{X: cx, Y: y - e.Size.Y/2}
			y -= e.Size.Y + layoutLabel + layoutMargin
		}
	}
}
