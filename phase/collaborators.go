package phase

import "github.com/lixenwraith/vi-stacker/stack"

// Scoreboard displays the current slab index after each spawn
type Scoreboard interface {
	ShowScore(score int)
}

// Overlay shows and hides the game-over screen
type Overlay interface {
	ShowGameOver(score int)
	HideGameOver()
}

// Sounder is notified of every commit outcome; it never affects game state
type Sounder interface {
	PlayOutcome(outcome stack.Outcome, index int)
}
