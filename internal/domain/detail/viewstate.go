package detail

import "github.com/quietscores/scores/internal/domain/game"

// View states of the game-detail screen. A game only moves forward:
// preview -> live -> final.
const (
	ViewPreview = "preview"
	ViewLive    = "live"
	ViewFinal   = "final"
)

// Detail tabs. Which tabs are valid depends on the view state.
const (
	TabPreview    = "preview"
	TabGamecast   = "gamecast"
	TabBoxscore   = "boxscore"
	TabPlayByPlay = "play-by-play"
)

// ViewState maps a canonical game status to the detail view state.
func ViewState(status string) string {
	switch status {
	case game.StatusLive, game.StatusHalftime:
		return ViewLive
	case game.StatusFinal:
		return ViewFinal
	default:
		return ViewPreview
	}
}

// ResolveTab returns the tab to show after a state transition. Keeping
// the previous selection across a status change can leave the screen on
// a tab that no longer applies, so invalid selections reset to the
// state's default.
func ResolveTab(state, activeTab string) string {
	switch state {
	case ViewPreview:
		return TabPreview
	case ViewFinal:
		switch activeTab {
		case TabPlayByPlay, TabGamecast, TabPreview, "":
			return TabBoxscore
		}
		return activeTab
	case ViewLive:
		if activeTab == TabPreview || activeTab == "" {
			return TabGamecast
		}
		return activeTab
	default:
		return TabGamecast
	}
}
