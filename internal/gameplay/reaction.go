package gameplay

// Reaction is the single notable event of a tick. Observers read it after
// NextFrame returns. When several events happen in one tick the one with the
// highest rank wins; among equal ranks the last one wins.
type Reaction int

const (
	ReactionNone Reaction = iota
	ReactionGameStarted
	ReactionReturnedToMenu
	ReactionPaused
	ReactionResumed
	ReactionGrazed
	ReactionBombUsed
	ReactionBossDamaged
	ReactionPatternStarted
	ReactionPatternSucceeded
	ReactionPatternFailed
	ReactionBossDefeated
	ReactionPlayerHit
	ReactionLifeLost
	ReactionGameOver
	ReactionGameCompleted
)

var reactionNames = [...]string{
	ReactionNone:             "none",
	ReactionGameStarted:      "game-started",
	ReactionReturnedToMenu:   "returned-to-menu",
	ReactionPaused:           "paused",
	ReactionResumed:          "resumed",
	ReactionGrazed:           "grazed",
	ReactionBombUsed:         "bomb-used",
	ReactionBossDamaged:      "boss-damaged",
	ReactionPatternStarted:   "pattern-started",
	ReactionPatternSucceeded: "pattern-succeeded",
	ReactionPatternFailed:    "pattern-failed",
	ReactionBossDefeated:     "boss-defeated",
	ReactionPlayerHit:        "player-hit",
	ReactionLifeLost:         "life-lost",
	ReactionGameOver:         "game-over",
	ReactionGameCompleted:    "game-completed",
}

// rank orders reactions within a tick. Routine events (grazes, boss hits)
// never hide a life, pattern or game event.
func (r Reaction) rank() int {
	switch r {
	case ReactionNone:
		return 0
	case ReactionGrazed, ReactionBossDamaged:
		return 1
	case ReactionPatternSucceeded, ReactionPatternFailed, ReactionBossDefeated,
		ReactionPlayerHit, ReactionLifeLost:
		return 3
	case ReactionGameOver, ReactionGameCompleted:
		return 4
	}
	return 2
}

func (r Reaction) String() string {
	if r < 0 || int(r) >= len(reactionNames) {
		return "unknown"
	}
	return reactionNames[r]
}

// Mode is the top-level game state.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModePaused
	ModeGameOver
	ModeCleared
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "game-over"
	case ModeCleared:
		return "cleared"
	}
	return "unknown"
}
