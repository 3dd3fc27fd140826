// Package entity provides the player and the shape of a game.
package entity

// RoundCount is the number of rounds in one game.
const RoundCount = 5

// NoGuess marks a round the player let time out on.
const NoGuess = ""

// Kind is the type of a round.
type Kind int

const (
	KindLetters Kind = iota
	KindNumbers
	KindConundrum
)

// String returns the round kind name.
func (k Kind) String() string {
	switch k {
	case KindLetters:
		return "Letters"
	case KindNumbers:
		return "Numbers"
	case KindConundrum:
		return "Conundrum"
	default:
		return "Unknown"
	}
}

// KindOf returns the kind of a 1-indexed round: three letters rounds, one
// numbers round and a conundrum.
func KindOf(round int) Kind {
	switch {
	case round >= 1 && round <= 3:
		return KindLetters
	case round == 4:
		return KindNumbers
	case round == 5:
		return KindConundrum
	default:
		return -1
	}
}

// Player is the person at the keyboard for one game.
type Player struct {
	Name          string
	Score         int // Only ever increases during a game
	HighScore     int // Best completed game score
	TimeRemaining int // Seconds left when the last guess was made

	Letters []rune // Current letters round draw
	Numbers []int  // Current numbers round draw, big first
	Target  int    // Current numbers round target

	Guesses [RoundCount]string // Indexed by round-1
}

// NewPlayer creates a player with empty per-game state.
func NewPlayer(name string, highScore int) *Player {
	return &Player{
		Name:      name,
		HighScore: highScore,
		Letters:   make([]rune, 0, 9),
		Numbers:   make([]int, 0, 6),
	}
}

// CarryOver returns a fresh player for a new game, keeping the name and the
// high score (lifted to this game's score if it was beaten).
func (p *Player) CarryOver() *Player {
	high := p.HighScore
	if p.Score > high {
		high = p.Score
	}
	return NewPlayer(p.Name, high)
}

// Record stores a guess for a 1-indexed round. Out-of-range rounds are
// ignored.
func (p *Player) Record(round int, guess string) {
	if round < 1 || round > RoundCount {
		return
	}
	p.Guesses[round-1] = guess
}

// Guess returns the stored guess for a 1-indexed round.
func (p *Player) Guess(round int) string {
	if round < 1 || round > RoundCount {
		return NoGuess
	}
	return p.Guesses[round-1]
}
