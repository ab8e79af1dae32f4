package model

// ClientPlayer is a move proposer seated at a game, human or automated.
type ClientPlayer struct {
	ID    string      `json:"name"`
	Color PlayerColor `json:"color"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

// fenLetter returns the side-to-move field used in FEN.
func (c PlayerColor) fenLetter() string {
	if c == PlayerColorBlack {
		return "b"
	}
	return "w"
}

// pawnDirection is the rank step of a pawn advance.
func (c PlayerColor) pawnDirection() int {
	if c == PlayerColorBlack {
		return -1
	}
	return 1
}

func (c PlayerColor) pawnHomeRank() int {
	if c == PlayerColorBlack {
		return 6
	}
	return 1
}

func (c PlayerColor) lastRank() int {
	if c == PlayerColorBlack {
		return 0
	}
	return 7
}
