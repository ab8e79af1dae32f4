package model

import (
	"errors"
	"fmt"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// getPieceNotation returns the algebraic letter of the piece type; pawns have none.
func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

func pieceTypeFromLetter(r rune) (PieceType, bool) {
	switch r {
	case 'K', 'k':
		return King, true
	case 'Q', 'q':
		return Queen, true
	case 'R', 'r':
		return Rook, true
	case 'B', 'b':
		return Bishop, true
	case 'N', 'n':
		return Knight, true
	case 'P', 'p':
		return Pawn, true
	}
	return "", false
}

// Piece is a colored chess piece. The zero Piece marks an empty square.
type Piece struct {
	Type  PieceType   `json:"type"`
	Color PlayerColor `json:"color"`
}

func (p Piece) IsZero() bool {
	return p.Type == ""
}

// Letter returns the FEN letter: uppercase for white, lowercase for black.
func (p Piece) Letter() rune {
	letter := 'P'
	if n := p.Type.getPieceNotation(); n != "" {
		letter = rune(n[0])
	}
	if p.Color == PlayerColorBlack {
		letter += 'a' - 'A'
	}
	return letter
}

func pieceFromLetter(r rune) (Piece, bool) {
	kind, ok := pieceTypeFromLetter(r)
	if !ok {
		return Piece{}, false
	}
	color := PlayerColorWhite
	if r >= 'a' && r <= 'z' {
		color = PlayerColorBlack
	}
	return Piece{Type: kind, Color: color}, true
}

var ErrInvalidSquare = errors.New("invalid square")

// Square addresses the board by file (0 = 'a') and rank (0 = rank "1").
type Square struct {
	File int
	Rank int
}

func NewSquare(file, rank int) (Square, error) {
	sq := Square{File: file, Rank: rank}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("%w: file %d rank %d", ErrInvalidSquare, file, rank)
	}
	return sq, nil
}

func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Square{File: int(s[0] - 'a'), Rank: int(s[1] - '1')}, nil
}

// Valid reports whether the square lies on the 8x8 board.
func (s Square) Valid() bool {
	return boundaryCheck(s)
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", s.File+'a', s.Rank+1)
}

func (s Square) getFileNotation() string {
	return fmt.Sprintf("%c", s.File+'a')
}

func (s Square) getRankNotation() string {
	return fmt.Sprintf("%d", s.Rank+1)
}

func (s Square) offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

func (s Square) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: file %d rank %d", ErrInvalidSquare, s.File, s.Rank)
	}
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}

func boundaryCheck(s Square) bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

// rowToRank converts a FEN placement row (row 0 lists rank 8) to a rank index.
// It is its own inverse.
func rowToRank(row int) int {
	return 7 - row
}
