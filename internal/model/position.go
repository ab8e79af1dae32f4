package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrMalformedState = errors.New("malformed state")

type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

// Position is a full board state. It is a value: copying a Position copies the board.
type Position struct {
	// Board is indexed [rank][file].
	Board          [8][8]Piece
	ToMove         PlayerColor
	Castling       CastlingRights
	EnPassant      *Square
	HalfmoveClock  int
	FullmoveNumber int
}

func NewStartingPosition() Position {
	pos, err := Decode(StartingFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// PieceAt returns the piece on sq, if any. Off-board squares are empty.
func (p *Position) PieceAt(sq Square) (Piece, bool) {
	if !boundaryCheck(sq) {
		return Piece{}, false
	}
	piece := p.Board[sq.Rank][sq.File]
	return piece, !piece.IsZero()
}

func (p *Position) setPiece(sq Square, piece Piece) {
	p.Board[sq.Rank][sq.File] = piece
}

func (p *Position) clear(sq Square) {
	p.Board[sq.Rank][sq.File] = Piece{}
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedState, fmt.Sprintf(format, args...))
}

// Decode parses a six-field FEN string. No partial Position is returned on error.
func Decode(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return Position{}, malformed("expected 6 fields, got %d", len(fields))
	}

	var pos Position
	if err := decodePlacement(&pos, fields[0]); err != nil {
		return Position{}, err
	}

	switch fields[1] {
	case "w":
		pos.ToMove = PlayerColorWhite
	case "b":
		pos.ToMove = PlayerColorBlack
	default:
		return Position{}, malformed("side to move %q", fields[1])
	}

	castling, err := decodeCastling(fields[2])
	if err != nil {
		return Position{}, err
	}
	pos.Castling = castling

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Position{}, malformed("en passant %q", fields[3])
		}
		pos.EnPassant = &sq
	}

	halfmove, err := parseCounter(fields[4])
	if err != nil {
		return Position{}, malformed("halfmove clock %q", fields[4])
	}
	pos.HalfmoveClock = halfmove

	fullmove, err := parseCounter(fields[5])
	if err != nil || fullmove < 1 {
		return Position{}, malformed("fullmove number %q", fields[5])
	}
	pos.FullmoveNumber = fullmove

	return pos, nil
}

func decodePlacement(pos *Position, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return malformed("expected 8 ranks, got %d", len(rows))
	}
	for row, text := range rows {
		rank := rowToRank(row)
		file := 0
		for _, ch := range text {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return malformed("rank %d overflows 8 files", rank+1)
				}
				continue
			}
			piece, ok := pieceFromLetter(ch)
			if !ok {
				return malformed("unexpected character %q in rank %d", ch, rank+1)
			}
			if file >= 8 {
				return malformed("rank %d overflows 8 files", rank+1)
			}
			pos.Board[rank][file] = piece
			file++
		}
		if file != 8 {
			return malformed("rank %d has %d files", rank+1, file)
		}
	}
	return nil
}

func decodeCastling(field string) (CastlingRights, error) {
	var rights CastlingRights
	if field == "-" {
		return rights, nil
	}
	for _, ch := range field {
		switch ch {
		case 'K':
			rights.WhiteKingside = true
		case 'Q':
			rights.WhiteQueenside = true
		case 'k':
			rights.BlackKingside = true
		case 'q':
			rights.BlackQueenside = true
		default:
			return CastlingRights{}, malformed("castling %q", field)
		}
	}
	// repeated or reordered letters would not survive Encode
	if rights.String() != field {
		return CastlingRights{}, malformed("castling %q", field)
	}
	return rights, nil
}

// parseCounter accepts plain decimal digits without sign or leading zeros.
func parseCounter(field string) (int, error) {
	if field == "" || field[0] == '+' || field[0] == '-' || (len(field) > 1 && field[0] == '0') {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(field)
}

// Encode renders the position as FEN. Runs of empty squares are written as a single count.
func Encode(p Position) string {
	var sb strings.Builder

	for row := 0; row < 8; row++ {
		rank := rowToRank(row)
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece.IsZero() {
				empty++
				continue
			}
			if empty != 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteRune(piece.Letter())
		}
		if empty != 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row != 7 {
			sb.WriteString("/")
		}
	}

	sb.WriteString(" ")
	sb.WriteString(p.ToMove.fenLetter())
	sb.WriteString(" ")
	sb.WriteString(p.Castling.String())
	sb.WriteString(" ")
	if p.EnPassant != nil {
		sb.WriteString(p.EnPassant.String())
	} else {
		sb.WriteString("-")
	}
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))
	return sb.String()
}

func (p Position) String() string {
	return Encode(p)
}

func (c CastlingRights) String() string {
	s := ""
	if c.WhiteKingside {
		s += "K"
	}
	if c.WhiteQueenside {
		s += "Q"
	}
	if c.BlackKingside {
		s += "k"
	}
	if c.BlackQueenside {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}
