package model

import "errors"

// IllegalReason explains why a move was rejected. It implements error so callers
// can match it with errors.Is.
type IllegalReason int

const (
	OffBoard IllegalReason = iota + 1
	NoSuchPiece
	Unreachable
	OccupiedByOwnPiece
	Ambiguous
)

func (r IllegalReason) String() string {
	switch r {
	case OffBoard:
		return "off_board"
	case NoSuchPiece:
		return "no_such_piece"
	case Unreachable:
		return "unreachable"
	case OccupiedByOwnPiece:
		return "occupied_by_own_piece"
	case Ambiguous:
		return "ambiguous"
	}
	return "unknown"
}

func (r IllegalReason) Error() string {
	return "illegal move: " + r.String()
}

var ErrCastlingUnsupported = errors.New("castling is not checked by the referee")

type Castle int

const (
	NoCastle Castle = iota
	CastleKingside
	CastleQueenside
)

// Hint restricts the origin of a move, as file and rank letters do in algebraic notation.
type Hint struct {
	File    int
	Rank    int
	HasFile bool
	HasRank bool
}

func (h Hint) matches(sq Square) bool {
	if h.HasFile && h.File != sq.File {
		return false
	}
	if h.HasRank && h.Rank != sq.Rank {
		return false
	}
	return true
}

// Move is a proposed move awaiting validation.
type Move struct {
	Piece     PieceType
	To        Square
	From      Hint
	Promotion PieceType
	Castle    Castle
}

// ResolvedMove is a validated move with its unique origin.
type ResolvedMove struct {
	Piece     Piece
	From      Square
	To        Square
	Captured  *Piece
	EnPassant bool
	Promotion PieceType
}

// CheckMove resolves m against the side to move in pos. It performs no check-safety
// validation: a move that leaves the mover's king attacked is accepted.
func CheckMove(pos Position, m Move) (ResolvedMove, error) {
	if m.Castle != NoCastle {
		return ResolvedMove{}, ErrCastlingUnsupported
	}
	if !boundaryCheck(m.To) {
		return ResolvedMove{}, OffBoard
	}

	candidates := findPieces(&pos, Piece{Type: m.Piece, Color: pos.ToMove}, m.From)
	if len(candidates) == 0 {
		return ResolvedMove{}, NoSuchPiece
	}

	target, occupied := pos.PieceAt(m.To)
	if m.Piece != Pawn && occupied && target.Color == pos.ToMove {
		return ResolvedMove{}, OccupiedByOwnPiece
	}

	origins := reachingFrom(&pos, candidates, Piece{Type: m.Piece, Color: pos.ToMove}, m.To)
	switch len(origins) {
	case 0:
		return ResolvedMove{}, Unreachable
	case 1:
	default:
		return ResolvedMove{}, Ambiguous
	}

	res := ResolvedMove{
		Piece:     Piece{Type: m.Piece, Color: pos.ToMove},
		From:      origins[0],
		To:        m.To,
		Promotion: m.Promotion,
	}
	if occupied {
		captured := target
		res.Captured = &captured
	} else if m.Piece == Pawn && origins[0].File != m.To.File {
		// a stated target only captures when the passed pawn is actually there
		passed := Square{File: m.To.File, Rank: origins[0].Rank}
		if p, ok := pos.PieceAt(passed); ok && p == (Piece{Type: Pawn, Color: pos.ToMove.Opponent()}) {
			res.EnPassant = true
			res.Captured = &p
		}
	}
	return res, nil
}

// findPieces lists the squares holding piece that satisfy the hint.
func findPieces(pos *Position, piece Piece, hint Hint) []Square {
	var squares []Square
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := Square{File: file, Rank: rank}
			if pos.Board[rank][file] == piece && hint.matches(sq) {
				squares = append(squares, sq)
			}
		}
	}
	return squares
}

func reachingFrom(pos *Position, origins []Square, piece Piece, to Square) []Square {
	var reaching []Square
	for _, origin := range origins {
		if ReachableSquares(pos, origin, piece).Has(to) {
			reaching = append(reaching, origin)
		}
	}
	return reaching
}
