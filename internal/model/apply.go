package model

// Apply checks m against pos and returns the position after it is played. The en
// passant target of the result is always re-derived from the move, never carried over.
func Apply(pos Position, m Move) (Position, ResolvedMove, error) {
	res, err := CheckMove(pos, m)
	if err != nil {
		return Position{}, ResolvedMove{}, err
	}

	next := pos
	mover := pos.ToMove
	piece := res.Piece

	if res.EnPassant {
		next.clear(Square{File: res.To.File, Rank: res.From.Rank})
	}
	next.clear(res.From)
	if piece.Type == Pawn && res.To.Rank == mover.lastRank() {
		promotion := res.Promotion
		if promotion == "" {
			promotion = Queen
		}
		res.Promotion = promotion
		piece = Piece{Type: promotion, Color: mover}
	} else {
		res.Promotion = ""
	}
	next.setPiece(res.To, piece)

	next.Castling = updateCastling(next.Castling, res)

	if res.Piece.Type == Pawn || res.Captured != nil {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}
	if mover == PlayerColorBlack {
		next.FullmoveNumber++
	}
	next.ToMove = mover.Opponent()
	next.EnPassant = DeriveEnPassant(next, mover, res.Piece.Type, res.From, res.To)

	return next, res, nil
}

var (
	whiteKingsideRook  = Square{File: 7, Rank: 0}
	whiteQueensideRook = Square{File: 0, Rank: 0}
	blackKingsideRook  = Square{File: 7, Rank: 7}
	blackQueensideRook = Square{File: 0, Rank: 7}
)

// updateCastling drops rights lost by a king move, a rook leaving its corner, or a
// capture on a rook corner.
func updateCastling(rights CastlingRights, res ResolvedMove) CastlingRights {
	if res.Piece.Type == King {
		switch res.Piece.Color {
		case PlayerColorWhite:
			rights.WhiteKingside, rights.WhiteQueenside = false, false
		case PlayerColorBlack:
			rights.BlackKingside, rights.BlackQueenside = false, false
		}
	}
	for _, sq := range []Square{res.From, res.To} {
		switch sq {
		case whiteKingsideRook:
			rights.WhiteKingside = false
		case whiteQueensideRook:
			rights.WhiteQueenside = false
		case blackKingsideRook:
			rights.BlackKingside = false
		case blackQueensideRook:
			rights.BlackQueenside = false
		}
	}
	return rights
}
