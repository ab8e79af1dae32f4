package model

// DeriveEnPassant computes the en passant target left by a move, given the position
// after the move was applied. A target exists only when a pawn advanced two ranks
// and an opposing pawn stands beside its landing square, ready to capture.
func DeriveEnPassant(after Position, mover PlayerColor, moved PieceType, from, to Square) *Square {
	if moved != Pawn {
		return nil
	}
	if abs(to.Rank-from.Rank) != 2 || from.File != to.File {
		return nil
	}
	if !hasAdjacentPawn(&after, to, mover.Opponent()) {
		return nil
	}
	target := Square{File: to.File, Rank: (from.Rank + to.Rank) / 2}
	return &target
}

// SanitizeEnPassant returns pos with its en passant target cleared unless the target
// is consistent with the side to move and capturable. Decode never calls this: a
// decoded position is trusted as authored.
func SanitizeEnPassant(pos Position) Position {
	if pos.EnPassant == nil {
		return pos
	}
	target := *pos.EnPassant
	mover := pos.ToMove.Opponent()
	dir := mover.pawnDirection()

	// the passed pawn lands one rank beyond the target, two ranks past its home
	landed := target.offset(0, dir)
	if target.Rank != mover.pawnHomeRank()+dir || !boundaryCheck(landed) {
		pos.EnPassant = nil
		return pos
	}
	if p, ok := pos.PieceAt(landed); !ok || p != (Piece{Type: Pawn, Color: mover}) {
		pos.EnPassant = nil
		return pos
	}
	if !hasAdjacentPawn(&pos, landed, pos.ToMove) {
		pos.EnPassant = nil
	}
	return pos
}

func hasAdjacentPawn(pos *Position, sq Square, color PlayerColor) bool {
	for _, df := range []int{-1, 1} {
		if p, ok := pos.PieceAt(sq.offset(df, 0)); ok && p == (Piece{Type: Pawn, Color: color}) {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
