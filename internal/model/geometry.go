package model

import "math/bits"

// SquareSet is a set of board squares, one bit per square (a1 = bit 0, h8 = bit 63).
type SquareSet uint64

func squareBit(sq Square) SquareSet {
	return SquareSet(1) << uint(sq.Rank*8+sq.File)
}

func (s SquareSet) Has(sq Square) bool {
	return boundaryCheck(sq) && s&squareBit(sq) != 0
}

func (s *SquareSet) add(sq Square) {
	*s |= squareBit(sq)
}

func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Squares lists the members from a1 to h8.
func (s SquareSet) Squares() []Square {
	squares := make([]Square, 0, s.Len())
	for b := uint64(s); b != 0; b &= b - 1 {
		i := bits.TrailingZeros64(b)
		squares = append(squares, Square{File: i % 8, Rank: i / 8})
	}
	return squares
}

var (
	rookDirs   = []Square{{File: 1, Rank: 0}, {File: -1, Rank: 0}, {File: 0, Rank: 1}, {File: 0, Rank: -1}}
	bishopDirs = []Square{{File: 1, Rank: 1}, {File: 1, Rank: -1}, {File: -1, Rank: 1}, {File: -1, Rank: -1}}
	queenDirs  = append(append([]Square{}, rookDirs...), bishopDirs...)
	knightDirs = []Square{{File: 2, Rank: 1}, {File: 2, Rank: -1}, {File: -2, Rank: 1}, {File: -2, Rank: -1}, {File: 1, Rank: 2}, {File: 1, Rank: -2}, {File: -1, Rank: 2}, {File: -1, Rank: -2}}
	kingDirs   = queenDirs
)

// ReachableSquares returns the squares piece could move to from origin, respecting
// blockers but not whose turn it is. Knight and king targets are filtered by the
// board edge only; a friendly piece on the target is the caller's concern.
func ReachableSquares(pos *Position, origin Square, piece Piece) SquareSet {
	if !boundaryCheck(origin) {
		return 0
	}
	switch piece.Type {
	case Pawn:
		return pawnSquares(pos, origin, piece.Color)
	case Knight:
		return stepSquares(origin, knightDirs)
	case Bishop:
		return slideSquares(pos, origin, piece.Color, bishopDirs)
	case Rook:
		return slideSquares(pos, origin, piece.Color, rookDirs)
	case Queen:
		return slideSquares(pos, origin, piece.Color, queenDirs)
	case King:
		return stepSquares(origin, kingDirs)
	}
	return 0
}

func pawnSquares(pos *Position, origin Square, color PlayerColor) SquareSet {
	var set SquareSet
	dir := color.pawnDirection()

	one := origin.offset(0, dir)
	if boundaryCheck(one) {
		if _, occupied := pos.PieceAt(one); !occupied {
			set.add(one)
			two := origin.offset(0, 2*dir)
			if origin.Rank == color.pawnHomeRank() {
				if _, occupied := pos.PieceAt(two); !occupied {
					set.add(two)
				}
			}
		}
	}

	for _, df := range []int{-1, 1} {
		target := origin.offset(df, dir)
		if !boundaryCheck(target) {
			continue
		}
		if victim, ok := pos.PieceAt(target); ok && victim.Color != color {
			set.add(target)
		} else if pos.EnPassant != nil && *pos.EnPassant == target {
			set.add(target)
		}
	}
	return set
}

func stepSquares(origin Square, dirs []Square) SquareSet {
	var set SquareSet
	for _, dir := range dirs {
		target := origin.offset(dir.File, dir.Rank)
		if boundaryCheck(target) {
			set.add(target)
		}
	}
	return set
}

func slideSquares(pos *Position, origin Square, color PlayerColor, dirs []Square) SquareSet {
	var set SquareSet
	for _, dir := range dirs {
		target := origin.offset(dir.File, dir.Rank)
		for boundaryCheck(target) {
			if blocker, ok := pos.PieceAt(target); ok {
				if blocker.Color != color {
					set.add(target)
				}
				break
			}
			set.add(target)
			target = target.offset(dir.File, dir.Rank)
		}
	}
	return set
}
