package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedMove = errors.New("malformed move")

// ParseMove reads an algebraic move token such as "e4", "Nbd7", "exd5", "R1a3" or
// "e8=Q". Capture markers and check suffixes are accepted and ignored. Castling
// tokens parse but are not checked by CheckMove.
func ParseMove(token string) (Move, error) {
	s := strings.TrimRight(strings.TrimSpace(token), "+#!?")

	switch s {
	case "O-O", "0-0":
		return Move{Piece: King, Castle: CastleKingside}, nil
	case "O-O-O", "0-0-0":
		return Move{Piece: King, Castle: CastleQueenside}, nil
	}

	var m Move
	m.Piece = Pawn

	if i := strings.IndexByte(s, '='); i >= 0 {
		if i != len(s)-2 {
			return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, token)
		}
		promo, ok := pieceTypeFromLetter(rune(s[i+1]))
		if !ok || promo == Pawn || promo == King || s[i+1] < 'A' || s[i+1] > 'Z' {
			return Move{}, fmt.Errorf("%w: bad promotion in %q", ErrMalformedMove, token)
		}
		m.Promotion = promo
		s = s[:i]
	}

	if len(s) < 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, token)
	}
	if kind, ok := pieceTypeFromLetter(rune(s[0])); ok && s[0] >= 'A' && s[0] <= 'Z' {
		m.Piece = kind
		s = s[1:]
	}

	if len(s) < 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, token)
	}
	to, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return Move{}, fmt.Errorf("%w: destination in %q", ErrMalformedMove, token)
	}
	m.To = to

	hint := strings.TrimSuffix(s[:len(s)-2], "x")
	if len(hint) > 0 && hint[0] >= 'a' && hint[0] <= 'h' {
		m.From.File = int(hint[0] - 'a')
		m.From.HasFile = true
		hint = hint[1:]
	}
	if len(hint) > 0 && hint[0] >= '1' && hint[0] <= '8' {
		m.From.Rank = int(hint[0] - '1')
		m.From.HasRank = true
		hint = hint[1:]
	}
	if hint != "" {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, token)
	}
	if m.Promotion != "" && m.Piece != Pawn {
		return Move{}, fmt.Errorf("%w: only pawns promote in %q", ErrMalformedMove, token)
	}
	return m, nil
}

// FormatMove writes res in standard algebraic notation for the position it was
// resolved in, adding the least disambiguation that makes it unique.
func FormatMove(pos Position, res ResolvedMove) string {
	var sb strings.Builder
	sb.WriteString(res.Piece.Type.getPieceNotation())

	if res.Piece.Type == Pawn {
		if res.Captured != nil {
			sb.WriteString(res.From.getFileNotation())
		}
	} else {
		sb.WriteString(disambiguation(&pos, res))
	}
	if res.Captured != nil {
		sb.WriteString("x")
	}
	sb.WriteString(res.To.String())
	if res.Promotion != "" && res.To.Rank == res.Piece.Color.lastRank() {
		sb.WriteString("=" + res.Promotion.getPieceNotation())
	}
	return sb.String()
}

func disambiguation(pos *Position, res ResolvedMove) string {
	rivals := reachingFrom(pos, findPieces(pos, res.Piece, Hint{}), res.Piece, res.To)
	sameFile, sameRank, others := false, false, false
	for _, sq := range rivals {
		if sq == res.From {
			continue
		}
		others = true
		if sq.File == res.From.File {
			sameFile = true
		}
		if sq.Rank == res.From.Rank {
			sameRank = true
		}
	}
	switch {
	case !others:
		return ""
	case !sameFile:
		return res.From.getFileNotation()
	case !sameRank:
		return res.From.getRankNotation()
	}
	return res.From.String()
}
