package model

// WSMove is the payload of a move proposal.
type WSMove struct {
	Move string `json:"move"`
}

// Ply is one accepted move in a game's history.
type Ply struct {
	Piece         Piece     `json:"piece"`
	From          Square    `json:"from"`
	To            Square    `json:"to"`
	CapturedPiece *Piece    `json:"capturedPiece"`
	Promotion     PieceType `json:"promotion,omitempty"`
	Notation      string    `json:"notation"`
	EnPassant     *Square   `json:"enPassant"`
	FEN           string    `json:"fen"`
}

func makePly(before Position, res ResolvedMove, after Position) Ply {
	return Ply{
		Piece:         res.Piece,
		From:          res.From,
		To:            res.To,
		CapturedPiece: res.Captured,
		Promotion:     res.Promotion,
		Notation:      FormatMove(before, res),
		EnPassant:     after.EnPassant,
		FEN:           Encode(after),
	}
}

type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}
