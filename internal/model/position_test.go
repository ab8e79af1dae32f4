package model

import (
	"errors"
	"testing"
)

func mustDecode(t *testing.T, fen string) Position {
	t.Helper()
	pos, err := Decode(fen)
	if err != nil {
		t.Fatalf("Decode(%q): %v", fen, err)
	}
	return pos
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	var tests = []string{
		StartingFEN,
		"rnbqkbnr/pppp1ppp/8/4p3/8/P7/1PPPPPPP/RNBQKBNR w KQkq - 0 2",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		"rnbqkbnr/pppp1ppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/8/8/8/8/8/8/4K3 b Kq - 99 120",
	}
	for _, fen := range tests {
		pos := mustDecode(t, fen)
		if got := Encode(pos); got != fen {
			t.Errorf("round trip %q: got %q", fen, got)
		}
	}
}

func TestEncodeCanonicalizesEmptyRuns(t *testing.T) {
	pos := mustDecode(t, "44/8/8/8/8/8/8/4K2k  w   -  - 0 1")
	want := "8/8/8/8/8/8/8/4K2k w - - 0 1"
	if got := Encode(pos); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeSquareMapping(t *testing.T) {
	pos := NewStartingPosition()

	var tests = []struct {
		square string
		piece  Piece
	}{
		{"e1", Piece{Type: King, Color: PlayerColorWhite}},
		{"d1", Piece{Type: Queen, Color: PlayerColorWhite}},
		{"a8", Piece{Type: Rook, Color: PlayerColorBlack}},
		{"g8", Piece{Type: Knight, Color: PlayerColorBlack}},
		{"h2", Piece{Type: Pawn, Color: PlayerColorWhite}},
		{"c7", Piece{Type: Pawn, Color: PlayerColorBlack}},
	}
	for _, test := range tests {
		sq, err := ParseSquare(test.square)
		if err != nil {
			t.Fatal(err)
		}
		got, ok := pos.PieceAt(sq)
		if !ok || got != test.piece {
			t.Errorf("%s: got %v %v, want %v", test.square, got, ok, test.piece)
		}
	}
	if _, ok := pos.PieceAt(Square{File: 4, Rank: 3}); ok {
		t.Error("e4 should be empty")
	}
	if pos.ToMove != PlayerColorWhite || pos.EnPassant != nil || pos.HalfmoveClock != 0 || pos.FullmoveNumber != 1 {
		t.Errorf("unexpected state fields: %+v", pos)
	}
	want := CastlingRights{WhiteKingside: true, WhiteQueenside: true, BlackKingside: true, BlackQueenside: true}
	if pos.Castling != want {
		t.Errorf("castling: got %+v", pos.Castling)
	}
}

func TestDecodeEnPassantField(t *testing.T) {
	pos := mustDecode(t, "rnbqkbnr/pppp1ppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3")
	if pos.EnPassant == nil || *pos.EnPassant != (Square{File: 4, Rank: 2}) {
		t.Fatalf("en passant: got %v", pos.EnPassant)
	}
}

func TestDecodeMalformed(t *testing.T) {
	var tests = []struct {
		name string
		fen  string
	}{
		{"five fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0"},
		{"seven fields", StartingFEN + " extra"},
		{"empty", ""},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"nine ranks", "rnbqkbnr/pppppppp/8/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"rank too long", "rnbqkbnrp/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"rank too short", "rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"digit overflow", "rnbqkbnr/pppppppp/72/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad letter", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"digit nine", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"digit zero", "rnbqkbnr/pppppppp/08/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"side to move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KX - 0 1"},
		{"en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1"},
		{"halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1"},
		{"fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"},
		{"castling repeated", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KK - 0 1"},
		{"castling out of order", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w kK - 0 1"},
		{"castling dash and letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w -K - 0 1"},
		{"halfmove sign", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - +3 1"},
		{"halfmove leading zero", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 00 1"},
		{"fullmove leading zero", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 01"},
	}
	for _, test := range tests {
		pos, err := Decode(test.fen)
		if !errors.Is(err, ErrMalformedState) {
			t.Errorf("%s: got err %v, want ErrMalformedState", test.name, err)
		}
		if pos != (Position{}) {
			t.Errorf("%s: partial position returned", test.name)
		}
	}
}

func TestParseSquare(t *testing.T) {
	sq, err := ParseSquare("e4")
	if err != nil || sq != (Square{File: 4, Rank: 3}) || sq.String() != "e4" {
		t.Fatalf("unexpected: %v %v", sq, err)
	}
	for _, bad := range []string{"", "e", "i4", "e0", "e9", "E4", "e44"} {
		if _, err := ParseSquare(bad); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q): got %v", bad, err)
		}
	}
	if _, err := NewSquare(8, 0); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("NewSquare(8, 0): got %v", err)
	}
	if _, err := NewSquare(7, 7); err != nil {
		t.Errorf("NewSquare(7, 7): %v", err)
	}
}
