package book

import (
	"testing"

	"github.com/matryer/is"

	"github.com/fgantt/sente/shogi"
)

func TestMemoryBook(t *testing.T) {
	is := is.New(t)
	b := NewMemoryBook()
	is.Equal(b.Len(), 0)

	mv := shogi.Move{
		From: shogi.SquareOf(2, 6), To: shogi.SquareOf(2, 5),
		Piece: shogi.Pawn, Color: shogi.Black,
	}
	b.Add(0xABC, mv, 25)
	b.Add(0xDEF, mv, -5)

	is.Equal(b.Len(), 2)
	entries := b.Entries()
	is.Equal(entries[0], Entry{Hash: 0xABC, Move: mv, Score: 25})
	is.Equal(entries[1].Score, int32(-5))
}
