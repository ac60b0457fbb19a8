package transposition

import (
	"testing"

	"github.com/matryer/is"

	"github.com/fgantt/sente/shogi"
)

func dropMove() shogi.Move {
	return shogi.Move{
		From: shogi.NoSquare, To: shogi.SquareOf(4, 4),
		Piece: shogi.Gold, Color: shogi.White,
	}
}

func normalMove() shogi.Move {
	return shogi.Move{
		From: shogi.SquareOf(2, 6), To: shogi.SquareOf(2, 5),
		Piece: shogi.Pawn, Color: shogi.Black,
	}
}

func promotingCapture() shogi.Move {
	return shogi.Move{
		From: shogi.SquareOf(1, 3), To: shogi.SquareOf(3, 1),
		Piece: shogi.Bishop, Color: shogi.Black,
		Promotion: true, Capture: true,
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	is := is.New(t)
	scores := []int32{ScoreMin, -1, 0, 1, ScoreMax}
	depths := []uint8{0, 1, 127, 255}
	bounds := []Bound{BoundExact, BoundLower, BoundUpper}
	moves := []struct {
		mv  shogi.Move
		has bool
	}{
		{shogi.Move{}, false},
		{dropMove(), true},
		{normalMove(), true},
		{promotingCapture(), true},
	}

	for _, score := range scores {
		for _, depth := range depths {
			for _, bound := range bounds {
				for _, m := range moves {
					r := Record{
						Score:   score,
						Depth:   depth,
						Bound:   bound,
						Move:    m.mv,
						HasMove: m.has,
					}
					word := pack(&r)
					is.True(packedValid(word))
					is.Equal(packedDepth(word), depth)
					got := unpack(word, 0, 0, SourceMainSearch)
					is.Equal(got.Score, score)
					is.Equal(got.Depth, depth)
					is.Equal(got.Bound, bound)
					is.Equal(got.HasMove, m.has)
					if m.has {
						is.Equal(got.Move, m.mv)
					}
				}
			}
		}
	}
}

func TestPackClampsScore(t *testing.T) {
	is := is.New(t)
	r := Record{Score: 2_000_000, Bound: BoundExact}
	is.Equal(unpack(pack(&r), 0, 0, SourceMainSearch).Score, int32(ScoreMax))
	r.Score = -2_000_000
	is.Equal(unpack(pack(&r), 0, 0, SourceMainSearch).Score, int32(ScoreMin))
}

func TestEmptySentinel(t *testing.T) {
	is := is.New(t)
	// The all-zero word is the empty slot and must never read as valid.
	is.True(!packedValid(0))
	is.Equal(packedDepth(0), uint8(0))
}

func TestDropOriginSentinel(t *testing.T) {
	is := is.New(t)
	r := Record{Bound: BoundLower, Move: dropMove(), HasMove: true}
	got := unpack(pack(&r), 0, 0, SourceMainSearch)
	is.Equal(got.Move.From, shogi.NoSquare)
	is.True(got.Move.IsDrop())

	// Every real origin square survives distinctly from the sentinel.
	for sq := shogi.Square(0); sq < shogi.NumSquares; sq++ {
		r := Record{
			Bound:   BoundExact,
			Move:    shogi.Move{From: sq, To: 0, Piece: shogi.King, Color: shogi.Black},
			HasMove: true,
		}
		got := unpack(pack(&r), 0, 0, SourceMainSearch)
		is.Equal(got.Move.From, sq)
	}
}

func TestUnpackCarriesSlotMetadata(t *testing.T) {
	is := is.New(t)
	r := Record{Score: 60, Depth: 4, Bound: BoundExact}
	got := unpack(pack(&r), 0xABCD, 9, SourceOpeningBook)
	is.Equal(got.Hash, uint64(0xABCD))
	is.Equal(got.Age, uint32(9))
	is.Equal(got.Source, SourceOpeningBook)
}
