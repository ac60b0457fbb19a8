// Package zobrist generates 64-bit fingerprints for shogi positions.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// Keys combine by XOR, which is its own inverse, so updating a hash after
// a move only toggles the keys the move touched.
package zobrist

import (
	"lukechampine.com/frand"

	"github.com/fgantt/sente/repetition"
	"github.com/fgantt/sente/shogi"
)

const bignum = 1<<63 - 2

// HandKeyCap caps the in-hand count used for key indexing. Counts above
// the cap reuse the cap key, aliasing e.g. 8 and 9 pawns in hand to the
// same hash contribution. Longstanding approximation; do not "fix"
// without measuring.
const HandKeyCap = 7

// keySeed fixes the key table across process runs so that hashes are
// stable for persistence-free collaborators like the opening book.
var keySeed = [32]byte{
	0x73, 0x65, 0x6e, 0x74, 0x65, 0x2d, 0x7a, 0x6f,
	0x62, 0x72, 0x69, 0x73, 0x74, 0x2d, 0x6b, 0x65,
	0x79, 0x73, 0x2d, 0x76, 0x31, 0x00, 0x9e, 0x37,
	0x79, 0xb9, 0x7f, 0x4a, 0x7c, 0x15, 0x6b, 0xf3,
}

// Zobrist holds the precomputed random key tables. Initialize must be
// called before hashing.
type Zobrist struct {
	whiteToMove uint64

	pieceTable [shogi.NumSquares][2 * shogi.NumPieceTypes]uint64
	handTable  [2][len(shogi.HandPieceTypes)][HandKeyCap + 1]uint64
	repetition [repetition.NumStates]uint64
}

// Initialize fills the key tables deterministically. Hand-count index 0
// stays zero so that a zero count contributes nothing; that keeps the
// full-hash loop and the incremental old/new toggles in agreement.
func (z *Zobrist) Initialize() {
	rng := frand.NewCustom(keySeed[:], 1024, 12)
	for sq := 0; sq < shogi.NumSquares; sq++ {
		for j := range z.pieceTable[sq] {
			z.pieceTable[sq][j] = rng.Uint64n(bignum) + 1
		}
	}
	for c := 0; c < 2; c++ {
		for pt := range z.handTable[c] {
			for ct := 1; ct <= HandKeyCap; ct++ {
				z.handTable[c][pt][ct] = rng.Uint64n(bignum) + 1
			}
		}
	}
	for i := range z.repetition {
		z.repetition[i] = rng.Uint64n(bignum) + 1
	}
	z.whiteToMove = rng.Uint64n(bignum) + 1
}

func pieceIndex(pt shogi.PieceType, c shogi.Color) int {
	idx := int(pt) - 1
	if c == shogi.White {
		idx += shogi.NumPieceTypes
	}
	return idx
}

// handIndex maps a droppable kind to its handTable row.
func handIndex(pt shogi.PieceType) int {
	return int(pt.Demote()) - 1
}

func capCount(n int) int {
	if n > HandKeyCap {
		return HandKeyCap
	}
	return n
}

// Hash computes the full fingerprint of a position from scratch.
func (z *Zobrist) Hash(pos *shogi.Position, rep repetition.State) uint64 {
	key := uint64(0)
	for sq, pc := range pos.Board {
		if pc.Type == shogi.NoPieceType {
			continue
		}
		key ^= z.pieceTable[sq][pieceIndex(pc.Type, pc.Color)]
	}
	for c := shogi.Black; c <= shogi.White; c++ {
		for _, pt := range shogi.HandPieceTypes {
			ct := pos.Hands[c].Count(pt)
			key ^= z.handTable[c][handIndex(pt)][capCount(ct)]
		}
	}
	if pos.SideToMove == shogi.White {
		key ^= z.whiteToMove
	}
	key ^= z.repetition[rep]
	return key
}

// AddMove advances key by one half-move without rescanning the board.
// pos is the position before the move; lastRep and rep are the repetition
// classes before and after. The result equals Hash recomputed on the
// applied position.
func (z *Zobrist) AddMove(key uint64, m shogi.Move, pos *shogi.Position,
	lastRep, rep repetition.State) uint64 {

	if m.IsDrop() {
		// The dropped piece appears on the board and leaves the hand.
		key ^= z.pieceTable[m.To][pieceIndex(m.Piece, m.Color)]
		ct := pos.Hands[m.Color].Count(m.Piece)
		key ^= z.handTable[m.Color][handIndex(m.Piece)][capCount(ct)]
		key ^= z.handTable[m.Color][handIndex(m.Piece)][capCount(ct-1)]
	} else {
		key ^= z.pieceTable[m.From][pieceIndex(m.Piece, m.Color)]
		key ^= z.pieceTable[m.To][pieceIndex(m.Arriving(), m.Color)]
		if m.Capture {
			captured := pos.Board[m.To]
			key ^= z.pieceTable[m.To][pieceIndex(captured.Type, captured.Color)]
			// The capture grows our reserve of the demoted kind.
			ct := pos.Hands[m.Color].Count(captured.Type)
			key ^= z.handTable[m.Color][handIndex(captured.Type)][capCount(ct)]
			key ^= z.handTable[m.Color][handIndex(captured.Type)][capCount(ct+1)]
		}
	}
	if lastRep != rep {
		key ^= z.repetition[lastRep]
		key ^= z.repetition[rep]
	}
	key ^= z.whiteToMove
	return key
}

// FoldRepetition swaps the repetition-state contribution of key from one
// class to another, leaving every other term untouched. Drivers use it to
// reclassify a hash once the tracker has counted the new position.
func (z *Zobrist) FoldRepetition(key uint64, from, to repetition.State) uint64 {
	if from == to {
		return key
	}
	return key ^ z.repetition[from] ^ z.repetition[to]
}
