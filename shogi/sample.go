package shogi

import "lukechampine.com/frand"

// SampleMove picks a random structurally consistent move for the side to
// move: the origin holds the mover's piece, the destination is not a
// friendly piece or a king, and drops come from a nonempty hand onto an
// empty square. It makes no attempt at shogi legality beyond that; it
// exists to drive randomized hashing tests and cache benchmarks, where
// structural consistency is all the hasher requires.
func SampleMove(pos *Position, rng *frand.RNG) (Move, bool) {
	side := pos.SideToMove

	// Try a drop roughly a quarter of the time when the hand allows it.
	if !pos.Hands[side].Empty() && rng.Intn(4) == 0 {
		if m, ok := sampleDrop(pos, side, rng); ok {
			return m, true
		}
	}
	return sampleBoardMove(pos, side, rng)
}

func sampleDrop(pos *Position, side Color, rng *frand.RNG) (Move, bool) {
	var kinds []PieceType
	for _, pt := range HandPieceTypes {
		if pos.Hands[side].Count(pt) > 0 {
			kinds = append(kinds, pt)
		}
	}
	var empty []Square
	for sq := Square(0); sq < NumSquares; sq++ {
		if pos.Board[sq].Type == NoPieceType {
			empty = append(empty, sq)
		}
	}
	if len(kinds) == 0 || len(empty) == 0 {
		return Move{}, false
	}
	return Move{
		From:  NoSquare,
		To:    empty[rng.Intn(len(empty))],
		Piece: kinds[rng.Intn(len(kinds))],
		Color: side,
	}, true
}

func sampleBoardMove(pos *Position, side Color, rng *frand.RNG) (Move, bool) {
	var origins []Square
	for sq := Square(0); sq < NumSquares; sq++ {
		if pc := pos.Board[sq]; pc.Type != NoPieceType && pc.Color == side {
			origins = append(origins, sq)
		}
	}
	if len(origins) == 0 {
		return Move{}, false
	}
	for attempts := 0; attempts < 64; attempts++ {
		from := origins[rng.Intn(len(origins))]
		to := Square(rng.Intn(NumSquares))
		if to == from {
			continue
		}
		target := pos.Board[to]
		if target.Type == King {
			// Keep kings on the board; a king never enters a hand.
			continue
		}
		if target.Type != NoPieceType && target.Color == side {
			continue
		}
		mover := pos.Board[from]
		m := Move{
			From:    from,
			To:      to,
			Piece:   mover.Type,
			Color:   side,
			Capture: target.Type != NoPieceType,
		}
		if mover.Type.CanPromote() && rng.Intn(3) == 0 {
			m.Promotion = true
		}
		return m, true
	}
	return Move{}, false
}
