package shogi

// Move describes a single half-move in enough detail for incremental
// hashing and packed-entry storage. From is NoSquare for drops. Piece is
// the kind as it stood before moving; for drops it is the dropped kind.
type Move struct {
	From      Square
	To        Square
	Piece     PieceType
	Color     Color
	Promotion bool
	Capture   bool
}

// IsDrop reports whether the move places a piece from the mover's hand.
func (m Move) IsDrop() bool {
	return m.From == NoSquare
}

// Arriving returns the piece kind as it lands on the destination,
// promotion applied.
func (m Move) Arriving() PieceType {
	if m.Promotion {
		return m.Piece.Promote()
	}
	return m.Piece
}
