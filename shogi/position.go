package shogi

// Position is a full board state: the 9x9 grid, both hands, and the side
// to move. It is a plain value type; Clone is a shallow copy since arrays
// copy by value.
type Position struct {
	Board      [NumSquares]Piece
	Hands      [2]Hand
	SideToMove Color
}

// ApplyMove mutates the position by one half-move. The move is assumed
// structurally consistent with the position (the origin holds the moving
// piece, a drop has a hand piece available). Shogi legality beyond that is
// the move generator's business, not ours.
func (p *Position) ApplyMove(m Move) {
	if m.IsDrop() {
		p.Hands[m.Color].Remove(m.Piece)
		p.Board[m.To] = Piece{Type: m.Piece, Color: m.Color}
	} else {
		p.Board[m.From] = Piece{}
		if captured := p.Board[m.To]; captured.Type != NoPieceType {
			p.Hands[m.Color].Add(captured.Type)
		}
		p.Board[m.To] = Piece{Type: m.Arriving(), Color: m.Color}
	}
	p.SideToMove = p.SideToMove.Opponent()
}

// Clone returns an independent copy.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

var backRank = [BoardFiles]PieceType{
	Lance, Knight, Silver, Gold, King, Gold, Silver, Knight, Lance,
}

// StartPosition returns the standard shogi starting setup with black to
// move.
func StartPosition() *Position {
	p := &Position{}
	for f := 0; f < BoardFiles; f++ {
		p.Board[SquareOf(f, 0)] = Piece{Type: backRank[f], Color: White}
		p.Board[SquareOf(f, 2)] = Piece{Type: Pawn, Color: White}
		p.Board[SquareOf(f, 6)] = Piece{Type: Pawn, Color: Black}
		p.Board[SquareOf(f, 8)] = Piece{Type: backRank[f], Color: Black}
	}
	p.Board[SquareOf(1, 1)] = Piece{Type: Rook, Color: White}
	p.Board[SquareOf(7, 1)] = Piece{Type: Bishop, Color: White}
	p.Board[SquareOf(1, 7)] = Piece{Type: Bishop, Color: Black}
	p.Board[SquareOf(7, 7)] = Piece{Type: Rook, Color: Black}
	return p
}
