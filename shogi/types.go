// Package shogi contains the minimal domain types the position cache
// consumes: pieces, squares, hands (reserves), moves, and a position that
// can apply a move. It is not a move generator and knows nothing about
// legality beyond the structural rules needed for hashing.
package shogi

// Color identifies a player. Black (sente) moves first.
type Color uint8

const (
	Black Color = iota
	White
)

func (c Color) Opponent() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// PieceType enumerates the fourteen shogi piece kinds, promoted forms
// included. The zero value means "no piece".
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	PromotedPawn
	PromotedLance
	PromotedKnight
	PromotedSilver
	Horse  // promoted bishop
	Dragon // promoted rook
)

// NumPieceTypes counts the distinct non-empty piece kinds.
const NumPieceTypes = 14

var pieceNames = [...]string{
	"-", "P", "L", "N", "S", "G", "B", "R", "K",
	"+P", "+L", "+N", "+S", "+B", "+R",
}

func (p PieceType) String() string {
	if int(p) >= len(pieceNames) {
		return "?"
	}
	return pieceNames[p]
}

// CanPromote reports whether this piece kind has a promoted form.
func (p PieceType) CanPromote() bool {
	switch p {
	case Pawn, Lance, Knight, Silver, Bishop, Rook:
		return true
	}
	return false
}

// Promote returns the promoted form, or the receiver unchanged if the
// piece does not promote.
func (p PieceType) Promote() PieceType {
	switch p {
	case Pawn:
		return PromotedPawn
	case Lance:
		return PromotedLance
	case Knight:
		return PromotedKnight
	case Silver:
		return PromotedSilver
	case Bishop:
		return Horse
	case Rook:
		return Dragon
	}
	return p
}

// Demote returns the unpromoted form. Captured pieces always join the
// capturer's hand demoted.
func (p PieceType) Demote() PieceType {
	switch p {
	case PromotedPawn:
		return Pawn
	case PromotedLance:
		return Lance
	case PromotedKnight:
		return Knight
	case PromotedSilver:
		return Silver
	case Horse:
		return Bishop
	case Dragon:
		return Rook
	}
	return p
}

// HandPieceTypes lists the kinds that may sit in a player's hand,
// i.e. everything droppable. Kings are never captured.
var HandPieceTypes = [7]PieceType{Pawn, Lance, Knight, Silver, Gold, Bishop, Rook}

// Square indexes a board cell, file-major: square = file*9 + rank,
// 0..80. NoSquare marks the absent origin of a drop move.
type Square int8

const (
	BoardFiles = 9
	BoardRanks = 9
	NumSquares = BoardFiles * BoardRanks

	NoSquare Square = -1
)

// SquareOf builds a square from zero-based file and rank.
func SquareOf(file, rank int) Square {
	return Square(file*BoardRanks + rank)
}

func (s Square) File() int { return int(s) / BoardRanks }
func (s Square) Rank() int { return int(s) % BoardRanks }

// Piece is a piece kind plus its owner. The zero value is an empty cell.
type Piece struct {
	Type  PieceType
	Color Color
}

// Hand holds in-reserve piece counts for one player, indexed by the
// unpromoted PieceType (Pawn..Rook).
type Hand [King]uint8

func (h *Hand) Count(pt PieceType) int {
	return int(h[pt.Demote()-1])
}

func (h *Hand) Add(pt PieceType) {
	h[pt.Demote()-1]++
}

func (h *Hand) Remove(pt PieceType) {
	idx := pt.Demote() - 1
	if h[idx] == 0 {
		panic("shogi: removing piece from empty hand")
	}
	h[idx]--
}

// Empty reports whether the hand holds no pieces at all.
func (h *Hand) Empty() bool {
	for _, ct := range h {
		if ct != 0 {
			return false
		}
	}
	return true
}
