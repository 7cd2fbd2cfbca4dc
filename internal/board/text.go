package board

import (
	"strings"

	nchess "github.com/corentings/chess/v2"
)

var pieceLetters = map[nchess.PieceType]string{
	nchess.King:   "k",
	nchess.Queen:  "q",
	nchess.Rook:   "r",
	nchess.Bishop: "b",
	nchess.Knight: "n",
	nchess.Pawn:   "p",
}

// Text renders the position as a plain board diagram, rank 8 at the top,
// white pieces uppercase, empty squares as dots.
func Text(b *nchess.Board) string {
	if b == nil {
		return ""
	}
	boardMap := b.SquareMap()

	var sb strings.Builder
	for _, rank := range renderRanks {
		sb.WriteString(rank.String())
		sb.WriteString(" ")
		for _, file := range renderFiles {
			sq := nchess.NewSquare(file, rank)
			piece := boardMap[sq]
			if piece == nchess.NoPiece {
				sb.WriteString(" .")
				continue
			}
			letter := pieceLetters[piece.Type()]
			if piece.Color() == nchess.White {
				letter = strings.ToUpper(letter)
			}
			sb.WriteString(" ")
			sb.WriteString(letter)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   a b c d e f g h\n")
	return sb.String()
}
