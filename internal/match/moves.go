package match

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// normalizeMoveCodes lowercases and shape-checks every received move code
// before replay starts, so a malformed list is reported up front instead of
// failing halfway through playback.
func normalizeMoveCodes(raw []string) ([]string, error) {
	codes := make([]string, 0, len(raw))
	for i, mv := range raw {
		code := strings.ToLower(strings.TrimSpace(mv))
		if !validMoveCode(code) {
			return nil, fmt.Errorf("%w: ply %d %q", ErrMalformedMove, i+1, mv)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// validMoveCode accepts origin+destination square pairs, optionally followed
// by a promotion piece letter.
func validMoveCode(code string) bool {
	if len(code) != 4 && len(code) != 5 {
		return false
	}
	if !validSquare(code[:2]) || !validSquare(code[2:4]) {
		return false
	}
	if len(code) == 5 {
		switch code[4] {
		case 'q', 'r', 'b', 'n':
		default:
			return false
		}
	}
	return true
}

func validSquare(s string) bool {
	return len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8'
}

// withDefaultPromotion appends the queen promotion letter to a bare
// four-character code when it moves a pawn onto a promotion rank. Codes that
// already carry a promotion letter are kept as sent.
func withDefaultPromotion(pos *nchess.Position, code string) string {
	if len(code) != 4 || pos == nil {
		return code
	}
	if code[3] != '1' && code[3] != '8' {
		return code
	}
	from, ok := parseSquare(code[:2])
	if !ok {
		return code
	}
	if piece := pos.Board().Piece(from); piece.Type() == nchess.Pawn {
		return code + "q"
	}
	return code
}

func parseSquare(s string) (nchess.Square, bool) {
	if !validSquare(s) {
		return 0, false
	}
	file := nchess.File(s[0] - 'a')
	rank := nchess.Rank(s[1] - '1')
	return nchess.NewSquare(file, rank), true
}
