package presenter

import (
	"fmt"
	"strings"

	"arenawatch/internal/match"
)

const (
	moveLogHeading = "Move log"
	failureHeading = "Match failed"
)

// Formatter renders session state into terminal-friendly text blocks.
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

// MoveLog formats the finished move list as numbered from-to lines,
// alternating sides by ply.
func (f *Formatter) MoveLog(movesUCI []string) string {
	if len(movesUCI) == 0 {
		return moveLogHeading + "\n(no moves)"
	}

	var sb strings.Builder
	sb.WriteString(moveLogHeading)
	for i, code := range movesUCI {
		side := "White"
		if i%2 == 1 {
			side = "Black"
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%d. %s: %s", i+1, side, MoveCodePretty(code)))
	}
	return sb.String()
}

// MoveCodePretty splits a move code into "from-to" form; promotion letters
// are shown as a suffix ("e7-e8=q").
func MoveCodePretty(code string) string {
	code = strings.TrimSpace(code)
	if len(code) < 4 {
		return code
	}
	out := code[:2] + "-" + code[2:4]
	if len(code) >= 5 {
		out += "=" + code[4:]
	}
	return out
}

// Thinking formats the between-move status line.
func (f *Formatter) Thinking(side string) string {
	switch strings.ToLower(strings.TrimSpace(side)) {
	case "white":
		return "White is thinking..."
	case "black":
		return "Black is thinking..."
	default:
		return ""
	}
}

// Waiting formats the trivia banner shown while the arena call is in flight.
func (f *Formatter) Waiting(trivia string) string {
	trivia = strings.TrimSpace(trivia)
	if trivia == "" {
		return "Waiting for the arena..."
	}
	return "Waiting for the arena... Did you know? " + trivia
}

// Failure formats the terminal error block for a failed session.
func (f *Formatter) Failure(st match.Status) string {
	var sb strings.Builder
	sb.WriteString(failureHeading)
	if msg := strings.TrimSpace(st.Failure); msg != "" {
		sb.WriteString("\n")
		sb.WriteString(msg)
	}
	return sb.String()
}

// Summary formats the post-replay result banner.
func (f *Formatter) Summary(st match.Status) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Replay finished: %d plies", st.Total))
	if result := strings.TrimSpace(st.Result); result != "" {
		sb.WriteString(" | ")
		sb.WriteString(result)
	}
	return sb.String()
}

// MoveLine formats one applied ply for live output.
func (f *Formatter) MoveLine(ev match.MoveEvent) string {
	side := "White"
	if ev.Side == "black" {
		side = "Black"
	}
	return fmt.Sprintf("%d. %s: %s (%s)", ev.Ply, side, MoveCodePretty(ev.UCI), ev.SAN)
}
