package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	nchess "github.com/corentings/chess/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"arenawatch/internal/arena"
)

// State is the playback lifecycle of one session.
type State string

const (
	StateIdle      State = "IDLE"
	StateFetching  State = "FETCHING"
	StateReplaying State = "REPLAYING"
	StateFinished  State = "FINISHED"
	StateFailed    State = "FAILED"
)

var (
	ErrRunInProgress = errors.New("match run already in progress")
	ErrFetchFailed   = errors.New("arena match fetch failed")
	ErrMalformedMove = errors.New("malformed move code in move history")
	ErrIllegalMove   = errors.New("illegal move in move history")
)

// Fetcher is the single network capability a session depends on.
type Fetcher interface {
	PlayMatch(ctx context.Context, req arena.MatchRequest) (*arena.MatchResponse, error)
}

// MoveEvent describes one applied ply. Position is the immutable position
// after the move; it is safe to keep across further replay steps.
type MoveEvent struct {
	Ply      int
	Side     string
	UCI      string
	SAN      string
	FEN      string
	From     nchess.Square
	To       nchess.Square
	Position *nchess.Position
}

// Status is a point-in-time snapshot of a session.
type Status struct {
	ID       string
	State    State
	Thinking string
	Cursor   int
	Total    int
	FEN      string
	MovesUCI []string
	MovesSAN []string
	Result   string
	Outcome  string
	Failure  string
}

// Session owns the rules-engine instance, the fetched move list, and the
// playback cursor. The displayed position always reflects the moves in
// [0, cursor); the cursor only ever advances by one.
type Session struct {
	fetcher Fetcher
	req     arena.MatchRequest
	delay   time.Duration
	logger  *zap.Logger

	mu       sync.Mutex
	id       string
	game     *nchess.Game
	moves    []string
	movesSAN []string
	cursor   int
	state    State
	thinking string
	result   string
	failure  string

	cancel context.CancelFunc
	done   chan struct{}

	onMove  func(MoveEvent)
	onState func(State)
}

func NewSession(fetcher Fetcher, req arena.MatchRequest, delay time.Duration, logger *zap.Logger) (*Session, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("arena fetcher is required")
	}
	if req.MaxTurns < 1 {
		req.MaxTurns = 1
	}
	if delay < 0 {
		delay = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		fetcher: fetcher,
		req:     req,
		delay:   delay,
		logger:  logger,
		id:      uuid.NewString(),
		game:    nchess.NewGame(),
		state:   StateIdle,
	}, nil
}

// OnMove registers a callback invoked after every applied ply. Set before Run.
func (s *Session) OnMove(fn func(MoveEvent)) {
	s.mu.Lock()
	s.onMove = fn
	s.mu.Unlock()
}

// OnState registers a callback invoked on every lifecycle transition. Set before Run.
func (s *Session) OnState(fn func(State)) {
	s.mu.Lock()
	s.onState = fn
	s.mu.Unlock()
}

// Run fetches the full move list with a single arena call, then replays it
// onto the local game one ply per delay tick. It blocks until the replay
// finishes, fails, or ctx is cancelled. A second Run while one is active
// returns ErrRunInProgress.
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateFetching || s.state == StateReplaying {
		s.mu.Unlock()
		return ErrRunInProgress
	}
	s.resetLocked()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	// The guard check and the state claim share one critical section, so a
	// concurrent Run cannot slip in between them.
	s.state = StateFetching
	stateFn := s.onState
	s.mu.Unlock()
	if stateFn != nil {
		stateFn(StateFetching)
	}

	defer close(done)
	defer cancel()

	s.logger.Info("arena match requested",
		zap.String("session_id", s.id),
		zap.String("white_model", s.req.WhiteModel),
		zap.String("black_model", s.req.BlackModel),
		zap.Int("max_turns", s.req.MaxTurns),
	)

	resp, err := s.fetcher.PlayMatch(runCtx, s.req)
	if err != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			s.abort()
			return ctxErr
		}
		s.fail(fmt.Sprintf("arena request failed: %v", err))
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	codes, err := normalizeMoveCodes(resp.MoveHistory)
	if err != nil {
		s.fail(err.Error())
		return err
	}

	s.mu.Lock()
	s.moves = codes
	s.result = strings.TrimSpace(resp.Result)
	if reason := strings.TrimSpace(resp.Reason); reason != "" {
		if s.result != "" {
			s.result += " (" + reason + ")"
		} else {
			s.result = reason
		}
	}
	s.mu.Unlock()

	s.logger.Info("arena match received",
		zap.String("session_id", s.id),
		zap.Int("plies", len(codes)),
		zap.String("result", resp.Result),
	)

	s.setState(StateReplaying)

	for {
		s.mu.Lock()
		if s.cursor >= len(s.moves) {
			s.mu.Unlock()
			break
		}
		cur := s.cursor
		code := s.moves[cur]
		s.thinking = sideForPly(cur)
		fn := s.onMove
		s.mu.Unlock()

		if err := sleepWithContext(runCtx, s.delay); err != nil {
			s.abort()
			return err
		}

		ev, err := s.applyMove(cur, code)
		if err != nil {
			s.fail(err.Error())
			return err
		}
		if fn != nil {
			fn(ev)
		}
	}

	s.mu.Lock()
	s.thinking = ""
	if outcome := s.game.Outcome(); outcome != nchess.NoOutcome {
		s.result = strings.TrimSpace(s.result + " " + outcome.String())
	}
	s.mu.Unlock()

	s.setState(StateFinished)
	s.logger.Info("replay finished",
		zap.String("session_id", s.id),
		zap.Int("plies", len(codes)),
	)
	return nil
}

// Reset cancels any in-flight run, waits for it to unwind, and restores the
// session to the standard starting position with all derived state cleared.
func (s *Session) Reset() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	s.mu.Lock()
	s.resetLocked()
	s.state = StateIdle
	fn := s.onState
	s.mu.Unlock()
	if fn != nil {
		fn(StateIdle)
	}
}

// Status returns a copy of the session's visible state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		ID:       s.id,
		State:    s.state,
		Thinking: s.thinking,
		Cursor:   s.cursor,
		Total:    len(s.moves),
		FEN:      s.game.FEN(),
		MovesUCI: append([]string(nil), s.moves...),
		MovesSAN: append([]string(nil), s.movesSAN...),
		Result:   s.result,
		Outcome:  outcomeString(s.game),
		Failure:  s.failure,
	}
}

func (s *Session) resetLocked() {
	s.id = uuid.NewString()
	s.game = nchess.NewGame()
	s.moves = nil
	s.movesSAN = nil
	s.cursor = 0
	s.thinking = ""
	s.result = ""
	s.failure = ""
	s.cancel = nil
	s.done = nil
}

func (s *Session) applyMove(cur int, code string) (MoveEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.game.Position()
	uci := withDefaultPromotion(pos, code)

	move, err := nchess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		return MoveEvent{}, fmt.Errorf("%w: ply %d %q: %v", ErrIllegalMove, cur+1, code, err)
	}
	if err := s.game.Move(move, nil); err != nil {
		return MoveEvent{}, fmt.Errorf("%w: ply %d %q: %v", ErrIllegalMove, cur+1, code, err)
	}

	san := nchess.AlgebraicNotation{}.Encode(pos, move)
	s.movesSAN = append(s.movesSAN, san)
	s.cursor++

	after := s.game.Position()
	return MoveEvent{
		Ply:      cur + 1,
		Side:     sideForPly(cur),
		UCI:      uci,
		SAN:      san,
		FEN:      after.String(),
		From:     move.S1(),
		To:       move.S2(),
		Position: after,
	}, nil
}

// abort returns the session to idle without recording a failure. A cancelled
// run is a caller decision, not a failed match.
func (s *Session) abort() {
	s.mu.Lock()
	s.thinking = ""
	s.state = StateIdle
	fn := s.onState
	s.mu.Unlock()
	if fn != nil {
		fn(StateIdle)
	}
}

func (s *Session) fail(msg string) {
	s.mu.Lock()
	s.thinking = ""
	s.failure = msg
	s.state = StateFailed
	fn := s.onState
	s.mu.Unlock()
	if fn != nil {
		fn(StateFailed)
	}
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	fn := s.onState
	s.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}

func sideForPly(cursor int) string {
	if cursor%2 == 0 {
		return "white"
	}
	return "black"
}

func outcomeString(game *nchess.Game) string {
	if game == nil {
		return ""
	}
	if outcome := game.Outcome(); outcome != nchess.NoOutcome {
		return outcome.String()
	}
	return ""
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
