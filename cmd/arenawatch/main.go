package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"arenawatch/internal/arena"
	"arenawatch/internal/board"
	appcfg "arenawatch/internal/config"
	"arenawatch/internal/match"
	"arenawatch/internal/obslog"
	"arenawatch/internal/presenter"
	"arenawatch/internal/trivia"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}

	lines, err := trivia.Load(strings.TrimSpace(os.Getenv("ARENA_TRIVIA_FILE")))
	if err != nil {
		log.Fatalf("trivia init error: %v", err)
	}
	rotator := trivia.NewRotator(lines)

	client := arena.NewClient(cfg.ArenaBaseURL, arena.WithTimeout(cfg.RequestTimeout))
	req := arena.MatchRequest{
		WhiteModel:  cfg.WhiteModel,
		BlackModel:  cfg.BlackModel,
		WhiteAPIKey: cfg.WhiteAPIKey,
		BlackAPIKey: cfg.BlackAPIKey,
		MaxTurns:    cfg.MaxTurns,
	}

	sess, err := match.NewSession(client, req, cfg.MoveDelay, obslog.L())
	if err != nil {
		log.Fatalf("session init error: %v", err)
	}

	snapshots, err := board.NewSnapshotWriter(cfg.SnapshotDir, board.NewRenderer())
	if err != nil {
		log.Fatalf("snapshot init error: %v", err)
	}

	formatter := presenter.NewFormatter()

	rotator.OnTick(func(line string) {
		fmt.Println(formatter.Waiting(line))
	})

	sess.OnMove(func(ev match.MoveEvent) {
		fmt.Println(formatter.MoveLine(ev))
		fmt.Print(board.Text(ev.Position.Board()))
		if st := sess.Status(); st.Cursor < st.Total {
			next := "black"
			if ev.Ply%2 == 0 {
				next = "white"
			}
			fmt.Println(formatter.Thinking(next))
		}
		if snapshots != nil {
			opts := board.RenderOptions{
				Highlight: &board.Highlight{From: ev.From, To: ev.To},
				Header:    fmt.Sprintf("%s vs %s", cfg.WhiteModel, cfg.BlackModel),
			}
			if _, err := snapshots.Save(context.Background(), ev.Ply, ev.Position.Board(), opts); err != nil {
				obslog.L().Warn("snapshot save failed", zap.Int("ply", ev.Ply), zap.Error(err))
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	sess.OnState(func(st match.State) {
		switch st {
		case match.StateReplaying:
			// The wait is over; the trivia ticker must not advance during playback.
			rotator.Stop()
			fmt.Println("Match received, replaying...")
			if sess.Status().Total > 0 {
				fmt.Println(formatter.Thinking("white"))
			}
		case match.StateFailed:
			rotator.Stop()
		}
	})

	stdin := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println(formatter.Waiting(rotator.Current()))
		rotator.Start(ctx, cfg.TriviaInterval)

		err := sess.Run(ctx)
		st := sess.Status()
		switch {
		case err == nil:
			fmt.Println(formatter.MoveLog(st.MovesUCI))
			fmt.Println(formatter.Summary(st))
		case errors.Is(err, context.Canceled):
			return
		default:
			fmt.Println(formatter.Failure(st))
		}

		fmt.Println("Press Enter to run a new match, Ctrl+C to quit.")
		if !stdin.Scan() {
			return
		}
		if ctx.Err() != nil {
			return
		}
		sess.Reset()
	}
}
