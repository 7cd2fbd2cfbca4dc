package arena

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPlayMatchSuccess(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody MatchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"move_history":["e2e4","e7e5"],"result":"1-0","reason":"checkmate"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.PlayMatch(context.Background(), MatchRequest{
		WhiteModel:  "gpt-x",
		BlackModel:  "claude-y",
		WhiteAPIKey: "wk",
		BlackAPIKey: "bk",
		MaxTurns:    40,
	})
	if err != nil {
		t.Fatalf("PlayMatch: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/v1/matches" {
		t.Fatalf("request = %s %s, want POST /v1/matches", gotMethod, gotPath)
	}
	if gotBody.WhiteModel != "gpt-x" || gotBody.BlackModel != "claude-y" || gotBody.MaxTurns != 40 {
		t.Fatalf("forwarded request = %+v", gotBody)
	}
	if len(resp.MoveHistory) != 2 || resp.MoveHistory[0] != "e2e4" {
		t.Fatalf("move history = %v", resp.MoveHistory)
	}
	if resp.Result != "1-0" || resp.Reason != "checkmate" {
		t.Fatalf("result = %q reason = %q", resp.Result, resp.Reason)
	}
}

func TestPlayMatchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "arena overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.PlayMatch(context.Background(), MatchRequest{WhiteModel: "a", BlackModel: "b", MaxTurns: 1})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", se.Code)
	}
}

func TestPlayMatchEmptyMoveHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"move_history":[],"result":"*"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.PlayMatch(context.Background(), MatchRequest{WhiteModel: "a", BlackModel: "b", MaxTurns: 1})
	if !errors.Is(err, ErrEmptyMoveHistory) {
		t.Fatalf("err = %v, want ErrEmptyMoveHistory", err)
	}
}

func TestPlayMatchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"move_history": nope`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.PlayMatch(context.Background(), MatchRequest{WhiteModel: "a", BlackModel: "b", MaxTurns: 1}); err == nil {
		t.Fatalf("expected decode error for malformed body")
	}
}

func TestWithTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"move_history":["e2e4"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	if _, err := c.PlayMatch(context.Background(), MatchRequest{WhiteModel: "a", BlackModel: "b", MaxTurns: 1}); err == nil {
		t.Fatalf("expected a deadline error from the slow arena")
	}
}

func TestHeaderProvider(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"move_history":["e2e4"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHeaderProvider(func() map[string]string {
		return map[string]string{"Authorization": "Bearer tok"}
	}))
	if _, err := c.PlayMatch(context.Background(), MatchRequest{WhiteModel: "a", BlackModel: "b", MaxTurns: 1}); err != nil {
		t.Fatalf("PlayMatch: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("Authorization = %q, want Bearer tok", gotAuth)
	}
}
