package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chubes4/chubes-games/internal/core"
	"github.com/chubes4/chubes-games/internal/registry"
	"github.com/chubes4/chubes-games/internal/storage"
)

func init() {
	registry.Register("scripted", func() registry.Game {
		return &scriptedGame{overAt: 1000}
	})
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sessionKey(t *testing.T, m SessionModel, msg tea.KeyMsg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(SessionModel), cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	store := openStore(t)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	m := NewSessionModel(store, cfg, "tester", nil)

	m, cmd := sessionKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v after enter, expected game", m.screen)
	}
	if cmd == nil {
		t.Error("starting a game returned no tick command")
	}

	m, cmd = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %v after esc, expected menu", m.screen)
	}
	if m.quitting {
		t.Error("leaving a game quit the session")
	}

	runs, err := store.RecentRuns("scripted", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].EndReason != "quit" {
		t.Errorf("RecentRuns() = %+v, expected one quit run", runs)
	}
}

func TestSessionScoreboard(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel(store, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, "tester", nil)

	m, _ = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v after tab, expected scores", m.screen)
	}

	m, _ = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.quitting {
		t.Errorf("screen = %v, quitting = %v after esc, expected menu", m.screen, m.quitting)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "tester", nil)

	m, cmd := sessionKey(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Errorf("quitting = %v, cmd = %v after q, expected quit", m.quitting, cmd)
	}
	if got := m.View(); got != "" {
		t.Errorf("View() after quit = %q, expected empty", got)
	}
}

func TestScoreboardViews(t *testing.T) {
	store := openStore(t)
	if _, err := store.RecordGame("scripted", core.RunSummary{Score: 9, Kills: 9, Duration: 75 * time.Second, EndReason: "destroyed"}); err != nil {
		t.Fatalf("RecordGame() failed: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.view != ViewHighScores {
		t.Errorf("view = %v, expected high scores", m.view)
	}
	if rows := m.table.Rows(); len(rows) != 1 || rows[0][1] != "9" {
		t.Errorf("score rows = %v, expected one row with score 9", rows)
	}

	next, _ := m.Update(runeKey('v'))
	m = next.(ScoreboardModel)
	if m.view != ViewRecentRuns {
		t.Fatalf("view = %v after v, expected recent runs", m.view)
	}
	rows := m.table.Rows()
	if len(rows) != 1 {
		t.Fatalf("run rows = %v, expected one", rows)
	}
	if rows[0][4] != "1:15" || rows[0][5] != "destroyed" {
		t.Errorf("run row = %v, expected time 1:15 and end destroyed", rows[0])
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61*time.Second + 600*time.Millisecond, "1:02"},
		{10 * time.Minute, "10:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.expected {
			t.Errorf("formatDuration(%v) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
