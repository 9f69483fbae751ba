package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/wallchat/internal/api"
	"github.com/diogo/wallchat/internal/chat"
	apierrors "github.com/diogo/wallchat/internal/errors"
)

func newTestChatModel(t *testing.T, mock *api.MockClient) (ChatModel, *chat.Widget) {
	t.Helper()
	w := chat.NewWidget(mock)
	m := NewChatModel(context.Background(), w, "http://chat.test")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(ChatModel), w
}

// runCmd executes cmd, expanding batches, and returns the messages produced
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findSent(msgs []tea.Msg) (sentMsg, bool) {
	for _, msg := range msgs {
		if s, ok := msg.(sentMsg); ok {
			return s, true
		}
	}
	return sentMsg{}, false
}

func TestChatModel_WindowSize(t *testing.T) {
	m, _ := newTestChatModel(t, &api.MockClient{})
	if !m.ready {
		t.Fatal("model should be ready after WindowSizeMsg")
	}
	if m.viewport.Height < 3 {
		t.Errorf("viewport height = %d", m.viewport.Height)
	}
	if !strings.Contains(m.View(), "http://chat.test") {
		t.Error("header should show the server")
	}
}

func TestChatModel_ViewBeforeReady(t *testing.T) {
	m := NewChatModel(context.Background(), chat.NewWidget(&api.MockClient{}), "s")
	if !strings.Contains(m.View(), "Initializing") {
		t.Error("expected initializing view")
	}
}

func TestChatModel_EnterSendsMessage(t *testing.T) {
	mock := &api.MockClient{}
	m, w := newTestChatModel(t, mock)
	m.textarea.SetValue("  hello wall  ")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(ChatModel)

	if m.textarea.Value() != "" {
		t.Errorf("textarea should be cleared, got %q", m.textarea.Value())
	}
	if m.sending != 1 {
		t.Errorf("sending = %d, want 1", m.sending)
	}
	if !strings.Contains(w.Wall(), "<div>hello wall</div>") {
		t.Errorf("optimistic entry missing from wall: %q", w.Wall())
	}

	sent, ok := findSent(runCmd(cmd))
	if !ok {
		t.Fatal("expected a sentMsg from the dispatch command")
	}
	if sent.err != nil {
		t.Fatalf("unexpected error: %v", sent.err)
	}
	posted, _ := mock.Calls()
	if len(posted) != 1 || posted[0] != "hello wall" {
		t.Errorf("posted = %v", posted)
	}

	updated, _ = m.Update(sent)
	m = updated.(ChatModel)
	if m.sending != 0 {
		t.Errorf("sending = %d after completion", m.sending)
	}
}

func TestChatModel_EnterRename(t *testing.T) {
	mock := &api.MockClient{}
	m, _ := newTestChatModel(t, mock)
	m.textarea.SetValue("/rename  Jo Ann")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(ChatModel)

	sent, ok := findSent(runCmd(cmd))
	if !ok {
		t.Fatal("expected a sentMsg")
	}
	_, renamed := mock.Calls()
	if len(renamed) != 1 || renamed[0] != "JoAnn" {
		t.Errorf("renamed = %v", renamed)
	}

	updated, _ = m.Update(sent)
	m = updated.(ChatModel)
	if m.notice != "Renamed to JoAnn" {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestChatModel_EnterEmptyIsNoop(t *testing.T) {
	mock := &api.MockClient{}
	m, w := newTestChatModel(t, mock)
	m.textarea.SetValue("   ")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(ChatModel)

	if cmd != nil {
		t.Error("empty input should not produce a command")
	}
	if m.textarea.Value() != "   " {
		t.Errorf("input should be unchanged, got %q", m.textarea.Value())
	}
	if w.Wall() != "" {
		t.Errorf("wall should be untouched, got %q", w.Wall())
	}
	posted, renamed := mock.Calls()
	if len(posted)+len(renamed) != 0 {
		t.Error("no request should be issued")
	}
}

func TestChatModel_SendError(t *testing.T) {
	mock := &api.MockClient{PostErr: apierrors.NewNetworkError("/messages", errors.New("refused"))}
	m, _ := newTestChatModel(t, mock)
	m.textarea.SetValue("hi")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(ChatModel)
	sent, _ := findSent(runCmd(cmd))

	updated, _ = m.Update(sent)
	m = updated.(ChatModel)
	if m.sendErr == nil {
		t.Fatal("expected error to be shown")
	}
	if !strings.Contains(m.View(), "Hint:") {
		t.Error("error view should include a hint")
	}
	if m.textarea.Value() != "" {
		t.Error("input stays cleared after a failed send")
	}
}

// failSend submits "hi" against a refusing server and applies the result
func failSend(t *testing.T) ChatModel {
	t.Helper()
	mock := &api.MockClient{PostErr: apierrors.NewNetworkError("/messages", errors.New("refused"))}
	m, _ := newTestChatModel(t, mock)
	m.textarea.SetValue("hi")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(ChatModel)
	sent, ok := findSent(runCmd(cmd))
	if !ok {
		t.Fatal("expected a sentMsg")
	}
	updated, _ = m.Update(sent)
	return updated.(ChatModel)
}

func TestChatModel_SendErrorSurvivesPolls(t *testing.T) {
	m := failSend(t)

	for i := 1; i <= 3; i++ {
		updated, _ := m.Update(wallMsg{Seq: uint64(i), Content: "<p>x</p>", At: time.Now()})
		m = updated.(ChatModel)
	}

	if m.sendErr == nil {
		t.Fatal("send error should outlive successful polls")
	}
	if !strings.Contains(m.View(), "refused") {
		t.Error("send error should still be on screen")
	}
}

func TestChatModel_SendErrorClears(t *testing.T) {
	m := failSend(t)

	// A stale timer does nothing
	updated, _ := m.Update(sendErrClearMsg{id: m.sendErrID - 1})
	m = updated.(ChatModel)
	if m.sendErr == nil {
		t.Fatal("stale clear message removed the error")
	}

	updated, _ = m.Update(sendErrClearMsg{id: m.sendErrID})
	m = updated.(ChatModel)
	if m.sendErr != nil {
		t.Errorf("sendErr = %v after its timeout", m.sendErr)
	}

	m = failSend(t)
	updated, _ = m.Update(sentMsg{action: chat.Action{Kind: chat.ActionMessage, Text: "again"}})
	m = updated.(ChatModel)
	if m.sendErr != nil {
		t.Errorf("a successful send should clear the error, got %v", m.sendErr)
	}
}

func TestChatModel_SendErrorWinsOverPollError(t *testing.T) {
	m := failSend(t)

	updated, _ := m.Update(wallMsg{Seq: 1, Err: apierrors.NewTimeoutError("GET /messages")})
	m = updated.(ChatModel)

	if m.visibleErr() != m.sendErr {
		t.Errorf("visible error = %v, want the send error", m.visibleErr())
	}
}

func TestChatModel_ErrorFitsTerminal(t *testing.T) {
	const height = 40

	m, _ := newTestChatModel(t, &api.MockClient{})
	if h := lipgloss.Height(m.View()); h > height {
		t.Fatalf("view height = %d without error, terminal is %d", h, height)
	}

	m = failSend(t)
	if h := lipgloss.Height(m.View()); h > height {
		t.Errorf("view height with error = %d, terminal is %d", h, height)
	}

	updated, _ := m.Update(wallMsg{Seq: 1, Err: apierrors.NewAPIError(503, "/messages", "busy")})
	m = updated.(ChatModel)
	updated, _ = m.Update(sendErrClearMsg{id: m.sendErrID})
	m = updated.(ChatModel)
	if h := lipgloss.Height(m.View()); h > height {
		t.Errorf("view height with poll error = %d, terminal is %d", h, height)
	}

	updated, _ = m.Update(wallMsg{Seq: 2, Content: "<p>ok</p>", At: time.Now()})
	m = updated.(ChatModel)
	if m.viewport.Height != height-11 {
		t.Errorf("viewport height = %d once errors clear, want %d", m.viewport.Height, height-11)
	}
}

func TestChatModel_LongMessageIsNotTruncated(t *testing.T) {
	mock := &api.MockClient{}
	m, _ := newTestChatModel(t, mock)
	long := strings.Repeat("x", 6000)
	m.textarea.SetValue(long)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := findSent(runCmd(cmd)); !ok {
		t.Fatal("expected a sentMsg")
	}

	posted, _ := mock.Calls()
	if len(posted) != 1 {
		t.Fatalf("posted = %d messages, want 1", len(posted))
	}
	if len(posted[0]) != len(long) {
		t.Errorf("posted %d chars, want %d", len(posted[0]), len(long))
	}
}

func TestChatModel_AltEnterInsertsNewline(t *testing.T) {
	m, _ := newTestChatModel(t, &api.MockClient{})
	m.textarea.SetValue("line one")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	m = updated.(ChatModel)

	if !strings.Contains(m.textarea.Value(), "\n") {
		t.Errorf("expected newline in %q", m.textarea.Value())
	}
}

func TestChatModel_WallUpdate(t *testing.T) {
	m, w := newTestChatModel(t, &api.MockClient{})
	w.SetWall("<p>alice: hi</p>")
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	updated, cmd := m.Update(wallMsg{Seq: 1, Content: "<p>alice: hi</p>", At: at})
	m = updated.(ChatModel)

	if cmd == nil {
		t.Error("a wall update must re-arm the wait command")
	}
	if !m.lastUpdate.Equal(at) {
		t.Errorf("lastUpdate = %v", m.lastUpdate)
	}
	if !strings.Contains(m.viewport.View(), "alice: hi") {
		t.Errorf("viewport missing wall text:\n%s", m.viewport.View())
	}
}

func TestChatModel_WallUpdateError(t *testing.T) {
	m, _ := newTestChatModel(t, &api.MockClient{})

	updated, _ := m.Update(wallMsg{Seq: 1, Err: apierrors.NewTimeoutError("GET /messages")})
	m = updated.(ChatModel)
	if !apierrors.IsTimeoutError(m.pollErr) {
		t.Fatalf("pollErr = %v", m.pollErr)
	}

	// A later good poll clears the error
	updated, _ = m.Update(wallMsg{Seq: 2, Content: "ok", At: time.Now()})
	m = updated.(ChatModel)
	if m.pollErr != nil {
		t.Errorf("pollErr should clear, got %v", m.pollErr)
	}
}

func TestChatModel_Forward(t *testing.T) {
	m, _ := newTestChatModel(t, &api.MockClient{})

	m.Forward(api.WallUpdate{Seq: 1})
	m.Forward(api.WallUpdate{Seq: 2})

	msg := waitForWall(m.updates)()
	if got := msg.(wallMsg).Seq; got != 2 {
		t.Errorf("Seq = %d, want newest (2)", got)
	}
}

func TestChatModel_CopyWall(t *testing.T) {
	m, w := newTestChatModel(t, &api.MockClient{})
	w.SetWall("<p>one</p><p>two</p>")

	var copied string
	m.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = updated.(ChatModel)

	if copied != "one\ntwo" {
		t.Errorf("copied = %q", copied)
	}
	if m.notice == "" || cmd == nil {
		t.Error("copy should show a notice and schedule clearing it")
	}

	updated, _ = m.Update(noticeClearMsg{id: m.noticeID})
	m = updated.(ChatModel)
	if m.notice != "" {
		t.Errorf("notice should clear, got %q", m.notice)
	}
}

func TestChatModel_CopyWallError(t *testing.T) {
	m, _ := newTestChatModel(t, &api.MockClient{})
	m.copyToClipboard = func(string) error { return errors.New("no clipboard") }

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = updated.(ChatModel)
	if m.sendErr == nil || !strings.Contains(m.sendErr.Error(), "no clipboard") {
		t.Errorf("sendErr = %v", m.sendErr)
	}
}

func TestChatModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m, _ := newTestChatModel(t, &api.MockClient{})
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s should quit", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not produce QuitMsg", key.String())
		}
	}
}
