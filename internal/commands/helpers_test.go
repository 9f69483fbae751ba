package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diogo/wallchat/internal/api"
	"github.com/diogo/wallchat/internal/chat"
	"github.com/diogo/wallchat/internal/config"
	"github.com/diogo/wallchat/internal/models"
	"github.com/diogo/wallchat/internal/tui"
)

// fakeTUI records the interactive screens a command asked for
type fakeTUI struct {
	chatCalls int
	chatURL   string
	widget    *chat.Widget

	docsCalls  int
	docsFetch  tui.HelpFetcher
	docsDoc    *models.HelpDocument
	docsSource string

	configCalls int
	configPath  string
	configSave  tui.SaveFunc
}

func (f *fakeTUI) RunChat(ctx context.Context, widget *chat.Widget, server string) error {
	f.chatCalls++
	f.widget = widget
	f.chatURL = server
	return nil
}

func (f *fakeTUI) RunDocs(ctx context.Context, fetch tui.HelpFetcher, doc *models.HelpDocument, source string) error {
	f.docsCalls++
	f.docsFetch = fetch
	f.docsDoc = doc
	f.docsSource = source
	return nil
}

func (f *fakeTUI) RunConfig(ctx context.Context, cfg config.Config, path string, save tui.SaveFunc) error {
	f.configCalls++
	f.configPath = path
	f.configSave = save
	return nil
}

// syncBuffer is a bytes.Buffer safe for the watch loop and the test to share
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testEnv struct {
	deps   *Dependencies
	client *api.MockClient
	tui    *fakeTUI
	out    *syncBuffer
	errOut *syncBuffer

	cfg     config.Config
	saved   []config.Config
	clients int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		client: &api.MockClient{},
		tui:    &fakeTUI{},
		out:    &syncBuffer{},
		errOut: &syncBuffer{},
	}
	env.cfg = config.DefaultConfig()
	env.cfg.LogFile = filepath.Join(t.TempDir(), "wallchat.log")

	env.deps = &Dependencies{
		NewClient: func(cfg config.Config, logger zerolog.Logger) (api.ChatClientInterface, error) {
			env.clients++
			env.cfg = cfg
			return env.client, nil
		},
		LoadConfig: func() (config.Config, error) { return env.cfg, nil },
		SaveConfig: func(cfg config.Config) error {
			env.saved = append(env.saved, cfg)
			return nil
		},
		ConfigPath:    func() (string, error) { return "/home/test/.wallchat/config.json", nil },
		TUI:           env.tui,
		Out:           env.out,
		Err:           env.errOut,
		IsTTY:         func() bool { return false },
		TerminalWidth: func() int { return 80 },
	}
	return env
}

func (e *testEnv) run(ctx context.Context, args ...string) error {
	root := NewRootCmd(e.deps)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
