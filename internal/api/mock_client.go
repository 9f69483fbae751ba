package api

import (
	"context"
	"sync"

	"github.com/diogo/wallchat/internal/models"
)

// MockClient is a mock implementation of ChatClientInterface for testing
type MockClient struct {
	mu sync.Mutex

	// Mock return values
	HelpVal   *models.HelpDocument
	HelpErr   error
	WallVal   string
	WallErr   error
	PostErr   error
	RenameErr error

	// WallFunc, when set, overrides WallVal/WallErr
	WallFunc func(ctx context.Context) (string, error)

	// Call recorders
	HelpCalls   int
	WallCalls   int
	Posted      []string
	Renamed     []string
	CloseCalled bool
}

// Ensure MockClient implements ChatClientInterface
var _ ChatClientInterface = (*MockClient)(nil)

func (m *MockClient) FetchHelp(ctx context.Context) (*models.HelpDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HelpCalls++
	return m.HelpVal, m.HelpErr
}

func (m *MockClient) FetchWall(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.WallCalls++
	fn := m.WallFunc
	val, err := m.WallVal, m.WallErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return val, err
}

func (m *MockClient) PostMessage(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Posted = append(m.Posted, text)
	return m.PostErr
}

func (m *MockClient) Rename(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Renamed = append(m.Renamed, name)
	return m.RenameErr
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

// SetWall changes the wall returned by later fetches
func (m *MockClient) SetWall(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WallVal = content
}

// Calls returns a snapshot of the recorded posts and renames
func (m *MockClient) Calls() (posted, renamed []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	posted = append([]string(nil), m.Posted...)
	renamed = append([]string(nil), m.Renamed...)
	return posted, renamed
}

// WallCallCount returns how many times FetchWall ran
func (m *MockClient) WallCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.WallCalls
}
