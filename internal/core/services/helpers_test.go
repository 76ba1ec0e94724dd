package services

import (
	"sync"
	"testing"
	"time"

	"gatepass/internal/adapters/persistence/repositories"
	"gatepass/internal/config"
	"gatepass/internal/core/domain"
)

func newTestRepo(t *testing.T) repositories.SnapshotRepository {
	t.Helper()
	return repositories.NewSnapshotRepository(
		repositories.NewMemoryStore(),
		config.SeedSnapshot,
		repositories.WithDiagnostic(func(string, error) {}),
	)
}

func newTestConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenMins: 5},
		Auth:    config.AuthConfig{PasswordHashing: config.PasswordPlain},
	}
}

// fakeClock returns increasing times, one second apart
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) record(ev string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) NotifyPassCreated(*domain.Pass)   { n.record(EventPassCreated) }
func (n *recordingNotifier) NotifyStatusChanged(*domain.Pass) { n.record(EventPassStatusChanged) }
func (n *recordingNotifier) NotifyPassUsed(*domain.Pass)      { n.record(EventPassUsed) }
