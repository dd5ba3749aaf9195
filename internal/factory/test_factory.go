package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fourline/gameroom/internal/credential"
	"github.com/fourline/gameroom/internal/dependencies/mocks"
	"github.com/fourline/gameroom/internal/services/identity"
	"github.com/fourline/gameroom/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked
// dependencies. The hasher runs at minimum cost to keep tests fast.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	hasher := credential.New(bcrypt.MinCost)

	app := newWithDependencies(store, mockClock, hasher, []byte("test-secret"), identity.DefaultConfig())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
