package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/clubroster/internal/seed"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/services/roster"
	"github.com/mcoot/clubroster/internal/storage/sqldb"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadDemo(s.ctx))
}

// Test: sign in with the demo account then search the roster
func (s *IntegrationSuite) TestLoginThenSearch() {
	s.app.MockRandom.Queue("DEMO")

	session, err := s.app.AuthService.Login(s.ctx, seed.DemoEmail, seed.DemoPassword)
	s.Require().NoError(err)
	s.Equal("sess_DEMO", session.Token)

	_, err = s.app.AuthService.ValidateSession(s.ctx, session.Token)
	s.Require().NoError(err)

	players, err := s.app.RosterService.Search(s.ctx, "john")
	s.Require().NoError(err)
	s.Require().NotEmpty(players)
	s.Equal("John Smith", players[0].Name)
	s.Equal("Johnny Lee", players[1].Name)
}

// Test: sessions issued by the wired auth service expire on the mock clock
func (s *IntegrationSuite) TestSessionExpiresWithClock() {
	session, err := s.app.AuthService.Login(s.ctx, seed.DemoEmail, seed.DemoPassword)
	s.Require().NoError(err)

	s.app.MockClock.Advance(auth.DefaultConfig().SessionDuration + time.Minute)

	_, err = s.app.AuthService.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, auth.ErrInvalidSession)
}

func (s *IntegrationSuite) TestSearchCapApplies() {
	players, err := s.app.RosterService.Search(s.ctx, "")
	s.Require().NoError(err)
	s.Len(players, roster.MaxResults)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "cassandra"})
	if err == nil {
		t.Fatal("expected error for unknown storage type")
	}
}

func TestNewRequiresBackendConfig(t *testing.T) {
	for _, storageType := range []string{StorageTypeSQL, StorageTypeRedis} {
		if _, err := New(Config{StorageType: storageType}); err == nil {
			t.Errorf("StorageType %q without config: expected error", storageType)
		}
	}
}

func TestNewWithSQLStorage(t *testing.T) {
	cfg := sqldb.DefaultConfig()
	cfg.DSN = t.TempDir() + "/factory.db"

	app, err := New(Config{StorageType: StorageTypeSQL, SQLConfig: &cfg})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = app.Close() }()

	if err := seed.Demo(context.Background(), app.Storage, app.AuthService, app.Logger); err != nil {
		t.Fatalf("seed: %v", err)
	}
	players, err := app.RosterService.Search(context.Background(), "amy")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(players) != 1 || players[0].Name != "Amy Jones" {
		t.Errorf("Search(amy) = %+v, want [Amy Jones]", players)
	}
}
