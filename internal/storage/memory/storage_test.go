package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/clubroster/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) seed(names ...string) {
	for _, name := range names {
		_, err := s.storage.SavePlayer(s.ctx, &model.Player{Name: name, Email: name + "@club.com", DUPRRating: 3.5})
		s.Require().NoError(err)
	}
}

// Player tests

func (s *StorageSuite) TestSaveAssignsSequentialIDs() {
	id1, err := s.storage.SavePlayer(s.ctx, &model.Player{Name: "John Smith"})
	s.Require().NoError(err)
	id2, err := s.storage.SavePlayer(s.ctx, &model.Player{Name: "Amy Jones"})
	s.Require().NoError(err)

	s.Equal(model.PlayerID(1), id1)
	s.Equal(model.PlayerID(2), id2)
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	id, err := s.storage.SavePlayer(s.ctx, &model.Player{Name: "John Smith", Email: "john@club.com", DUPRRating: 4.25})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("John Smith", retrieved.Name)
	s.Equal("john@club.com", retrieved.Email)
	s.InDelta(4.25, retrieved.DUPRRating, 0.0001)
}

func (s *StorageSuite) TestSaveWithExplicitIDUpdatesInPlace() {
	s.seed("John Smith", "Amy Jones")

	_, err := s.storage.SavePlayer(s.ctx, &model.Player{ID: 1, Name: "Jon Smith"})
	s.Require().NoError(err)

	results, err := s.storage.SearchPlayersByName(s.ctx, "", 10)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal("Jon Smith", results[0].Name)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSearchMatchesCaseInsensitivelyInStoreOrder() {
	s.seed("John Smith", "Johnny Lee", "Amy Jones")

	results, err := s.storage.SearchPlayersByName(s.ctx, "john", 10)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal("John Smith", results[0].Name)
	s.Equal("Johnny Lee", results[1].Name)
}

func (s *StorageSuite) TestSearchRespectsLimit() {
	for i := 0; i < 15; i++ {
		s.seed("Player")
	}

	results, err := s.storage.SearchPlayersByName(s.ctx, "play", 10)
	s.Require().NoError(err)
	s.Len(results, 10)
}

func (s *StorageSuite) TestSearchTreatsWildcardsLiterally() {
	s.seed("John Smith", "100% Hustle")

	results, err := s.storage.SearchPlayersByName(s.ctx, "%", 10)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("100% Hustle", results[0].Name)
}

// Account tests

func (s *StorageSuite) TestAccountLookupIgnoresCase() {
	err := s.storage.SaveAccount(s.ctx, &model.Account{Email: "Admin@Club.com", PasswordHash: "hash"})
	s.Require().NoError(err)

	account, err := s.storage.GetAccountByEmail(s.ctx, "admin@club.com")
	s.Require().NoError(err)
	s.Equal("admin@club.com", account.Email)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccountByEmail(s.ctx, "nobody@club.com")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

// Session tests

func (s *StorageSuite) TestSaveGetDeleteSession() {
	now := time.Now()
	err := s.storage.SaveSession(s.ctx, &model.Session{Token: "tok", Email: "admin@club.com", CreatedAt: now, ExpiresAt: now.Add(time.Hour)})
	s.Require().NoError(err)

	session, err := s.storage.GetSession(s.ctx, "tok")
	s.Require().NoError(err)
	s.Equal("admin@club.com", session.Email)

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "tok"))
	_, err = s.storage.GetSession(s.ctx, "tok")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteUnknownSessionIsNoop() {
	s.NoError(s.storage.DeleteSession(s.ctx, "missing"))
}

func (s *StorageSuite) TestDeleteExpiredSessions() {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{Token: "old", ExpiresAt: now.Add(-time.Minute)}))
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{Token: "new", ExpiresAt: now.Add(time.Hour)}))

	removed, err := s.storage.DeleteExpiredSessions(s.ctx, now)
	s.Require().NoError(err)
	s.Equal(1, removed)

	_, err = s.storage.GetSession(s.ctx, "new")
	s.NoError(err)
	_, err = s.storage.GetSession(s.ctx, "old")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
