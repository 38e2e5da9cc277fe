package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/clubroster/internal/dependencies/mocks"
	"github.com/mcoot/clubroster/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, Config{
		SessionDuration: time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}, nil)
	s.ctx = context.Background()

	_, err := s.service.RegisterAccount(s.ctx, "admin@club.com", "password123", "Club Admin")
	s.Require().NoError(err)
}

// RegisterAccount tests

func (s *ServiceSuite) TestRegisterAccountHashesPassword() {
	account, err := s.storage.GetAccountByEmail(s.ctx, "admin@club.com")
	s.Require().NoError(err)
	s.Equal("Club Admin", account.DisplayName)
	s.NotEqual("password123", account.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("password123")))
}

func (s *ServiceSuite) TestRegisterAccountFailsIfEmailExists() {
	_, err := s.service.RegisterAccount(s.ctx, "Admin@Club.com", "other", "Someone")
	s.ErrorIs(err, ErrEmailExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	s.random.Queue("abc")

	session, err := s.service.Login(s.ctx, "admin@club.com", "password123")
	s.Require().NoError(err)

	s.Equal("sess_abc", session.Token)
	s.Equal("admin@club.com", session.Account.Email)
	s.Equal(s.clock.Now().Add(time.Hour), session.ExpiresAt)
}

func (s *ServiceSuite) TestLoginEmailIsCaseInsensitive() {
	_, err := s.service.Login(s.ctx, "  ADMIN@club.com ", "password123")
	s.NoError(err)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, err := s.service.Login(s.ctx, "admin@club.com", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownEmail() {
	_, err := s.service.Login(s.ctx, "nobody@club.com", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginIssuesDistinctTokens() {
	first, err := s.service.Login(s.ctx, "admin@club.com", "password123")
	s.Require().NoError(err)
	second, err := s.service.Login(s.ctx, "admin@club.com", "password123")
	s.Require().NoError(err)

	s.NotEqual(first.Token, second.Token)
}

// ValidateSession tests

func (s *ServiceSuite) TestValidateSessionSucceeds() {
	session, _ := s.service.Login(s.ctx, "admin@club.com", "password123")

	validated, err := s.service.ValidateSession(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(session.Token, validated.Token)
	s.Equal("Club Admin", validated.Account.DisplayName)
}

func (s *ServiceSuite) TestValidateSessionFailsWithUnknownToken() {
	_, err := s.service.ValidateSession(s.ctx, "sess_nope")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionFailsWithEmptyToken() {
	_, err := s.service.ValidateSession(s.ctx, "")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionFailsWhenExpired() {
	session, _ := s.service.Login(s.ctx, "admin@club.com", "password123")

	s.clock.Advance(time.Hour + time.Second)

	_, err := s.service.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.storage.GetSession(s.ctx, session.Token)
	s.Error(err, "expired session should have been removed")
}

// Logout tests

func (s *ServiceSuite) TestLogoutRemovesSession() {
	session, _ := s.service.Login(s.ctx, "admin@club.com", "password123")

	s.Require().NoError(s.service.Logout(s.ctx, session.Token))

	_, err := s.service.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestLogoutNoopForUnknownToken() {
	s.NoError(s.service.Logout(s.ctx, "sess_nope"))
}

// CleanExpiredSessions tests

func (s *ServiceSuite) TestCleanExpiredSessionsRemovesOnlyExpired() {
	old, _ := s.service.Login(s.ctx, "admin@club.com", "password123")
	s.clock.Advance(30 * time.Minute)
	fresh, _ := s.service.Login(s.ctx, "admin@club.com", "password123")
	s.clock.Advance(45 * time.Minute)

	removed, err := s.service.CleanExpiredSessions(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, removed)

	_, err = s.storage.GetSession(s.ctx, old.Token)
	s.Error(err)
	_, err = s.service.ValidateSession(s.ctx, fresh.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestRunJanitorStopsOnCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		s.service.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	s.Eventually(func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
