package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/core/migrations"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func defaultSteps(t *testing.T) []migrations.Step {
	t.Helper()
	steps, err := config.DefaultMigrations()
	require.NoError(t, err)
	return steps
}

type RepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	repos portsrepo.RepositoryProvider
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	db := openTestDB(s.T())
	s.Require().NoError(migrations.NewEngine(NewSchema(db), defaultSteps(s.T()), nil).Migrate(s.ctx, migrations.Latest()))
	s.repos = NewRepositoryProvider(db)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) TestExchangeRate_UpsertOverwrites() {
	repo := s.repos.ExchangeRateRepo
	s.Require().NoError(repo.SaveExchangeRate(s.ctx, domain.ExchangeRate{Quote: "USD", Base: "EUR", Rate: 1.08}))
	s.Require().NoError(repo.SaveExchangeRate(s.ctx, domain.ExchangeRate{Quote: "USD", Base: "EUR", Rate: 1.10}))

	got, err := repo.FindExchangeRate(s.ctx, "USD", "EUR")
	s.Require().NoError(err)
	s.Equal(domain.ExchangeRate{Quote: "USD", Base: "EUR", Rate: 1.10}, *got)
}

func (s *RepositoryTestSuite) TestExchangeRate_KeyIsOrdered() {
	repo := s.repos.ExchangeRateRepo
	s.Require().NoError(repo.SaveExchangeRate(s.ctx, domain.ExchangeRate{Quote: "USD", Base: "EUR", Rate: 1.10}))

	_, err := repo.FindExchangeRate(s.ctx, "EUR", "USD")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.NotErrorIs(err, apperrors.ErrStore)
}

func (s *RepositoryTestSuite) TestExchangeRate_MissingTableIsStoreError() {
	s.Require().NoError(migrations.NewEngine(NewSchema(s.repos.Health.(*BaseRepository).DB), defaultSteps(s.T()), nil).
		Migrate(s.ctx, migrations.Version(0)))

	_, err := s.repos.ExchangeRateRepo.FindExchangeRate(s.ctx, "USD", "EUR")
	s.ErrorIs(err, apperrors.ErrStore)
	s.NotErrorIs(err, apperrors.ErrNotFound)

	err = s.repos.ExchangeRateRepo.SaveExchangeRate(s.ctx, domain.ExchangeRate{Quote: "USD", Base: "EUR", Rate: 1.1})
	s.ErrorIs(err, apperrors.ErrStore)
}

func (s *RepositoryTestSuite) TestUser_SaveFindAndDuplicate() {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	user := domain.User{Username: "alice", PasswordHash: "hash", CreatedAt: created}
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, user))

	got, err := s.repos.UserRepo.FindUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user, *got)

	s.ErrorIs(s.repos.UserRepo.SaveUser(s.ctx, user), apperrors.ErrDuplicate)

	_, err = s.repos.UserRepo.FindUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestAuthToken_Lifecycle() {
	now := time.Now().UTC().Truncate(time.Second)
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, domain.User{Username: "alice", PasswordHash: "hash", CreatedAt: now}))

	token := domain.AuthToken{ID: "9b2f6a7e-6a43-4c43-9d8e-3b8a1f0c2d11", Username: "alice", CreatedAt: now}
	s.Require().NoError(s.repos.AuthTokenRepo.SaveAuthToken(s.ctx, token))

	got, err := s.repos.AuthTokenRepo.FindAuthTokenByID(s.ctx, token.ID)
	s.Require().NoError(err)
	s.Equal(token, *got)

	s.Require().NoError(s.repos.AuthTokenRepo.DeleteAuthToken(s.ctx, token.ID))
	_, err = s.repos.AuthTokenRepo.FindAuthTokenByID(s.ctx, token.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.ErrorIs(s.repos.AuthTokenRepo.DeleteAuthToken(s.ctx, token.ID), apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestAuthToken_RequiresExistingUser() {
	err := s.repos.AuthTokenRepo.SaveAuthToken(s.ctx, domain.AuthToken{ID: "t1", Username: "ghost", CreatedAt: time.Now()})
	s.ErrorIs(err, apperrors.ErrStore)
}

func (s *RepositoryTestSuite) TestPing() {
	s.NoError(s.repos.Health.Ping(s.ctx))
}
