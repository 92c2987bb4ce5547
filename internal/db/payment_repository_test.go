package db_test

import (
	"context"
	"log"
	"testing"
	"time"

	"payment-service/internal/db"
	"payment-service/internal/payment"
	"payment-service/internal/testhelpers"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PaymentRepositoryTestSuite struct {
	suite.Suite
	pgContainer *testhelpers.PostgresContainer
	pool        *pgxpool.Pool
	sut         *db.PaymentRepository
	ctx         context.Context
}

func (s *PaymentRepositoryTestSuite) SetupSuite() {
	time.Local = time.UTC

	s.ctx = context.Background()
	pgContainer, err := testhelpers.CreatePostgresContainer(s.ctx)
	if err != nil {
		log.Fatal(err)
	}
	s.pgContainer = pgContainer

	db.RunMigrations(pgContainer.ConnectionString, "../../migrations")

	pool, err := db.GetPool(pgContainer.ConnectionString)
	if err != nil {
		log.Fatal(err)
	}

	s.pool = pool
	s.sut = db.NewPaymentRepository(pool)
}

func (s *PaymentRepositoryTestSuite) TearDownSuite() {
	s.pool.Close()

	if err := s.pgContainer.Terminate(s.ctx); err != nil {
		log.Fatalf("error terminating postgres container: %s", err)
	}
}

func (s *PaymentRepositoryTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "DELETE FROM payment")
	if err != nil {
		log.Fatalf("error truncating payment table: %s", err)
	}
}

func (s *PaymentRepositoryTestSuite) TestCreate() {
	t := s.T()

	created, err := s.sut.Create(s.ctx, payment.New(25.50, 1, payment.StatusPending))
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.WithinDuration(t, time.Now(), created.RequestedAt, time.Second)
}

func (s *PaymentRepositoryTestSuite) TestFindByID() {
	t := s.T()

	created, err := s.sut.Create(s.ctx, payment.New(25.50, 1, payment.StatusPaid))
	assert.NoError(t, err)

	found, err := s.sut.FindByID(s.ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, 25.50, found.Amount)
	assert.Equal(t, payment.StatusPaid, found.Status)
}

func (s *PaymentRepositoryTestSuite) TestFindByID_NotFound() {
	t := s.T()

	_, err := s.sut.FindByID(s.ctx, uuid.New())
	assert.ErrorIs(t, err, payment.ErrNotFound)
}

func (s *PaymentRepositoryTestSuite) TestFindByStatus() {
	t := s.T()

	_, err := s.sut.Create(s.ctx, payment.New(10, 1, payment.StatusPending))
	assert.NoError(t, err)
	_, err = s.sut.Create(s.ctx, payment.New(20, 2, payment.StatusPaid))
	assert.NoError(t, err)

	pending, err := s.sut.FindByStatus(s.ctx, payment.StatusPending)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RiderID)
}

func (s *PaymentRepositoryTestSuite) TestSaveAll() {
	t := s.T()

	first, err := s.sut.Create(s.ctx, payment.New(10, 1, payment.StatusPending))
	assert.NoError(t, err)
	second, err := s.sut.Create(s.ctx, payment.New(20, 2, payment.StatusPending))
	assert.NoError(t, err)

	first.Status = payment.StatusPaid
	second.Status = payment.StatusFailed

	saved, err := s.sut.SaveAll(s.ctx, []*payment.Payment{first, second})
	assert.NoError(t, err)
	assert.Len(t, saved, 2)

	stored, err := s.sut.FindByID(s.ctx, first.ID)
	assert.NoError(t, err)
	assert.Equal(t, payment.StatusPaid, stored.Status)
}

func (s *PaymentRepositoryTestSuite) TestSaveAll_SkipsAlreadyFinalizedRows() {
	t := s.T()

	created, err := s.sut.Create(s.ctx, payment.New(10, 1, payment.StatusPending))
	assert.NoError(t, err)

	created.Status = payment.StatusPaid
	saved, err := s.sut.SaveAll(s.ctx, []*payment.Payment{created})
	assert.NoError(t, err)
	assert.Len(t, saved, 1)

	// a second finalization attempt must not touch the terminal row
	created.Status = payment.StatusFailed
	saved, err = s.sut.SaveAll(s.ctx, []*payment.Payment{created})
	assert.NoError(t, err)
	assert.Empty(t, saved)

	stored, err := s.sut.FindByID(s.ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, payment.StatusPaid, stored.Status)
}

func TestPaymentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentRepositoryTestSuite))
}
