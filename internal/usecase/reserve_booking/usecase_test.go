package reserve_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MobileDiagnostics/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/events"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/payments"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/usecase/get_availability"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/logger"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/ptr"
)

type mockRepo struct {
	create            func(b *domain.Booking) (*domain.Booking, error)
	blocking          []*domain.Booking
	blockingErr       error
	statusUpdates     []domain.BookingStatus
	reasons           []*string
	paymentSessionIDs []string
}

func (m *mockRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	return m.create(b)
}

func (m *mockRepo) FindBlocking(context.Context, time.Time, time.Time) ([]*domain.Booking, error) {
	return m.blocking, m.blockingErr
}

func (m *mockRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus, reason *string) error {
	m.statusUpdates = append(m.statusUpdates, status)
	m.reasons = append(m.reasons, reason)
	return nil
}

func (m *mockRepo) SetPaymentSession(_ context.Context, _ int64, sessionID string) error {
	m.paymentSessionIDs = append(m.paymentSessionIDs, sessionID)
	return nil
}

type mockAvailability struct {
	result *domain.AvailabilityResult
	err    error
	max    int
	req    *get_availability.Request
}

func (m *mockAvailability) Execute(_ context.Context, req *get_availability.Request) (*domain.AvailabilityResult, error) {
	m.req = req
	return m.result, m.err
}

func (m *mockAvailability) MaxConcurrentBookings() int { return m.max }

type mockPayments struct {
	checkout *payments.Checkout
	err      error
	calls    int
}

func (m *mockPayments) CreateDepositCheckout(context.Context, *domain.Booking) (*payments.Checkout, error) {
	m.calls++
	return m.checkout, m.err
}

type mockPublisher struct {
	keys []string
	err  error
}

func (m *mockPublisher) Publish(_ context.Context, key string, _ any) error {
	m.keys = append(m.keys, key)
	return m.err
}

type mockTx struct{ err error }

func (m mockTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

type recordingMetrics struct{ statuses []string }

func (m *recordingMetrics) ObserveReservation(status string) {
	m.statuses = append(m.statuses, status)
}

var slot = time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)

func validDetails() domain.BookingDetails {
	return domain.BookingDetails{
		Name:                  " Jane Smith ",
		Email:                 "Jane@Example.com",
		Phone:                 "07700 900123",
		Postcode:              "tn23 1aa",
		AddressLine1:          "1 High Street",
		Town:                  "Ashford",
		VehicleRegistration:   "ab12 cde",
		VehicleMake:           "Ford",
		VehicleModel:          "Focus",
		Mileage:               "54000",
		Symptoms:              "Engine warning light",
		SafeLocationConfirmed: true,
	}
}

func zoneBResult() *domain.AvailabilityResult {
	return &domain.AvailabilityResult{
		Postcode:             "TN23 1AA",
		Zone:                 domain.ZoneB,
		DriveTimeMinutes:     34,
		TravelBufferMinutes:  45,
		TotalDurationMinutes: 105,
		Price:                domain.FixedPrice(135),
		Deposit:              ptr.Ptr(30.0),
		Slots: []domain.Slot{
			{Start: slot, Available: true},
			{Start: slot.Add(30 * time.Minute), Available: false},
		},
	}
}

type fixture struct {
	repo      *mockRepo
	avail     *mockAvailability
	payments  *mockPayments
	publisher *mockPublisher
	metrics   *recordingMetrics
	tx        mockTx
}

func newFixture() *fixture {
	return &fixture{
		repo: &mockRepo{create: func(b *domain.Booking) (*domain.Booking, error) {
			out := *b
			out.ID = 42
			return &out, nil
		}},
		avail:     &mockAvailability{result: zoneBResult(), max: 1},
		payments:  &mockPayments{checkout: &payments.Checkout{SessionID: "cs_test_1", URL: "https://checkout.stripe.com/c/cs_test_1"}},
		publisher: &mockPublisher{},
		metrics:   &recordingMetrics{},
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(f.repo, f.avail, f.payments, f.publisher, f.tx, f.metrics, logger.NewNop())
	uc.newReference = func() string { return "MD-TEST0001" }
	return uc
}

func TestExecute_PendingDeposit(t *testing.T) {
	f := newFixture()
	var stored *domain.Booking
	f.repo.create = func(b *domain.Booking) (*domain.Booking, error) {
		stored = b
		out := *b
		out.ID = 42
		return &out, nil
	}

	resp, err := f.useCase().Execute(context.Background(), &Request{
		ServiceIDs: []string{"diagnostic-callout"},
		Slot:       &slot,
		Details:    validDetails(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.BookingID)
	assert.Equal(t, domain.StatusPendingDeposit, resp.Status)
	assert.Equal(t, "MD-TEST0001", resp.Reference)
	assert.Equal(t, MsgPendingDeposit, resp.Message)
	assert.Equal(t, "https://checkout.stripe.com/c/cs_test_1", resp.PaymentURL)

	assert.Equal(t, "tn23 1aa", f.avail.req.Postcode)
	require.NotNil(t, stored)
	assert.Equal(t, "TN23 1AA", stored.Details.Postcode)
	assert.Equal(t, "Jane Smith", stored.Details.Name)
	assert.Equal(t, "jane@example.com", stored.Details.Email)
	assert.Equal(t, "AB12 CDE", stored.Details.VehicleRegistration)
	assert.Equal(t, 105, stored.DurationMinutes)
	assert.Equal(t, domain.ZoneB, stored.Zone)
	require.NotNil(t, stored.PriceGBP)
	assert.Equal(t, 135.0, *stored.PriceGBP)

	assert.Equal(t, []string{"cs_test_1"}, f.repo.paymentSessionIDs)
	assert.Equal(t, []string{events.BookingCreated}, f.publisher.keys)
	assert.Equal(t, []string{"pending_deposit"}, f.metrics.statuses)
}

func TestExecute_ConfirmedWithoutDeposit(t *testing.T) {
	f := newFixture()
	f.avail.result.Deposit = nil
	f.avail.result.Price = domain.QuoteRequired()

	resp, err := f.useCase().Execute(context.Background(), &Request{
		ServiceIDs: []string{"electrical-fault-finding"},
		Slot:       &slot,
		Details:    validDetails(),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, MsgConfirmed, resp.Message)
	assert.Empty(t, resp.PaymentURL)
	assert.Equal(t, 0, f.payments.calls)
}

func TestExecute_ManualReviewKeepsPreferredSlot(t *testing.T) {
	f := newFixture()
	f.avail.result = &domain.AvailabilityResult{
		Postcode:             "CT1 1AA",
		Zone:                 domain.ZoneOutside,
		DriveTimeMinutes:     75,
		TotalDurationMinutes: 150,
		Price:                domain.QuoteRequired(),
		ManualReviewRequired: true,
	}
	var stored *domain.Booking
	f.repo.create = func(b *domain.Booking) (*domain.Booking, error) {
		stored = b
		out := *b
		out.ID = 7
		return &out, nil
	}

	resp, err := f.useCase().Execute(context.Background(), &Request{
		ServiceIDs: []string{"diagnostic-callout"},
		Slot:       &slot,
		Details:    validDetails(),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingManualReview, resp.Status)
	assert.Equal(t, MsgManualReview, resp.Message)
	require.NotNil(t, stored.SlotStart)
	assert.True(t, slot.Equal(*stored.SlotStart))
	assert.Nil(t, stored.PriceGBP)
	assert.Nil(t, stored.DepositGBP)
	assert.Equal(t, 0, f.payments.calls)
}

func TestExecute_ManualReviewWithoutSlot(t *testing.T) {
	f := newFixture()
	f.avail.result = &domain.AvailabilityResult{Zone: domain.ZoneOutside, ManualReviewRequired: true}

	resp, err := f.useCase().Execute(context.Background(), &Request{
		ServiceIDs: []string{"diagnostic-callout"},
		Details:    validDetails(),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingManualReview, resp.Status)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     func() *Request
		wantErr error
	}{
		{
			name: "no services",
			req: func() *Request {
				return &Request{Slot: &slot, Details: validDetails()}
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "missing fields",
			req: func() *Request {
				d := validDetails()
				d.Email = "not-an-email"
				d.Mileage = " "
				return &Request{ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: d}
			},
			wantErr: ErrIncompleteDetails,
		},
		{
			name: "safe location not confirmed",
			req: func() *Request {
				d := validDetails()
				d.SafeLocationConfirmed = false
				return &Request{ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: d}
			},
			wantErr: ErrSafeLocationUnconfirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.useCase().Execute(context.Background(), tt.req())

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, f.avail.req)
		})
	}
}

func TestExecute_MissingFieldsMessage(t *testing.T) {
	f := newFixture()
	d := validDetails()
	d.Email = "not-an-email"
	d.Mileage = ""

	_, err := f.useCase().Execute(context.Background(), &Request{
		ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: d,
	})

	var incomplete *IncompleteDetailsError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{domain.FieldEmail, domain.FieldMileage}, incomplete.Missing)
}

func TestExecute_AvailabilityErrorsPassThrough(t *testing.T) {
	f := newFixture()
	f.avail.err = get_availability.ErrNotCovered

	_, err := f.useCase().Execute(context.Background(), &Request{
		ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
	})

	assert.ErrorIs(t, err, get_availability.ErrNotCovered)
}

func TestExecute_AvailabilityInternalError(t *testing.T) {
	f := newFixture()
	f.avail.err = get_availability.ErrInternal

	_, err := f.useCase().Execute(context.Background(), &Request{
		ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
	})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_SlotChecks(t *testing.T) {
	t.Run("slot required", func(t *testing.T) {
		f := newFixture()

		_, err := f.useCase().Execute(context.Background(), &Request{
			ServiceIDs: []string{"diagnostic-callout"}, Details: validDetails(),
		})

		assert.ErrorIs(t, err, ErrSlotRequired)
	})

	t.Run("slot not offered", func(t *testing.T) {
		f := newFixture()
		unavailable := slot.Add(30 * time.Minute)

		_, err := f.useCase().Execute(context.Background(), &Request{
			ServiceIDs: []string{"diagnostic-callout"}, Slot: &unavailable, Details: validDetails(),
		})

		assert.ErrorIs(t, err, ErrSlotNotOffered)
	})

	t.Run("slot taken inside transaction", func(t *testing.T) {
		f := newFixture()
		other := slot.Add(-60 * time.Minute)
		f.repo.blocking = []*domain.Booking{
			{ID: 1, SlotStart: &other, DurationMinutes: 90, Status: domain.StatusConfirmed},
		}

		_, err := f.useCase().Execute(context.Background(), &Request{
			ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
		})

		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Empty(t, f.publisher.keys)
	})

	t.Run("capacity allows second visit", func(t *testing.T) {
		f := newFixture()
		f.avail.max = 2
		f.repo.blocking = []*domain.Booking{
			{ID: 1, SlotStart: &slot, DurationMinutes: 60, Status: domain.StatusConfirmed},
		}

		resp, err := f.useCase().Execute(context.Background(), &Request{
			ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPendingDeposit, resp.Status)
	})

	t.Run("serialization failure", func(t *testing.T) {
		f := newFixture()
		f.tx = mockTx{err: &pq.Error{Code: "40001"}}

		_, err := f.useCase().Execute(context.Background(), &Request{
			ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
		})

		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("serialization failure on insert", func(t *testing.T) {
		f := newFixture()
		f.repo.create = func(*domain.Booking) (*domain.Booking, error) {
			return nil, fmt.Errorf("%w: Create - execute insert: %w", bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})
		}

		_, err := f.useCase().Execute(context.Background(), &Request{
			ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
		})

		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.NotErrorIs(t, err, ErrInternal)
		assert.Empty(t, f.publisher.keys)
	})

	t.Run("serialization failure on overlap read", func(t *testing.T) {
		f := newFixture()
		f.repo.blockingErr = fmt.Errorf("%w: FindBlocking - execute query: %w", bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})

		_, err := f.useCase().Execute(context.Background(), &Request{
			ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
		})

		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("other insert error stays internal", func(t *testing.T) {
		f := newFixture()
		f.repo.create = func(*domain.Booking) (*domain.Booking, error) {
			return nil, fmt.Errorf("%w: Create - execute insert: %w", bookingRepo.ErrExecQuery, errors.New("connection reset"))
		}

		_, err := f.useCase().Execute(context.Background(), &Request{
			ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
		})

		assert.ErrorIs(t, err, ErrInternal)
		assert.NotErrorIs(t, err, ErrSlotTaken)
	})
}

func TestExecute_ReferenceCollisionRetries(t *testing.T) {
	f := newFixture()
	calls := 0
	f.repo.create = func(b *domain.Booking) (*domain.Booking, error) {
		calls++
		if calls == 1 {
			return nil, bookingRepo.ErrDuplicateReference
		}
		out := *b
		out.ID = 43
		return &out, nil
	}

	resp, err := f.useCase().Execute(context.Background(), &Request{
		ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(43), resp.BookingID)
}

func TestExecute_ReferenceCollisionGivesUp(t *testing.T) {
	f := newFixture()
	calls := 0
	f.repo.create = func(*domain.Booking) (*domain.Booking, error) {
		calls++
		return nil, bookingRepo.ErrDuplicateReference
	}

	_, err := f.useCase().Execute(context.Background(), &Request{
		ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
	})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, referenceAttempts, calls)
}

func TestExecute_CheckoutFailureCancelsBooking(t *testing.T) {
	f := newFixture()
	f.payments.checkout = nil
	f.payments.err = errors.New("stripe: unavailable")

	_, err := f.useCase().Execute(context.Background(), &Request{
		ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
	})

	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	assert.Equal(t, []domain.BookingStatus{domain.StatusCancelled}, f.repo.statusUpdates)
	require.NotNil(t, f.repo.reasons[0])
	assert.Equal(t, checkoutFailure, *f.repo.reasons[0])
	assert.Empty(t, f.publisher.keys)
	assert.Equal(t, []string{"payment_failed"}, f.metrics.statuses)
}

func TestExecute_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("amqp: closed")

	resp, err := f.useCase().Execute(context.Background(), &Request{
		ServiceIDs: []string{"diagnostic-callout"}, Slot: &slot, Details: validDetails(),
	})

	require.NoError(t, err)
	assert.Equal(t, "MD-TEST0001", resp.Reference)
}

func TestGenerateReference(t *testing.T) {
	ref := generateReference()

	assert.Regexp(t, `^MD-[0-9A-F]{8}$`, ref)
	assert.NotEqual(t, ref, generateReference())
}
