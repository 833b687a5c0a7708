package payments

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

const referencePlaceholder = "{reference}"

// CheckoutService создает Stripe Checkout Session для оплаты депозита
type CheckoutService struct {
	sessions sessionCreator
	cfg      Config
	log      Logger
}

// NewCheckoutService создает сервис оплаты
// В режиме DryRun Stripe не вызывается и возвращается фиктивная ссылка
func NewCheckoutService(cfg Config, log Logger) *CheckoutService {
	if cfg.Currency == "" {
		cfg.Currency = string(stripe.CurrencyGBP)
	}

	var sessions sessionCreator
	if !cfg.DryRun {
		sessions = client.New(cfg.SecretKey, nil).CheckoutSessions
	}

	return &CheckoutService{sessions: sessions, cfg: cfg, log: log}
}

// CreateDepositCheckout создает сессию оплаты депозита по бронированию
func (s *CheckoutService) CreateDepositCheckout(ctx context.Context, booking *domain.Booking) (*Checkout, error) {
	if booking.DepositGBP == nil || *booking.DepositGBP <= 0 {
		return nil, ErrNoDeposit
	}

	amount := toMinorUnits(*booking.DepositGBP)

	if s.sessions == nil {
		fakeID := "cs_dryrun_" + uuid.New().String()[:8]
		s.log.Info("Stripe dry run: skipping checkout for booking %s, amount=%d", booking.Reference, amount)
		return &Checkout{
			SessionID: fakeID,
			URL:       "https://checkout.stripe.com/dry-run/" + fakeID,
		}, nil
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(withReference(s.cfg.SuccessURL, booking.Reference)),
		CancelURL:         stripe.String(withReference(s.cfg.CancelURL, booking.Reference)),
		ClientReferenceID: stripe.String(booking.Reference),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(s.cfg.Currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Booking deposit %s", booking.Reference)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if email := strings.TrimSpace(booking.Details.Email); email != "" {
		params.CustomerEmail = stripe.String(email)
	}
	params.Context = ctx
	params.AddMetadata("booking_reference", booking.Reference)
	params.AddMetadata("booking_id", fmt.Sprintf("%d", booking.ID))

	session, err := s.sessions.New(params)
	if err != nil {
		s.log.Error("Stripe checkout failed for booking %s: %v", booking.Reference, err)
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("%w: session %s has no url", ErrCheckoutFailed, session.ID)
	}

	s.log.Info("Created checkout session %s for booking %s", session.ID, booking.Reference)
	return &Checkout{SessionID: session.ID, URL: session.URL}, nil
}

func withReference(template, reference string) string {
	return strings.ReplaceAll(template, referencePlaceholder, reference)
}

func toMinorUnits(gbp float64) int64 {
	return int64(math.Round(gbp * 100))
}
