package reserve_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	getAvailability "github.com/m04kA/SMC-MobileDiagnostics/internal/usecase/get_availability"
	reserveBooking "github.com/m04kA/SMC-MobileDiagnostics/internal/usecase/reserve_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidSlot        = "slot must be an RFC 3339 date-time"
	msgInvalidInput       = "Please check your booking details"
	msgSlotRequired       = "Please choose a time slot"
	msgSlotNotOffered     = "That time is no longer offered"
	msgSlotTaken          = "Sorry, that slot has just been taken"
	msgPaymentFailed      = "We couldn't start the deposit payment. Please try again."
	msgInvalidPostcode    = "Please enter a valid UK postcode"
	msgNotCovered         = "Sorry, we don't currently cover this postcode"
	msgUnknownService     = "Unknown service: "
)

type Handler struct {
	useCase ReserveBookingUseCase
	logger  Logger
}

func NewHandler(useCase ReserveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/booking/reserve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/reserve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /booking/reserve - Invalid slot %q: %v", req.Slot, err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var (
			incomplete *reserveBooking.IncompleteDetailsError
			unknown    *getAvailability.UnknownServiceError
		)
		switch {
		case errors.As(err, &incomplete):
			h.logger.Warn("POST /booking/reserve - Incomplete details: %v", incomplete.Missing)
			handlers.RespondBadRequest(w, incomplete.Error())

		case errors.Is(err, reserveBooking.ErrSafeLocationUnconfirmed):
			h.logger.Warn("POST /booking/reserve - Safe location not confirmed")
			handlers.RespondBadRequest(w, domain.SafeLocationMessage)

		case errors.As(err, &unknown):
			h.logger.Warn("POST /booking/reserve - Unknown service: %s", unknown.ID)
			handlers.RespondBadRequest(w, msgUnknownService+unknown.ID)

		case errors.Is(err, getAvailability.ErrInvalidPostcode):
			h.logger.Warn("POST /booking/reserve - Invalid postcode: %q", req.Postcode)
			handlers.RespondBadRequest(w, msgInvalidPostcode)

		case errors.Is(err, getAvailability.ErrNotCovered):
			h.logger.Warn("POST /booking/reserve - Postcode not covered: %q", req.Postcode)
			handlers.RespondUnprocessable(w, msgNotCovered)

		case errors.Is(err, reserveBooking.ErrInvalidInput), errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("POST /booking/reserve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reserveBooking.ErrSlotRequired):
			h.logger.Warn("POST /booking/reserve - Slot missing")
			handlers.RespondBadRequest(w, msgSlotRequired)

		case errors.Is(err, reserveBooking.ErrSlotNotOffered):
			h.logger.Warn("POST /booking/reserve - Slot not offered: %s", req.Slot)
			handlers.RespondBadRequest(w, msgSlotNotOffered)

		case errors.Is(err, reserveBooking.ErrSlotTaken):
			h.logger.Warn("POST /booking/reserve - Slot taken: %s", req.Slot)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, reserveBooking.ErrPaymentUnavailable):
			h.logger.Error("POST /booking/reserve - Deposit checkout failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentFailed)

		default:
			h.logger.Error("POST /booking/reserve - Failed to reserve booking: postcode=%q, error=%v", req.Postcode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking/reserve - Booking created successfully: booking_id=%d, ref=%s, status=%s",
		result.BookingID, result.Reference, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
