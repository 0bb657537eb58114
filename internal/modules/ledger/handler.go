package ledger

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hoteldesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.RecordPayment)
	rg.POST("/payments/adjustment", h.RecordAdjustment)
	rg.GET("/payments/:bookingId", h.GetLedger)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.RecordPayment(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidAmount:
			response.Error(c, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be a positive number")
		case ErrInvalidMethod:
			response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_METHOD", "Invalid payment method",
				gin.H{"allowed": []string{"Cash", "Card", "Online"}})
		case ErrUnknownBooking:
			response.Error(c, http.StatusBadRequest, "UNKNOWN_BOOKING", "No booking with that id")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record payment")
		}
		return
	}

	status := http.StatusCreated
	if result.Idempotent {
		status = http.StatusOK
	}
	response.Success(c, status, result)
}

func (h *Handler) RecordAdjustment(c *gin.Context) {
	var req RecordAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.RecordAdjustment(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidAmount:
			response.Error(c, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be a non-zero number")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown adjustment type")
		case ErrUnknownBooking:
			response.Error(c, http.StatusBadRequest, "UNKNOWN_BOOKING", "No booking with that id")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record adjustment")
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) GetLedger(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	view, err := h.service.Ledger(c.Request.Context(), bookingID)
	if err != nil {
		switch err {
		case ErrUnknownBooking:
			response.Error(c, http.StatusNotFound, "UNKNOWN_BOOKING", "No booking with that id")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load ledger")
		}
		return
	}

	response.Success(c, http.StatusOK, view)
}
