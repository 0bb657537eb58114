package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/pkg/response"
	"hoteldesk/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PATCH("/bookings/:id/status", h.UpdateStatus)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		var overlapErr *OverlapError
		var advanceErr *MinAdvanceError
		switch {
		case errors.As(err, &overlapErr):
			response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_OVERLAP",
				"Room already booked for an overlapping date range",
				gin.H{"room_id": overlapErr.RoomID, "conflicts": overlapErr.Conflicts})
		case errors.As(err, &advanceErr):
			response.ErrorWithDetails(c, http.StatusBadRequest, "ADVANCE_TOO_LOW",
				"Advance payment below the required minimum",
				gin.H{"provided": advanceErr.Provided, "required": advanceErr.Required})
		case errors.Is(err, ErrUnknownGuest):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_GUEST", "No guest with that id")
		case errors.Is(err, ErrUnknownRoom):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_ROOM", "No room with that id")
		case errors.Is(err, ErrRoomUnavailable):
			response.Error(c, http.StatusConflict, "ROOM_UNAVAILABLE", "Room is retired or under maintenance")
		case errors.Is(err, ErrInvalidMethod):
			response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_METHOD", "Invalid payment method",
				gin.H{"allowed": []string{"Cash", "Card", "Online"}})
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Dates must be YYYY-MM-DD with check-in before checkout, rate positive, advance non-negative")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "No booking with that id")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		}
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor := actorFromContext(c)
	b, err := h.service.UpdateStatus(c.Request.Context(), id, domain.BookingStatus(req.Status), actor)
	if err != nil {
		var statusErr *StatusError
		switch {
		case errors.As(err, &statusErr):
			response.ErrorWithDetails(c, http.StatusConflict, "ILLEGAL_TRANSITION",
				"Booking cannot move to that status",
				gin.H{"from": statusErr.From, "to": statusErr.To})
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "No booking with that id")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown booking status")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking status")
		}
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListBookings(c *gin.Context) {
	f := repository.BookingFilter{}
	if raw := c.Query("room_id"); raw != "" {
		f.RoomID, _ = strconv.ParseInt(raw, 10, 64)
	}
	if raw := c.Query("guest_id"); raw != "" {
		f.GuestID, _ = strconv.ParseInt(raw, 10, 64)
	}
	if raw := c.Query("status"); raw != "" {
		f.Status = domain.BookingStatus(raw)
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be YYYY-MM-DD")
			return
		}
		f.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "to must be YYYY-MM-DD")
			return
		}
		f.To = t
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if f.Offset < 0 {
		f.Offset = 0
	}

	result, err := h.service.ListBookings(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func actorFromContext(c *gin.Context) domain.Actor {
	actor := domain.Actor{}
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int64); ok {
			actor.UserID = id
		}
	}
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			actor.Role = domain.Role(role)
		}
	}
	return actor
}
