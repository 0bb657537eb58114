package roomstatus

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms/:id/transitions", h.GetTransitions)
	rg.PATCH("/rooms/:id/status", h.PatchStatus)
	rg.GET("/housekeeping/board", h.GetBoard)
}

func (h *Handler) GetTransitions(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || roomID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room id")
		return
	}

	report, err := h.service.ValidTransitions(c.Request.Context(), roomID)
	if err != nil {
		switch err {
		case ErrRoomNotFound:
			response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "No room with that id")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute transitions")
		}
		return
	}

	response.Success(c, http.StatusOK, report)
}

func (h *Handler) PatchStatus(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || roomID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room id")
		return
	}

	var req ApplyTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor := actorFromContext(c)
	room, err := h.service.ApplyTransition(c.Request.Context(), roomID, domain.RoomStatus(req.Status), actor, req.Force)
	if err != nil {
		var transErr *TransitionError
		switch {
		case errors.As(err, &transErr):
			response.ErrorWithDetails(c, http.StatusConflict, "ILLEGAL_TRANSITION", transErr.Reason, gin.H{
				"from":       transErr.From,
				"to":         transErr.To,
				"suggestion": transErr.Suggestion,
			})
		case errors.Is(err, ErrValidation):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown room status",
				gin.H{"allowed": domain.AllRoomStatuses})
		case errors.Is(err, ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "No room with that id")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Forced overrides require a privileged role")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to change room status")
		}
		return
	}

	response.Success(c, http.StatusOK, room)
}

func (h *Handler) GetBoard(c *gin.Context) {
	var branchID int64
	if raw := c.Query("branch_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid branch id")
			return
		}
		branchID = id
	}

	var day time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	board, err := h.service.HousekeepingBoard(c.Request.Context(), branchID, day)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build housekeeping board")
		return
	}

	response.Success(c, http.StatusOK, board)
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
