package availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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
	rg.GET("/rooms/free", h.GetFreeRooms)
	rg.GET("/rooms/:id/availability", h.CheckRoom)
}

func (h *Handler) GetFreeRooms(c *gin.Context) {
	f := repository.FreeRoomFilter{}
	if raw := c.Query("room_type_id"); raw != "" {
		f.RoomTypeID, _ = strconv.ParseInt(raw, 10, 64)
	}
	if raw := c.Query("capacity"); raw != "" {
		f.Capacity, _ = strconv.Atoi(raw)
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.service.FreeRooms(c.Request.Context(), c.Query("check_in"), c.Query("check_out"), f)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"check_in and check_out must be YYYY-MM-DD with check_in before check_out")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list free rooms")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) CheckRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || roomID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room id")
		return
	}

	result, err := h.service.CheckRoom(c.Request.Context(), roomID, c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"check_in and check_out must be YYYY-MM-DD with check_in before check_out")
		case errors.Is(err, ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "No room with that id")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check availability")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}
