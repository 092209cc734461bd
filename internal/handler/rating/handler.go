package rating

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edoc/booking-api/internal/handler"
	"github.com/edoc/booking-api/internal/service/rating"
)

type Handler struct {
	service *rating.Service
}

func NewHandler(service *rating.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/doctors/:id/ratings", h.ListDoctorRatings)
	rg.GET("/appointments/:id/rating", h.GetAppointmentRating)
}

func (h *Handler) ListDoctorRatings(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	ratings, err := h.service.ListForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(ratings))
}

func (h *Handler) GetAppointmentRating(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	rating, err := h.service.GetForAppointment(c.Request.Context(), appointmentID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rating))
}
