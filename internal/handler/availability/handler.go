package availability

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edoc/booking-api/internal/handler"
	"github.com/edoc/booking-api/internal/service/availability"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/appointments/free", h.SearchFreeSlots)
}

type searchQuery struct {
	Since     string `form:"since" binding:"required"`
	City      string `form:"city" binding:"required"`
	Specialty string `form:"specialty" binding:"required"`
	Clinic    string `form:"clinic"`
	Doctor    string `form:"doctor"`
}

func (h *Handler) SearchFreeSlots(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	since, err := time.Parse(dateLayout, q.Since)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid since date, expected YYYY-MM-DD"))
		return
	}

	slots, err := h.service.Search(c.Request.Context(), availability.SearchCriteria{
		Since:      since,
		City:       q.City,
		Specialty:  q.Specialty,
		ClinicName: q.Clinic,
		DoctorName: q.Doctor,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}
