package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edoc/booking-api/internal/handler"
	"github.com/edoc/booking-api/internal/model"
	"github.com/edoc/booking-api/internal/service/booking"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/appointments", h.CreateAppointment)
	rg.GET("/appointments", h.ListAppointments)
	rg.GET("/appointments/booked", h.ListBookedTimes)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	appointment, err := h.service.Book(c.Request.Context(), clinicID, doctorID, req.StartTime, req.PESEL)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

type bookedTimesQuery struct {
	ClinicID string `form:"clinic_id" binding:"required,uuid"`
	DoctorID string `form:"doctor_id" binding:"required,uuid"`
	Date     string `form:"date" binding:"required"`
}

func (h *Handler) ListBookedTimes(c *gin.Context) {
	var q bookedTimesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	day, err := time.Parse(dateLayout, q.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
		return
	}

	clinicID, _ := uuid.Parse(q.ClinicID)
	doctorID, _ := uuid.Parse(q.DoctorID)

	times, err := h.service.BookedTimes(c.Request.Context(), clinicID, doctorID, day)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(times))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	pesel := c.Query("pesel")
	if pesel == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("pesel is required"))
		return
	}

	appointments, err := h.service.ListForPatient(c.Request.Context(), pesel)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}
