package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "petcare/database/repository/appointment"
	"petcare/models"
	"petcare/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes read and status-transition endpoints for
// appointment records created by the chat flow.
type AppointmentHandler struct {
	Repo appointmentRepo.AppointmentRepository
}

// NewAppointmentHandler creates an AppointmentHandler.
func NewAppointmentHandler(repo appointmentRepo.AppointmentRepository) *AppointmentHandler {
	return &AppointmentHandler{Repo: repo}
}

// GetAppointment fetches an appointment by id.
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	appt, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Appointment not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to retrieve appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListSessionAppointments returns the appointments created from a session.
func (h *AppointmentHandler) ListSessionAppointments(c *gin.Context) {
	appts, err := h.Repo.ListBySessionID(c.Param("sessionId"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// UpdateAppointmentStatus transitions an appointment's status.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	switch input.Status {
	case models.AppointmentPending, models.AppointmentConfirmed, models.AppointmentCancelled:
	default:
		utils.JSONError(c, http.StatusBadRequest, "Invalid status", input.Status)
		return
	}

	if err := h.Repo.UpdateStatus(c.Param("id"), input.Status); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Appointment not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": input.Status})
}
