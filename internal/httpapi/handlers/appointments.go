package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

func (h *Handler) ListAppointmentsByPatient(c *gin.Context) {
	pid, ok := pathID(c, "patientId")
	if !ok {
		return
	}
	as, err := h.Repo.ListAppointmentsByPatient(c.Request.Context(), pid)
	h.respond(c, as, err)
}

func (h *Handler) ListUpcomingAppointments(c *gin.Context) {
	as, err := h.Repo.ListUpcomingAppointments(c.Request.Context(), h.now())
	h.respond(c, as, err)
}

type createAppointmentReq struct {
	PatientID   uint64    `json:"patientId" binding:"required"`
	DoctorName  string    `json:"doctorName" binding:"required,max=255"`
	Specialty   *string   `json:"specialty" binding:"omitempty,max=100"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Notes       *string   `json:"notes"`
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req createAppointmentReq
	if !bind(c, &req) {
		return
	}
	a := &models.Appointment{
		PatientID:   req.PatientID,
		DoctorName:  req.DoctorName,
		Specialty:   req.Specialty,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	}
	h.ack(c, h.Repo.CreateAppointment(c.Request.Context(), a))
}

type updateAppointmentStatusReq struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=scheduled confirmed cancelled completed"`
}

func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateAppointmentStatusReq
	if !bind(c, &req) {
		return
	}
	h.ack(c, h.Repo.UpdateAppointmentStatus(c.Request.Context(), id, req.Status))
}
