package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/models"
)

type AppointmentListDTO struct {
	ID              uuid.UUID `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	DentistID       uuid.UUID `json:"dentist_id"`
	ScheduledTime   time.Time `json:"scheduled_time"`
	DurationMinutes int       `json:"duration_minutes"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
	PatientName     string    `json:"patient_name,omitempty"`
	PatientPhone    string    `json:"patient_phone,omitempty"`
	DentistName     string    `json:"dentist_name,omitempty"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:              ap.ID,
		PatientID:       ap.PatientID,
		DentistID:       ap.DentistID,
		ScheduledTime:   ap.ScheduledTime,
		DurationMinutes: ap.DurationMinutes,
		EndTime:         ap.EndTime(),
		Status:          ap.Status,
		Reason:          ap.Reason,
		PatientName:     ap.Patient.FullName(),
		PatientPhone:    ap.Patient.Phone,
		DentistName:     ap.Dentist.FullName,
	}
}

func FromAppointments(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
