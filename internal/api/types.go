package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/medcare/clinic-management/internal/clinic"
)

type CreatePatientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	DateOfBirth string `json:"date_of_birth"`
}

type CreateAppointmentRequest struct {
	PatientID int64                    `json:"patient_id"`
	DoctorID  int64                    `json:"doctor_id"`
	Date      string                   `json:"date"`
	Status    clinic.AppointmentStatus `json:"status"`
	Type      clinic.AppointmentType   `json:"appointment_type"`
	Notes     string                   `json:"notes"`
}

type CreatePaymentRequest struct {
	PatientID     int64                `json:"patient_id"`
	AppointmentID int64                `json:"appointment_id"`
	Amount        float64              `json:"amount"`
	Method        clinic.PaymentMethod `json:"method"`
	Status        clinic.PaymentStatus `json:"status"`
	Notes         string               `json:"notes"`
}

type PostChatMessageRequest struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

type PriceEstimateResponse struct {
	Specialty string                 `json:"specialty"`
	Type      clinic.AppointmentType `json:"appointment_type"`
	Estimate  float64                `json:"estimate"`
}

// ExportResponse is the downloadable boundary document: the four mutable
// collections plus an export timestamp.
type ExportResponse struct {
	ExportID   uuid.UUID `json:"export_id"`
	ExportedAt time.Time `json:"exported_at"`
	clinic.Snapshot
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
