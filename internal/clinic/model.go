package clinic

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "Scheduled"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

type AppointmentType string

const (
	TypeConsultation AppointmentType = "consultation"
	TypeFollowUp     AppointmentType = "follow-up"
	TypeEmergency    AppointmentType = "emergency"
	TypeSurgery      AppointmentType = "surgery"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "Completed"
	PaymentPending   PaymentStatus = "Pending"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "Credit Card"
	MethodDebitCard    PaymentMethod = "Debit Card"
	MethodCash         PaymentMethod = "Cash"
	MethodInsurance    PaymentMethod = "Insurance"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCheck        PaymentMethod = "Check"
)

type MessageType string

const (
	MessageUser   MessageType = "user"
	MessageBot    MessageType = "bot"
	MessageSystem MessageType = "system"
)

type Patient struct {
	ID          int64     `json:"patient_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	City        string    `json:"city"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Doctor records are seeded at startup and immutable; they are never
// persisted as part of a snapshot.
type Doctor struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Specialty    string   `json:"specialty"`
	Availability []string `json:"availability"`
}

// Appointment.Date is an ISO-8601 local date-time string, e.g.
// "2024-01-15T10:00". No timezone handling is applied.
type Appointment struct {
	ID        int64             `json:"id"`
	PatientID int64             `json:"patient_id"`
	DoctorID  int64             `json:"doctor_id"`
	Date      string            `json:"date"`
	Status    AppointmentStatus `json:"status"`
	Type      AppointmentType   `json:"appointment_type,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Payment amounts are signed; a negative amount records a refund.
// AppointmentID is a weak reference and may be zero.
type Payment struct {
	ID            int64         `json:"id"`
	PatientID     int64         `json:"patient_id"`
	AppointmentID int64         `json:"appointment_id,omitempty"`
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	Date          time.Time     `json:"date"`
}

type ChatMessage struct {
	ID        int64       `json:"id"`
	Type      MessageType `json:"type"`
	Sender    string      `json:"sender"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// PatientUpdate is a partial update: nil fields are left unchanged,
// non-nil fields are set.
type PatientUpdate struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	City        *string `json:"city,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
}

type AppointmentUpdate struct {
	DoctorID *int64             `json:"doctor_id,omitempty"`
	Date     *string            `json:"date,omitempty"`
	Status   *AppointmentStatus `json:"status,omitempty"`
	Type     *AppointmentType   `json:"appointment_type,omitempty"`
	Notes    *string            `json:"notes,omitempty"`
}

type PaymentUpdate struct {
	Status *PaymentStatus `json:"status,omitempty"`
	Notes  *string        `json:"notes,omitempty"`
}

// Statistics aggregates the whole store. Revenue sums signed amounts, so
// refunds subtract.
type Statistics struct {
	TotalPatients         int     `json:"total_patients"`
	TotalAppointments     int     `json:"total_appointments"`
	CompletedAppointments int     `json:"completed_appointments"`
	TotalRevenue          float64 `json:"total_revenue"`
	AveragePayment        float64 `json:"average_payment"`
}

// Snapshot is the unit of persistence: the four mutable collections,
// serialized and reloaded as one document. Doctors are excluded.
type Snapshot struct {
	Patients     []Patient     `json:"patients"`
	Appointments []Appointment `json:"appointments"`
	Payments     []Payment     `json:"payments"`
	ChatMessages []ChatMessage `json:"chatMessages"`
}
