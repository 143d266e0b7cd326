// Package clinic holds the domain store: the in-memory authority for
// patients, doctors, appointments, payments, and the chat log. Every mutator
// persists a full snapshot through the storage backend before returning;
// persistence failures are logged and never propagated (best-effort
// durability, this is a client cache, not a system of record).
//
// The store enforces no referential integrity across collections: patient,
// doctor, and appointment identifiers held by other records are weak
// references, and deleting a patient leaves dangling references behind.
// CheckReferences reports them for callers who care.
package clinic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/medcare/clinic-management/internal/storage"
)

var (
	ErrPatientNotFound        = errors.New("patient not found")
	ErrDoctorNotFound         = errors.New("doctor not found")
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrPaymentAlreadyRefunded = errors.New("payment already refunded")
)

const (
	chatHistoryLimit = 50
	persistTimeout   = 5 * time.Second
)

// Store is constructed once by the composition root and handed to every
// panel; there is no ambient global instance.
type Store struct {
	mu      sync.Mutex
	backend storage.Backend

	patients     []Patient
	doctors      []Doctor
	appointments []Appointment
	payments     []Payment
	chatMessages []ChatMessage

	// idSeq is a store-local monotonic sequence seeded from the wall clock,
	// so identifiers stay unique even when two inserts land in the same
	// millisecond.
	idSeq int64
}

func New(backend storage.Backend) *Store {
	return &Store{
		backend: backend,
		doctors: seedDoctors(),
		idSeq:   time.Now().UnixMilli(),
	}
}

func (s *Store) nextID() int64 {
	s.idSeq++
	return s.idSeq
}

// persist serializes the mutable collections and saves them through the
// backend. Called with s.mu held. Failures are logged, not returned.
func (s *Store) persist() {
	snap := Snapshot{
		Patients:     s.patients,
		Appointments: s.appointments,
		Payments:     s.payments,
		ChatMessages: s.chatMessages,
	}

	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("failed to marshal snapshot: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.backend.Save(ctx, data); err != nil {
		log.Printf("failed to save snapshot: %v", err)
	}
}

// Save writes the current snapshot explicitly.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	snap := Snapshot{
		Patients:     s.patients,
		Appointments: s.appointments,
		Payments:     s.payments,
		ChatMessages: s.chatMessages,
	}
	s.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load replaces the mutable collections with the stored snapshot. A missing
// or unparseable snapshot leaves the current (seed) state untouched: absence
// returns nil, a bad document returns the error for the caller to log.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.backend.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoSnapshot) {
			return nil
		}
		return fmt.Errorf("load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Patients != nil {
		s.patients = snap.Patients
	}
	if snap.Appointments != nil {
		s.appointments = snap.Appointments
	}
	if snap.Payments != nil {
		s.payments = snap.Payments
	}
	if snap.ChatMessages != nil {
		s.chatMessages = snap.ChatMessages
	}
	s.advanceIDSeqLocked()

	return nil
}

// advanceIDSeqLocked bumps the sequence above every loaded identifier so
// future inserts cannot collide with imported records.
func (s *Store) advanceIDSeqLocked() {
	max := s.idSeq
	for _, p := range s.patients {
		if p.ID > max {
			max = p.ID
		}
	}
	for _, a := range s.appointments {
		if a.ID > max {
			max = a.ID
		}
	}
	for _, p := range s.payments {
		if p.ID > max {
			max = p.ID
		}
	}
	for _, m := range s.chatMessages {
		if m.ID > max {
			max = m.ID
		}
	}
	s.idSeq = max
}

// Patient management

// AddPatient assigns an identifier and creation timestamp and appends the
// record as given. The store performs no field validation; callers are
// trusted.
func (s *Store) AddPatient(p Patient) Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID()
	p.CreatedAt = time.Now()
	s.patients = append(s.patients, p)
	s.persist()
	return p
}

func (s *Store) GetPatient(id int64) (Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return Patient{}, ErrPatientNotFound
}

func (s *Store) Patients() []Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Patient(nil), s.patients...)
}

func (s *Store) UpdatePatient(id int64, upd PatientUpdate) (Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.patients {
		if s.patients[i].ID != id {
			continue
		}
		p := &s.patients[i]
		if upd.FirstName != nil {
			p.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			p.LastName = *upd.LastName
		}
		if upd.Email != nil {
			p.Email = *upd.Email
		}
		if upd.Phone != nil {
			p.Phone = *upd.Phone
		}
		if upd.City != nil {
			p.City = *upd.City
		}
		if upd.DateOfBirth != nil {
			p.DateOfBirth = *upd.DateOfBirth
		}
		s.persist()
		return *p, nil
	}
	return Patient{}, ErrPatientNotFound
}

// DeletePatient removes the record. Appointments and payments referencing the
// patient are left untouched.
func (s *Store) DeletePatient(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.patients {
		if s.patients[i].ID == id {
			s.patients = append(s.patients[:i], s.patients[i+1:]...)
			s.persist()
			return nil
		}
	}
	return ErrPatientNotFound
}

// SearchPatients matches the query case-insensitively as a substring of
// first name, last name, city, or email, preserving store order.
func (s *Store) SearchPatients(query string) []Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(query)
	var result []Patient
	for _, p := range s.patients {
		if strings.Contains(strings.ToLower(p.FirstName), term) ||
			strings.Contains(strings.ToLower(p.LastName), term) ||
			strings.Contains(strings.ToLower(p.City), term) ||
			strings.Contains(strings.ToLower(p.Email), term) {
			result = append(result, p)
		}
	}
	return result
}

// Appointment management

// AddAppointment assigns an identifier and creation timestamp. Status and
// type are stored as supplied; the appointment panel defaults them, the
// store does not.
func (s *Store) AddAppointment(a Appointment) Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextID()
	a.CreatedAt = time.Now()
	s.appointments = append(s.appointments, a)
	s.persist()
	return a
}

func (s *Store) GetAppointment(id int64) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, ErrAppointmentNotFound
}

func (s *Store) Appointments() []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Appointment(nil), s.appointments...)
}

// GetAppointmentsByPatient returns the patient's appointments in store
// order, not date order.
func (s *Store) GetAppointmentsByPatient(patientID int64) []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []Appointment
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	return result
}

func (s *Store) UpdateAppointment(id int64, upd AppointmentUpdate) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateAppointmentLocked(id, upd)
}

func (s *Store) updateAppointmentLocked(id int64, upd AppointmentUpdate) (Appointment, error) {
	for i := range s.appointments {
		if s.appointments[i].ID != id {
			continue
		}
		a := &s.appointments[i]
		if upd.DoctorID != nil {
			a.DoctorID = *upd.DoctorID
		}
		if upd.Date != nil {
			a.Date = *upd.Date
		}
		if upd.Status != nil {
			a.Status = *upd.Status
		}
		if upd.Type != nil {
			a.Type = *upd.Type
		}
		if upd.Notes != nil {
			a.Notes = *upd.Notes
		}
		s.persist()
		return *a, nil
	}
	return Appointment{}, ErrAppointmentNotFound
}

// CancelAppointment transitions the appointment to Cancelled. Appointments
// are never hard-deleted.
func (s *Store) CancelAppointment(id int64) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancelled := AppointmentCancelled
	return s.updateAppointmentLocked(id, AppointmentUpdate{Status: &cancelled})
}

// Payment management

// AddPayment assigns an identifier and stamps the payment with the current
// time, overwriting any caller-supplied date.
func (s *Store) AddPayment(p Payment) Payment {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.addPaymentLocked(p)
	s.persist()
	return created
}

func (s *Store) addPaymentLocked(p Payment) Payment {
	p.ID = s.nextID()
	p.Date = time.Now()
	s.payments = append(s.payments, p)
	return p
}

func (s *Store) GetPayment(id int64) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return Payment{}, ErrPaymentNotFound
}

func (s *Store) Payments() []Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Payment(nil), s.payments...)
}

func (s *Store) GetPaymentsByPatient(patientID int64) []Payment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []Payment
	for _, p := range s.payments {
		if p.PatientID == patientID {
			result = append(result, p)
		}
	}
	return result
}

func (s *Store) UpdatePayment(id int64, upd PaymentUpdate) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.updatePaymentLocked(id, upd)
	if err != nil {
		return Payment{}, err
	}
	s.persist()
	return p, nil
}

func (s *Store) updatePaymentLocked(id int64, upd PaymentUpdate) (Payment, error) {
	for i := range s.payments {
		if s.payments[i].ID != id {
			continue
		}
		p := &s.payments[i]
		if upd.Status != nil {
			p.Status = *upd.Status
		}
		if upd.Notes != nil {
			p.Notes = *upd.Notes
		}
		return *p, nil
	}
	return Payment{}, ErrPaymentNotFound
}

// RefundPayment records a compensating payment with the negated amount and
// transitions the original to Refunded. Both changes go through the store's
// normal insert/update paths and persist as one snapshot.
func (s *Store) RefundPayment(id int64) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var original *Payment
	for i := range s.payments {
		if s.payments[i].ID == id {
			original = &s.payments[i]
			break
		}
	}
	if original == nil {
		return Payment{}, ErrPaymentNotFound
	}
	if original.Status == PaymentRefunded {
		return Payment{}, ErrPaymentAlreadyRefunded
	}

	refund := s.addPaymentLocked(Payment{
		PatientID:     original.PatientID,
		AppointmentID: original.AppointmentID,
		Amount:        -original.Amount,
		Method:        original.Method,
		Status:        PaymentRefunded,
		Notes:         fmt.Sprintf("Refund for payment #%d", original.ID),
	})

	refunded := PaymentRefunded
	if _, err := s.updatePaymentLocked(id, PaymentUpdate{Status: &refunded}); err != nil {
		return Payment{}, err
	}

	s.persist()
	return refund, nil
}

// Doctor lookups

func (s *Store) Doctors() []Doctor {
	return append([]Doctor(nil), s.doctors...)
}

func (s *Store) GetDoctor(id int64) (Doctor, error) {
	for _, d := range s.doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return Doctor{}, ErrDoctorNotFound
}

// DoctorsBySpecialty matches the specialty name case-insensitively and
// exactly.
func (s *Store) DoctorsBySpecialty(specialty string) []Doctor {
	var result []Doctor
	for _, d := range s.doctors {
		if strings.EqualFold(d.Specialty, specialty) {
			result = append(result, d)
		}
	}
	return result
}

// AvailableDoctors returns doctors whose recurring weekly schedule includes
// the weekday of the given date. Existing appointments are not consulted.
func (s *Store) AvailableDoctors(date time.Time) []Doctor {
	var result []Doctor
	for _, d := range s.doctors {
		if d.availableOn(date) {
			result = append(result, d)
		}
	}
	return result
}

// EstimatePrice exposes the pricing rule on the store for panels that
// already hold one.
func (s *Store) EstimatePrice(specialty string, apptType AppointmentType) float64 {
	return EstimatePrice(specialty, apptType)
}

// Chat management

func (s *Store) AddChatMessage(m ChatMessage) ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextID()
	m.Timestamp = time.Now()
	s.chatMessages = append(s.chatMessages, m)
	s.persist()
	return m
}

// ChatHistory returns the most recent messages, oldest first, capped at 50.
// Older messages stay in the store and in snapshots.
func (s *Store) ChatHistory() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if len(s.chatMessages) > chatHistoryLimit {
		start = len(s.chatMessages) - chatHistoryLimit
	}
	return append([]ChatMessage(nil), s.chatMessages[start:]...)
}

// Statistics

func (s *Store) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Statistics{
		TotalPatients:     len(s.patients),
		TotalAppointments: len(s.appointments),
	}
	for _, a := range s.appointments {
		if a.Status == AppointmentCompleted {
			stats.CompletedAppointments++
		}
	}
	for _, p := range s.payments {
		stats.TotalRevenue += p.Amount
	}
	if len(s.payments) > 0 {
		stats.AveragePayment = stats.TotalRevenue / float64(len(s.payments))
	}
	return stats
}

// Export/import boundary

// Export copies the four mutable collections for the export file.
func (s *Store) Export() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Patients:     append([]Patient(nil), s.patients...),
		Appointments: append([]Appointment(nil), s.appointments...),
		Payments:     append([]Payment(nil), s.payments...),
		ChatMessages: append([]ChatMessage(nil), s.chatMessages...),
	}
}

// Import carries the collections present in an imported file. Nil fields
// leave the corresponding in-memory collection unchanged.
type Import struct {
	Patients     *[]Patient     `json:"patients,omitempty"`
	Appointments *[]Appointment `json:"appointments,omitempty"`
	Payments     *[]Payment     `json:"payments,omitempty"`
	ChatMessages *[]ChatMessage `json:"chatMessages,omitempty"`
}

// ImportData replaces each collection present in imp and persists once.
func (s *Store) ImportData(imp Import) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if imp.Patients != nil {
		s.patients = append([]Patient(nil), (*imp.Patients)...)
	}
	if imp.Appointments != nil {
		s.appointments = append([]Appointment(nil), (*imp.Appointments)...)
	}
	if imp.Payments != nil {
		s.payments = append([]Payment(nil), (*imp.Payments)...)
	}
	if imp.ChatMessages != nil {
		s.chatMessages = append([]ChatMessage(nil), (*imp.ChatMessages)...)
	}
	s.advanceIDSeqLocked()
	s.persist()
}
