package clinic

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare/clinic-management/internal/storage"
)

func newTestStore() (*Store, *storage.MemoryBackend) {
	backend := storage.NewMemoryBackend()
	return New(backend), backend
}

func TestAddPatientRoundTrip(t *testing.T) {
	store, _ := newTestStore()

	input := Patient{
		FirstName:   "Alice",
		LastName:    "Nguyen",
		Email:       "alice@example.com",
		Phone:       "555-0199",
		City:        "Boston",
		DateOfBirth: "1992-04-01",
	}

	created := store.AddPatient(input)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := store.GetPatient(created.ID)
	require.NoError(t, err)

	assert.Equal(t, input.FirstName, got.FirstName)
	assert.Equal(t, input.LastName, got.LastName)
	assert.Equal(t, input.Email, got.Email)
	assert.Equal(t, input.Phone, got.Phone)
	assert.Equal(t, input.City, got.City)
	assert.Equal(t, input.DateOfBirth, got.DateOfBirth)
	assert.Equal(t, created, got)
}

func TestGetPatientNotFound(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.GetPatient(12345)
	require.ErrorIs(t, err, ErrPatientNotFound)
}

func TestUpdatePatientPartial(t *testing.T) {
	store, _ := newTestStore()

	created := store.AddPatient(Patient{
		FirstName: "Bob",
		LastName:  "Lee",
		Email:     "bob@example.com",
		City:      "Denver",
	})

	city := "Austin"
	updated, err := store.UpdatePatient(created.ID, PatientUpdate{City: &city})
	require.NoError(t, err)

	assert.Equal(t, "Austin", updated.City)
	assert.Equal(t, created.FirstName, updated.FirstName)
	assert.Equal(t, created.LastName, updated.LastName)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdatePatientNotFound(t *testing.T) {
	store, _ := newTestStore()

	city := "Nowhere"
	_, err := store.UpdatePatient(999, PatientUpdate{City: &city})
	require.ErrorIs(t, err, ErrPatientNotFound)
}

func TestDeletePatientKeepsReferences(t *testing.T) {
	store, _ := newTestStore()

	p := store.AddPatient(Patient{FirstName: "Carol", LastName: "King"})
	appt := store.AddAppointment(Appointment{PatientID: p.ID, DoctorID: 1, Date: "2024-06-03T09:00", Status: AppointmentScheduled})
	pay := store.AddPayment(Payment{PatientID: p.ID, Amount: 120, Method: MethodCash, Status: PaymentCompleted})

	require.NoError(t, store.DeletePatient(p.ID))

	_, err := store.GetPatient(p.ID)
	require.ErrorIs(t, err, ErrPatientNotFound)

	// Weak references stay behind, unchanged.
	appts := store.GetAppointmentsByPatient(p.ID)
	require.Len(t, appts, 1)
	assert.Equal(t, appt, appts[0])

	pays := store.GetPaymentsByPatient(p.ID)
	require.Len(t, pays, 1)
	assert.Equal(t, pay, pays[0])
}

func TestSearchPatients(t *testing.T) {
	store, _ := newTestStore()
	store.SeedSampleData()

	results := store.SearchPatients("chi")
	require.Len(t, results, 1)
	assert.Equal(t, "Mike", results[0].FirstName)
	assert.Equal(t, "Chicago", results[0].City)

	assert.Empty(t, store.SearchPatients("zzz"))
	assert.Len(t, store.SearchPatients("SMITH"), 1)
}

func TestStatisticsEmptyStore(t *testing.T) {
	store, _ := newTestStore()

	stats := store.Statistics()
	assert.Zero(t, stats.TotalPatients)
	assert.Zero(t, stats.TotalAppointments)
	assert.Zero(t, stats.CompletedAppointments)
	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.AveragePayment)
}

func TestStatisticsAggregates(t *testing.T) {
	store, _ := newTestStore()

	p := store.AddPatient(Patient{FirstName: "Dan", LastName: "Wu"})
	store.AddAppointment(Appointment{PatientID: p.ID, DoctorID: 1, Status: AppointmentCompleted})
	store.AddAppointment(Appointment{PatientID: p.ID, DoctorID: 2, Status: AppointmentScheduled})
	store.AddPayment(Payment{PatientID: p.ID, Amount: 200, Method: MethodCreditCard, Status: PaymentCompleted})
	store.AddPayment(Payment{PatientID: p.ID, Amount: 100, Method: MethodCash, Status: PaymentCompleted})

	stats := store.Statistics()
	assert.Equal(t, 1, stats.TotalPatients)
	assert.Equal(t, 2, stats.TotalAppointments)
	assert.Equal(t, 1, stats.CompletedAppointments)
	assert.InDelta(t, 300.0, stats.TotalRevenue, 0.001)
	assert.InDelta(t, 150.0, stats.AveragePayment, 0.001)
}

func TestCancelAppointment(t *testing.T) {
	store, _ := newTestStore()

	a := store.AddAppointment(Appointment{PatientID: 1, DoctorID: 2, Date: "2024-05-01T11:00", Status: AppointmentScheduled, Notes: "first visit"})

	cancelled, err := store.CancelAppointment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, AppointmentCancelled, cancelled.Status)
	assert.Equal(t, "first visit", cancelled.Notes)
	assert.Equal(t, a.Date, cancelled.Date)

	_, err = store.CancelAppointment(99999)
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAddPaymentOverwritesDate(t *testing.T) {
	store, _ := newTestStore()

	stale := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	p := store.AddPayment(Payment{PatientID: 1, Amount: 75, Method: MethodCheck, Status: PaymentCompleted, Date: stale})

	assert.WithinDuration(t, time.Now(), p.Date, time.Minute)
}

func TestRefundPayment(t *testing.T) {
	store, _ := newTestStore()

	original := store.AddPayment(Payment{PatientID: 7, Amount: 250, Method: MethodCreditCard, Status: PaymentCompleted})

	refund, err := store.RefundPayment(original.ID)
	require.NoError(t, err)

	assert.InDelta(t, -250.0, refund.Amount, 0.001)
	assert.Equal(t, PaymentRefunded, refund.Status)
	assert.Equal(t, original.Method, refund.Method)
	assert.Equal(t, fmt.Sprintf("Refund for payment #%d", original.ID), refund.Notes)

	// The original transitions to Refunded through the normal update path.
	got, err := store.GetPayment(original.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentRefunded, got.Status)

	// Refunds cancel out in the aggregate.
	stats := store.Statistics()
	assert.InDelta(t, 0.0, stats.TotalRevenue, 0.001)

	_, err = store.RefundPayment(original.ID)
	require.ErrorIs(t, err, ErrPaymentAlreadyRefunded)

	_, err = store.RefundPayment(424242)
	require.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestChatHistoryWindow(t *testing.T) {
	store, _ := newTestStore()

	for i := 1; i <= 60; i++ {
		store.AddChatMessage(ChatMessage{
			Type:    MessageUser,
			Sender:  "You",
			Content: fmt.Sprintf("message %d", i),
		})
	}

	history := store.ChatHistory()
	require.Len(t, history, 50)
	assert.Equal(t, "message 11", history[0].Content)
	assert.Equal(t, "message 60", history[49].Content)

	// Relative order is preserved inside the window.
	for i := 1; i < len(history); i++ {
		assert.Less(t, history[i-1].ID, history[i].ID)
	}
}

func TestIdentifiersUniqueAndMonotonic(t *testing.T) {
	store, _ := newTestStore()

	seen := make(map[int64]struct{})
	var last int64
	for i := 0; i < 200; i++ {
		p := store.AddPatient(Patient{FirstName: "P", LastName: fmt.Sprint(i)})
		_, dup := seen[p.ID]
		require.False(t, dup, "duplicate id %d", p.ID)
		seen[p.ID] = struct{}{}
		require.Greater(t, p.ID, last)
		last = p.ID
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	backend := storage.NewMemoryBackend()
	first := New(backend)

	p := first.AddPatient(Patient{FirstName: "Eve", LastName: "Stone", City: "Seattle"})
	first.AddAppointment(Appointment{PatientID: p.ID, DoctorID: 3, Date: "2024-07-01T08:30", Status: AppointmentScheduled})
	first.AddPayment(Payment{PatientID: p.ID, Amount: 180, Method: MethodInsurance, Status: PaymentCompleted})
	first.AddChatMessage(ChatMessage{Type: MessageUser, Sender: "You", Content: "hello"})

	require.NoError(t, first.Save(context.Background()))

	second := New(backend)
	require.NoError(t, second.Load(context.Background()))

	wantJSON, err := json.Marshal(first.Export())
	require.NoError(t, err)
	gotJSON, err := json.Marshal(second.Export())
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))

	// Doctors are reseeded, never loaded.
	assert.Len(t, second.Doctors(), 5)
}

func TestLoadMissingSnapshotKeepsSeedState(t *testing.T) {
	store, _ := newTestStore()
	store.SeedSampleData()

	require.NoError(t, store.Load(context.Background()))
	assert.Len(t, store.Patients(), 3)
	assert.Len(t, store.Appointments(), 2)
	assert.Len(t, store.Payments(), 2)
}

func TestLoadUnparseableSnapshotKeepsSeedState(t *testing.T) {
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.Save(context.Background(), []byte("{not json")))

	store := New(backend)
	store.SeedSampleData()

	err := store.Load(context.Background())
	require.Error(t, err)
	assert.Len(t, store.Patients(), 3)
}

func TestImportReplacesOnlyPresentCollections(t *testing.T) {
	store, _ := newTestStore()
	store.SeedSampleData()

	newPatients := []Patient{{ID: 100, FirstName: "Imported", LastName: "Patient"}}
	store.ImportData(Import{Patients: &newPatients})

	patients := store.Patients()
	require.Len(t, patients, 1)
	assert.Equal(t, "Imported", patients[0].FirstName)

	// Absent collections are untouched.
	assert.Len(t, store.Appointments(), 2)
	assert.Len(t, store.Payments(), 2)

	// New identifiers never collide with imported ones.
	p := store.AddPatient(Patient{FirstName: "After", LastName: "Import"})
	assert.Greater(t, p.ID, int64(100))
}

func TestMutatorsPersistSnapshots(t *testing.T) {
	store, backend := newTestStore()

	store.AddPatient(Patient{FirstName: "Saved", LastName: "Often"})

	data, err := backend.Load(context.Background())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	require.Len(t, snap.Patients, 1)
	assert.Equal(t, "Saved", snap.Patients[0].FirstName)
}
