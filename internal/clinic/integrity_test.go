package clinic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare/clinic-management/internal/storage"
)

func TestCheckReferencesClean(t *testing.T) {
	store := New(storage.NewMemoryBackend())
	store.SeedSampleData()

	report := store.CheckReferences()
	assert.True(t, report.Clean())
}

func TestCheckReferencesReportsDanglingRefs(t *testing.T) {
	store := New(storage.NewMemoryBackend())

	p := store.AddPatient(Patient{FirstName: "Gone", LastName: "Soon"})
	appt := store.AddAppointment(Appointment{PatientID: p.ID, DoctorID: 99, Date: "2024-02-01T10:00", Status: AppointmentScheduled})
	pay := store.AddPayment(Payment{PatientID: p.ID, Amount: 50, Method: MethodCash, Status: PaymentCompleted})

	require.NoError(t, store.DeletePatient(p.ID))

	report := store.CheckReferences()
	assert.False(t, report.Clean())
	assert.Equal(t, []int64{appt.ID}, report.OrphanedAppointments)
	assert.Equal(t, []int64{pay.ID}, report.OrphanedPayments)
	assert.Equal(t, []int64{appt.ID}, report.UnknownDoctorRefs)
}
