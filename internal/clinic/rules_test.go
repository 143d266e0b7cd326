package clinic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare/clinic-management/internal/storage"
)

func TestEstimatePrice(t *testing.T) {
	tests := []struct {
		name      string
		specialty string
		apptType  AppointmentType
		want      float64
	}{
		{name: "cardiology surgery", specialty: "Cardiology", apptType: TypeSurgery, want: 600},
		{name: "pediatrics follow-up", specialty: "Pediatrics", apptType: TypeFollowUp, want: 120},
		{name: "dermatology emergency", specialty: "Dermatology", apptType: TypeEmergency, want: 180},
		{name: "neurology consultation", specialty: "Neurology", apptType: TypeConsultation, want: 250},
		{name: "unknown specialty falls back to default base", specialty: "Unknown", apptType: TypeConsultation, want: 150},
		{name: "unknown type falls back to multiplier one", specialty: "Cardiology", apptType: "unknown", want: 200},
		{name: "both unknown", specialty: "Unknown", apptType: "unknown", want: 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimatePrice(tt.specialty, tt.apptType), 0.001)
		})
	}
}

func TestAvailableDoctors(t *testing.T) {
	store := New(storage.NewMemoryBackend())

	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	require.Equal(t, time.Monday, monday.Weekday())

	docs := store.AvailableDoctors(monday)
	require.Len(t, docs, 3)

	var ids []int64
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []int64{1, 3, 5}, ids)

	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.Local)
	assert.Empty(t, store.AvailableDoctors(sunday))

	thursday := time.Date(2024, 1, 4, 0, 0, 0, 0, time.Local)
	docs = store.AvailableDoctors(thursday)
	require.Len(t, docs, 2)
	assert.Equal(t, int64(2), docs[0].ID)
	assert.Equal(t, int64(4), docs[1].ID)
}

func TestDoctorsBySpecialty(t *testing.T) {
	store := New(storage.NewMemoryBackend())

	docs := store.DoctorsBySpecialty("cardiology")
	require.Len(t, docs, 1)
	assert.Equal(t, "Dr. Sarah Smith", docs[0].Name)

	// Exact match only, no substrings.
	assert.Empty(t, store.DoctorsBySpecialty("cardio"))
	assert.Empty(t, store.DoctorsBySpecialty("Oncology"))
}

func TestParseLocalDate(t *testing.T) {
	got, err := ParseLocalDate("2024-01-15T10:00")
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, 10, got.Hour())

	got, err = ParseLocalDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, got.Weekday())

	_, err = ParseLocalDate("not-a-date")
	require.Error(t, err)
}
