package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/medcare/clinic-management/internal/clinic"
	"github.com/medcare/clinic-management/internal/config"
	"github.com/medcare/clinic-management/internal/db"
	redisclient "github.com/medcare/clinic-management/internal/redis"
	"github.com/medcare/clinic-management/internal/storage"
)

const (
	patientCount     = 50
	appointmentCount = 120
	paymentCount     = 80
)

// seed writes a demo snapshot through the configured storage backend so a
// fresh clinic-server starts with a populated store.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	rootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, cleanup, err := buildBackend(rootCtx, cfg)
	if err != nil {
		log.Fatalf("storage backend error: %v", err)
	}
	defer cleanup()

	gofakeit.Seed(time.Now().UnixNano())

	store := clinic.New(backend)

	patients := seedPatients(store)
	log.Printf("patients seeded: %d", len(patients))

	appointments := seedAppointments(store, patients)
	log.Printf("appointments seeded: %d", len(appointments))

	payments := seedPayments(store, patients, appointments)
	log.Printf("payments seeded: %d", len(payments))

	if err := store.Save(rootCtx); err != nil {
		log.Fatalf("save snapshot: %v", err)
	}

	log.Println("seed complete")
}

func seedPatients(store *clinic.Store) []clinic.Patient {
	patients := make([]clinic.Patient, 0, patientCount)
	for i := 0; i < patientCount; i++ {
		dob := gofakeit.DateRange(
			time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC),
		)
		p := store.AddPatient(clinic.Patient{
			FirstName:   gofakeit.FirstName(),
			LastName:    gofakeit.LastName(),
			Email:       gofakeit.Email(),
			Phone:       gofakeit.Phone(),
			City:        gofakeit.City(),
			DateOfBirth: dob.Format("2006-01-02"),
		})
		patients = append(patients, p)
	}
	return patients
}

func seedAppointments(store *clinic.Store, patients []clinic.Patient) []clinic.Appointment {
	doctors := store.Doctors()
	statuses := []clinic.AppointmentStatus{
		clinic.AppointmentScheduled,
		clinic.AppointmentCompleted,
		clinic.AppointmentCancelled,
	}
	types := []clinic.AppointmentType{
		clinic.TypeConsultation,
		clinic.TypeFollowUp,
		clinic.TypeEmergency,
		clinic.TypeSurgery,
	}

	appointments := make([]clinic.Appointment, 0, appointmentCount)
	for i := 0; i < appointmentCount; i++ {
		patient := patients[gofakeit.Number(0, len(patients)-1)]
		doctor := doctors[gofakeit.Number(0, len(doctors)-1)]
		when := gofakeit.DateRange(
			time.Now().AddDate(0, -3, 0),
			time.Now().AddDate(0, 3, 0),
		)

		a := store.AddAppointment(clinic.Appointment{
			PatientID: patient.ID,
			DoctorID:  doctor.ID,
			Date:      when.Format("2006-01-02T15:04"),
			Status:    statuses[gofakeit.Number(0, len(statuses)-1)],
			Type:      types[gofakeit.Number(0, len(types)-1)],
			Notes:     gofakeit.Sentence(6),
		})
		appointments = append(appointments, a)
	}
	return appointments
}

func seedPayments(store *clinic.Store, patients []clinic.Patient, appointments []clinic.Appointment) []clinic.Payment {
	methods := []clinic.PaymentMethod{
		clinic.MethodCreditCard,
		clinic.MethodDebitCard,
		clinic.MethodCash,
		clinic.MethodInsurance,
		clinic.MethodBankTransfer,
		clinic.MethodCheck,
	}

	payments := make([]clinic.Payment, 0, paymentCount)
	for i := 0; i < paymentCount; i++ {
		patient := patients[gofakeit.Number(0, len(patients)-1)]

		var apptID int64
		if gofakeit.Bool() && len(appointments) > 0 {
			apptID = appointments[gofakeit.Number(0, len(appointments)-1)].ID
		}

		p := store.AddPayment(clinic.Payment{
			PatientID:     patient.ID,
			AppointmentID: apptID,
			Amount:        gofakeit.Price(50, 600),
			Method:        methods[gofakeit.Number(0, len(methods)-1)],
			Status:        clinic.PaymentCompleted,
		})
		payments = append(payments, p)
	}
	return payments
}

// buildBackend mirrors the server's backend selection for one-shot seeding.
func buildBackend(ctx context.Context, cfg config.Config) (storage.Backend, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.BackendFile:
		return storage.NewFileBackend(cfg.SnapshotFile), noop, nil

	case config.BackendMemory:
		return nil, nil, fmt.Errorf("memory backend cannot be seeded from a separate process")

	case config.BackendRedis:
		rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection: %w", err)
		}
		cleanup := func() {
			if err := rdb.Close(); err != nil {
				log.Printf("error closing redis: %v", err)
			}
		}
		return storage.NewRedisBackend(rdb, cfg.SnapshotKey), cleanup, nil

	case config.BackendPostgres:
		pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connection: %w", err)
		}
		backend, err := storage.NewPostgresBackend(ctx, pool, cfg.SnapshotKey)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return backend, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
