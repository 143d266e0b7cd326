package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medcare/clinic-management/internal/clinic"
)

func listPatientsHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "" {
			writeJSON(w, http.StatusOK, store.SearchPatients(q))
			return
		}
		writeJSON(w, http.StatusOK, store.Patients())
	}
}

func createPatientHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		// Required-field checks live here at the panel; the store accepts
		// whatever it is handed.
		if req.FirstName == "" || req.LastName == "" {
			writeError(w, http.StatusBadRequest, "missing_required_fields", "first_name and last_name are required")
			return
		}

		created := store.AddPatient(clinic.Patient{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			City:        req.City,
			DateOfBirth: req.DateOfBirth,
		})
		writeJSON(w, http.StatusCreated, created)
	}
}

func getPatientHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		p, err := store.GetPatient(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func updatePatientHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var upd clinic.PatientUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := store.UpdatePatient(id, upd)
		if err != nil {
			if errors.Is(err, clinic.ErrPatientNotFound) {
				writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func deletePatientHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		if err := store.DeletePatient(id); err != nil {
			writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func patientAppointmentsHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, store.GetAppointmentsByPatient(id))
	}
}

func patientPaymentsHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, store.GetPaymentsByPatient(id))
	}
}
