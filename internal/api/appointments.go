package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medcare/clinic-management/internal/clinic"
)

func listAppointmentsHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Appointments())
	}
}

func createAppointmentHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.PatientID == 0 || req.DoctorID == 0 || req.Date == "" {
			writeError(w, http.StatusBadRequest, "missing_required_fields", "patient_id, doctor_id and date are required")
			return
		}

		// The booking panel defaults status and type; the store stores
		// whatever it receives.
		if req.Status == "" {
			req.Status = clinic.AppointmentScheduled
		}
		if req.Type == "" {
			req.Type = clinic.TypeConsultation
		}

		created := store.AddAppointment(clinic.Appointment{
			PatientID: req.PatientID,
			DoctorID:  req.DoctorID,
			Date:      req.Date,
			Status:    req.Status,
			Type:      req.Type,
			Notes:     req.Notes,
		})
		writeJSON(w, http.StatusCreated, created)
	}
}

func getAppointmentHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		a, err := store.GetAppointment(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func updateAppointmentHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var upd clinic.AppointmentUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		a, err := store.UpdateAppointment(id, upd)
		if err != nil {
			if errors.Is(err, clinic.ErrAppointmentNotFound) {
				writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func cancelAppointmentHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		a, err := store.CancelAppointment(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func listDoctorsHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if specialty := r.URL.Query().Get("specialty"); specialty != "" {
			writeJSON(w, http.StatusOK, store.DoctorsBySpecialty(specialty))
			return
		}
		writeJSON(w, http.StatusOK, store.Doctors())
	}
}

func availableDoctorsHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateStr := r.URL.Query().Get("date")
		if dateStr == "" {
			writeError(w, http.StatusBadRequest, "missing_date", "date query parameter is required")
			return
		}
		date, err := clinic.ParseLocalDate(dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be an ISO-8601 local date")
			return
		}
		writeJSON(w, http.StatusOK, store.AvailableDoctors(date))
	}
}

func priceEstimateHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		specialty := r.URL.Query().Get("specialty")
		apptType := clinic.AppointmentType(r.URL.Query().Get("type"))
		if apptType == "" {
			apptType = clinic.TypeConsultation
		}

		writeJSON(w, http.StatusOK, PriceEstimateResponse{
			Specialty: specialty,
			Type:      apptType,
			Estimate:  store.EstimatePrice(specialty, apptType),
		})
	}
}
