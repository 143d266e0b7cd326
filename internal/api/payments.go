package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/medcare/clinic-management/internal/clinic"
)

func listPaymentsHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Payments())
	}
}

func createPaymentHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.PatientID == 0 || req.Amount == 0 || req.Method == "" {
			writeError(w, http.StatusBadRequest, "missing_required_fields", "patient_id, amount and method are required")
			return
		}

		if req.Status == "" {
			req.Status = clinic.PaymentCompleted
		}

		created := store.AddPayment(clinic.Payment{
			PatientID:     req.PatientID,
			AppointmentID: req.AppointmentID,
			Amount:        req.Amount,
			Method:        req.Method,
			Status:        req.Status,
			Notes:         req.Notes,
		})
		writeJSON(w, http.StatusCreated, created)
	}
}

func getPaymentHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		p, err := store.GetPayment(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "payment_not_found", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func refundPaymentHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		refund, err := store.RefundPayment(id)
		if err != nil {
			switch {
			case errors.Is(err, clinic.ErrPaymentNotFound):
				writeError(w, http.StatusNotFound, "payment_not_found", err.Error())
			case errors.Is(err, clinic.ErrPaymentAlreadyRefunded):
				writeError(w, http.StatusConflict, "payment_already_refunded", err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}
		writeJSON(w, http.StatusCreated, refund)
	}
}

// paymentReceiptHandler renders a plain-text receipt. Missing patient records
// show up as "Unknown Patient" rather than failing the receipt.
func paymentReceiptHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		p, err := store.GetPayment(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "payment_not_found", err.Error())
			return
		}

		patientName := "Unknown Patient"
		if patient, err := store.GetPatient(p.PatientID); err == nil {
			patientName = patient.FirstName + " " + patient.LastName
		}

		var b strings.Builder
		fmt.Fprintln(&b, "MedCare Clinic")
		fmt.Fprintln(&b, "Payment Receipt")
		fmt.Fprintln(&b, "----------------------------------------")
		fmt.Fprintf(&b, "Receipt #: %d\n", p.ID)
		fmt.Fprintf(&b, "Date:      %s\n", p.Date.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "Patient:   %s\n", patientName)
		fmt.Fprintf(&b, "Method:    %s\n", p.Method)
		fmt.Fprintf(&b, "Status:    %s\n", p.Status)
		fmt.Fprintf(&b, "Amount:    $%.2f\n", p.Amount)
		if p.Notes != "" {
			fmt.Fprintf(&b, "Notes:     %s\n", p.Notes)
		}
		fmt.Fprintln(&b, "----------------------------------------")
		fmt.Fprintln(&b, "Thank you for choosing MedCare Clinic!")
		fmt.Fprintf(&b, "Generated on %s\n", time.Now().Format("2006-01-02 15:04:05"))

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(b.String()))
	}
}
