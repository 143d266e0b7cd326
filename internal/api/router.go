// Package api exposes the feature panels over HTTP: each handler group reads
// from the domain store and forwards user intents to its mutators.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medcare/clinic-management/internal/chat"
	"github.com/medcare/clinic-management/internal/clinic"
	"github.com/medcare/clinic-management/internal/storage"
)

type RouterConfig struct {
	Store     *clinic.Store
	Responder *chat.Responder
	Backend   storage.Backend
	Env       string
	Version   string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	health := NewHealthHandler(cfg.Backend, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Patient panel
	r.Get("/patients", listPatientsHandler(cfg.Store))
	r.Post("/patients", createPatientHandler(cfg.Store))
	r.Get("/patients/{id}", getPatientHandler(cfg.Store))
	r.Patch("/patients/{id}", updatePatientHandler(cfg.Store))
	r.Delete("/patients/{id}", deletePatientHandler(cfg.Store))
	r.Get("/patients/{id}/appointments", patientAppointmentsHandler(cfg.Store))
	r.Get("/patients/{id}/payments", patientPaymentsHandler(cfg.Store))

	// Appointment panel
	r.Get("/appointments", listAppointmentsHandler(cfg.Store))
	r.Post("/appointments", createAppointmentHandler(cfg.Store))
	r.Get("/appointments/{id}", getAppointmentHandler(cfg.Store))
	r.Patch("/appointments/{id}", updateAppointmentHandler(cfg.Store))
	r.Post("/appointments/{id}/cancel", cancelAppointmentHandler(cfg.Store))
	r.Get("/doctors", listDoctorsHandler(cfg.Store))
	r.Get("/doctors/available", availableDoctorsHandler(cfg.Store))
	r.Get("/pricing/estimate", priceEstimateHandler(cfg.Store))

	// Payment panel
	r.Get("/payments", listPaymentsHandler(cfg.Store))
	r.Post("/payments", createPaymentHandler(cfg.Store))
	r.Get("/payments/{id}", getPaymentHandler(cfg.Store))
	r.Post("/payments/{id}/refund", refundPaymentHandler(cfg.Store))
	r.Get("/payments/{id}/receipt", paymentReceiptHandler(cfg.Store))

	// Chat panel
	r.Get("/chat/messages", listChatMessagesHandler(cfg.Store))
	r.Post("/chat/messages", postChatMessageHandler(cfg.Store, cfg.Responder))

	// Store-wide views and the export/import boundary
	r.Get("/stats", statsHandler(cfg.Store))
	r.Get("/integrity", integrityHandler(cfg.Store))
	r.Get("/export", exportHandler(cfg.Store))
	r.Post("/import", importHandler(cfg.Store))

	return r
}
