package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/medcare/clinic-management/internal/clinic"
)

func statsHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Statistics())
	}
}

func integrityHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.CheckReferences())
	}
}

func exportHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := ExportResponse{
			ExportID:   uuid.New(),
			ExportedAt: time.Now(),
			Snapshot:   store.Export(),
		}
		w.Header().Set("Content-Disposition", `attachment; filename="clinic-export.json"`)
		writeJSON(w, http.StatusOK, resp)
	}
}

// importHandler replaces the collections present in the uploaded file and
// leaves the rest unchanged. A malformed file changes nothing.
func importHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var imp clinic.Import
		if err := json.NewDecoder(r.Body).Decode(&imp); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_import_file", "could not parse import file")
			return
		}

		store.ImportData(imp)
		writeJSON(w, http.StatusOK, store.Statistics())
	}
}
