package export

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/regalagram/sspe-sub014/internal/path"
	"github.com/regalagram/sspe-sub014/internal/store"
)

// Handler serves SVG export of the latest document snapshot.
type Handler struct {
	store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

// ExportSVG handles GET /export/svg/{projectId}.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	snap, err := h.store.GetLatestSnapshot(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		slog.Error("get snapshot", "error", err, "project", projectID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var doc path.Document
	if err := json.Unmarshal(snap.Document, &doc); err != nil {
		slog.Error("unmarshal document", "error", err, "project", projectID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", `attachment; filename="`+projectID+`.svg"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(SVG(&doc)))
}
