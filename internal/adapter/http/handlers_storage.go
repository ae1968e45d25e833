package adapthttp

import (
	"errors"
	"io"
	"net/http"
)

// maxImportBytes bounds an uploaded backup document.
const maxImportBytes = 32 << 20

func (s *Server) handleQuota(w http.ResponseWriter, r *http.Request) {
	q, err := s.Store.CheckQuota(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Store.Export(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="fittrack-backup.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	doc, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !s.Store.Import(r.Context(), doc) {
		writeError(w, http.StatusBadRequest, errors.New("import failed: document rejected or partially written"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
