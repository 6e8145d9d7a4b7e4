package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"jobagent-engine/internal/domain"
	"jobagent-engine/internal/store"
)

type OverridesHandler struct {
	Overrides *store.Overrides
}

func (h OverridesHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Overrides.List(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	if rows == nil {
		rows = []store.OverrideRow{}
	}
	writeJSON(w, rows)
}

func (h OverridesHandler) Put(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Company string `json:"company"`
		Type    string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if strings.TrimSpace(in.Company) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_company", "company required")
		return
	}
	switch domain.CompanyType(in.Type) {
	case domain.CompanySoftware, domain.CompanyHardware, domain.CompanyBoth:
	default:
		WriteError(w, r, http.StatusBadRequest, "invalid_type", "type must be software, hardware, or both")
		return
	}

	if err := h.Overrides.Upsert(r.Context(), in.Company, domain.CompanyType(in.Type)); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "upsert_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (h OverridesHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/companies/overrides/")
	if strings.TrimSpace(name) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_company", "company required")
		return
	}

	if err := h.Overrides.Delete(r.Context(), name); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "delete_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
