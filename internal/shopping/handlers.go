package shopping

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/HerbHall/larder/internal/plugin"
	"github.com/HerbHall/larder/internal/server"
	"github.com/HerbHall/larder/pkg/models"
)

// Routes implements plugin.Plugin.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "", Handler: m.handleList},
		{Method: "DELETE", Path: "", Handler: m.handleClear},
		{Method: "POST", Path: "/items", Handler: m.handleAdd},
		{Method: "PATCH", Path: "/items/{key}", Handler: m.handleSetChecked},
		{Method: "POST", Path: "/check-all", Handler: m.handleCheckAll},
		{Method: "GET", Path: "/export", Handler: m.handleExport},
	}
}

// addRequest contributes either a recipe at a portion count or raw items.
type addRequest struct {
	RecipeID string                `json:"recipe_id,omitempty"`
	Portions int                   `json:"portions,omitempty"`
	Items    []models.ShoppingItem `json:"items,omitempty"`
}

type setCheckedRequest struct {
	Checked bool `json:"checked"`
}

type checkAllRequest struct {
	Checked *bool `json:"checked,omitempty"`
}

type listResponse struct {
	Items      []Entry `json:"items"`
	AllChecked bool    `json:"all_checked"`
}

func (m *Module) respondList(w http.ResponseWriter, status int, doc *Document) {
	writeJSON(w, status, listResponse{
		Items:      doc.Entries(),
		AllChecked: doc.AllChecked(),
	})
}

func (m *Module) handleList(w http.ResponseWriter, r *http.Request) {
	doc, err := m.List(r.Context())
	if err != nil {
		m.logger.Warn("failed to load shopping list", zap.Error(err))
		server.InternalError(w, "failed to load shopping list", r.URL.Path)
		return
	}
	m.respondList(w, http.StatusOK, doc)
}

func (m *Module) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.BadRequest(w, "invalid JSON body", r.URL.Path)
		return
	}
	if req.RecipeID == "" && len(req.Items) == 0 {
		server.BadRequest(w, "recipe_id or items is required", r.URL.Path)
		return
	}

	var (
		doc *Document
		err error
	)
	if req.RecipeID != "" {
		doc, err = m.AddRecipe(r.Context(), req.RecipeID, req.Portions)
	} else {
		doc, err = m.AddItems(r.Context(), req.Items)
	}
	if errors.Is(err, ErrUnknownRecipe) {
		server.NotFound(w, err.Error(), r.URL.Path)
		return
	}
	if err != nil {
		m.logger.Warn("failed to add to shopping list", zap.Error(err))
		server.InternalError(w, "failed to update shopping list", r.URL.Path)
		return
	}
	m.respondList(w, http.StatusOK, doc)
}

func (m *Module) handleSetChecked(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var req setCheckedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.BadRequest(w, "invalid JSON body", r.URL.Path)
		return
	}

	doc, err := m.SetChecked(r.Context(), key, req.Checked)
	if errors.Is(err, ErrNotFound) {
		server.NotFound(w, "no shopping entry for key "+key, r.URL.Path)
		return
	}
	if err != nil {
		m.logger.Warn("failed to update shopping entry", zap.Error(err))
		server.InternalError(w, "failed to update shopping list", r.URL.Path)
		return
	}
	m.respondList(w, http.StatusOK, doc)
}

func (m *Module) handleCheckAll(w http.ResponseWriter, r *http.Request) {
	// Body is optional; the default checks everything.
	checked := true
	var req checkAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Checked != nil {
		checked = *req.Checked
	}

	doc, err := m.CheckAll(r.Context(), checked)
	if err != nil {
		m.logger.Warn("failed to check shopping list", zap.Error(err))
		server.InternalError(w, "failed to update shopping list", r.URL.Path)
		return
	}
	m.respondList(w, http.StatusOK, doc)
}

func (m *Module) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := m.Clear(r.Context()); err != nil {
		m.logger.Warn("failed to clear shopping list", zap.Error(err))
		server.InternalError(w, "failed to update shopping list", r.URL.Path)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (m *Module) handleExport(w http.ResponseWriter, r *http.Request) {
	text, err := m.Export(r.Context())
	if err != nil {
		m.logger.Warn("failed to export shopping list", zap.Error(err))
		server.InternalError(w, "failed to export shopping list", r.URL.Path)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
