package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/artpar/gateforge/app"
	"github.com/artpar/gateforge/config"
	"github.com/artpar/gateforge/core/schema"
	"github.com/go-chi/chi/v5"
)

// Request bodies larger than this are rejected; configuration
// documents are small.
const maxBodyBytes = 1 << 20

// Health reports server liveness and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"uptime":  time.Since(h.startTime).String(),
		"plugins": h.registry.Subtypes(),
	})
}

// Schema returns the schema entries of all registered plugins.
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	entries := make([]schema.Entry, 0)
	for _, p := range h.registry.List() {
		entries = append(entries, p.Describe())
	}
	writeJSON(w, http.StatusOK, entries)
}

// SchemaBySubtype returns the schema entry of one plugin.
func (h *Handler) SchemaBySubtype(w http.ResponseWriter, r *http.Request) {
	subtype := chi.URLParam(r, "subtype")
	p, ok := h.registry.Get(subtype)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown subtype: "+subtype)
		return
	}
	writeJSON(w, http.StatusOK, p.Describe())
}

// Validate checks a configuration document and returns every problem
// found. A document with warnings but no errors is reported valid.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.readConfig(w, r)
	if !ok {
		return
	}

	result := h.validator.Validate(cfg)
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":    result.Valid(),
		"problems": result.Problems,
	})
}

// Generate runs a full generation pass over the posted document.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.readConfig(w, r)
	if !ok {
		return
	}

	result, err := h.generator.Run(cfg)
	if err != nil {
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":    verr.Error(),
				"problems": verr.Result.Problems,
			})
			return
		}
		h.logger.Error().Err(err).Msg("generation failed")
		writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) readConfig(w http.ResponseWriter, r *http.Request) (*config.Config, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return nil, false
	}

	cfg, err := config.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return cfg, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func statusText(code int) string {
	return strconv.Itoa(code)
}
