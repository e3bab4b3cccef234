package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"vitrina-tech/models"
	"vitrina-tech/repository"
	"vitrina-tech/service"
)

// ReferenceController handles HTTP requests for external reference
// resolution and the missing-mapping report
type ReferenceController struct {
	references service.ReferenceResolverInterface
	mappings   repository.MappingRepositoryInterface
	missing    *service.MissingMappingLog
}

// NewReferenceController creates a new ReferenceController
func NewReferenceController(references service.ReferenceResolverInterface, mappings repository.MappingRepositoryInterface, missing *service.MissingMappingLog) *ReferenceController {
	return &ReferenceController{
		references: references,
		mappings:   mappings,
		missing:    missing,
	}
}

// ResolveReference handles POST /admin/references/resolve
// Maps one attribute value to its external reference identifier(s)
func (c *ReferenceController) ResolveReference(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ResolveReference: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ ResolveReference: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Field   string `json:"field"`
		Value   string `json:"value"`
		Kind    string `json:"kind"`
		Context string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ ResolveReference: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	field := strings.TrimSpace(req.Field)
	value := strings.TrimSpace(req.Value)
	if field == "" || value == "" {
		log.Printf("❌ ResolveReference: field and value are required")
		http.Error(w, "field and value are required", http.StatusBadRequest)
		return
	}

	kind := models.ReferenceSingle
	if req.Kind == string(models.ReferenceList) {
		kind = models.ReferenceList
	} else if req.Kind != "" && req.Kind != string(models.ReferenceSingle) {
		log.Printf("❌ ResolveReference: invalid kind %q", req.Kind)
		http.Error(w, `kind must be "single" or "list"`, http.StatusBadRequest)
		return
	}

	ref, found := c.references.ResolveReference(field, value, kind, req.Context)
	if !found {
		// Recorded by the resolver; the caller omits this attribute from
		// the platform payload and proceeds
		http.Error(w, "no reference mapping for value", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]models.ReferenceValue{"reference": *ref}); err != nil {
		log.Printf("❌ ResolveReference: Error encoding response: %v", err)
	}
}

// ReloadMappings handles POST /admin/references/reload
// Re-reads the mapping files after an operator edits them
func (c *ReferenceController) ReloadMappings(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ReloadMappings: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ ReloadMappings: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := c.mappings.Reload(); err != nil {
		log.Printf("❌ ReloadMappings: Reload failed: %v", err)
		http.Error(w, fmt.Sprintf("Failed to reload mappings: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "reloaded",
		"fields": c.mappings.Fields(),
	}); err != nil {
		log.Printf("❌ ReloadMappings: Error encoding response: %v", err)
	}
}

// MissingSummary handles GET /admin/references/missing
// Returns the frequency-sorted report of unresolved lookups
func (c *ReferenceController) MissingSummary(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 MissingSummary: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ MissingSummary: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(c.missing.Summary()); err != nil {
		log.Printf("❌ MissingSummary: Error encoding response: %v", err)
	}
}

// ClearMissing handles DELETE /admin/references/missing
// Clears the missing-mapping log after the operator has extended the
// mapping files
func (c *ReferenceController) ClearMissing(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ClearMissing: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodDelete {
		log.Printf("❌ ClearMissing: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c.missing.Clear()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"cleared"}`))
}
