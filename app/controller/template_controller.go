package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"vitrina-tech/service"
)

// TemplateController handles HTTP requests for the template picklist and
// template resolution
type TemplateController struct {
	cache    service.TemplateCacheInterface
	resolver service.TemplateResolverInterface
	listings *service.ListingService
}

// NewTemplateController creates a new TemplateController
func NewTemplateController(cache service.TemplateCacheInterface, resolver service.TemplateResolverInterface, listings *service.ListingService) *TemplateController {
	return &TemplateController{
		cache:    cache,
		resolver: resolver,
		listings: listings,
	}
}

// ListTemplates handles GET /admin/templates
// Returns the full sorted picklist of template strings
func (c *TemplateController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListTemplates: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ListTemplates: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	templates := c.cache.AllTemplates()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"count":     len(templates),
		"templates": templates,
	}); err != nil {
		log.Printf("❌ ListTemplates: Error encoding response: %v", err)
	}
}

// InvalidateCache handles POST /admin/templates/invalidate
// Forces a rebuild of the template cache on next access
func (c *TemplateController) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 InvalidateCache: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ InvalidateCache: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c.cache.Invalidate()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"invalidated"}`))
}

// ResolveTemplate handles POST /admin/templates/resolve
// Resolves a picked template string back to its full-detail record
func (c *TemplateController) ResolveTemplate(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ResolveTemplate: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ ResolveTemplate: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Template string `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ ResolveTemplate: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	template := strings.TrimSpace(req.Template)
	if template == "" {
		log.Printf("❌ ResolveTemplate: template cannot be empty")
		http.Error(w, "template cannot be empty", http.StatusBadRequest)
		return
	}

	record := c.resolver.Resolve(template)
	if record == nil {
		// Expected outcome for malformed or drifted templates; the operator
		// picks a different one or falls back to manual entry
		http.Error(w, "template could not be resolved", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(record); err != nil {
		log.Printf("❌ ResolveTemplate: Error encoding response: %v", err)
	}
}

// BuildListingPayload handles POST /admin/templates/payload
// Resolves a template and assembles the platform metadata payload for it,
// omitting attributes whose reference mapping is absent
func (c *TemplateController) BuildListingPayload(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 BuildListingPayload: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ BuildListingPayload: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Template string `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ BuildListingPayload: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	record := c.resolver.Resolve(strings.TrimSpace(req.Template))
	if record == nil {
		http.Error(w, "template could not be resolved", http.StatusNotFound)
		return
	}

	payload := c.listings.BuildPayload(record)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ BuildListingPayload: Error encoding response: %v", err)
	}
}
