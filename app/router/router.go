package router

import (
	"net/http"

	"vitrina-tech/app/controller"
)

type Controllers struct {
	Template  *controller.TemplateController
	Reference *controller.ReferenceController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Template picklist routes
	http.HandleFunc("/admin/templates", controllers.Template.ListTemplates)

	// Force a cache rebuild after catalog edits
	http.HandleFunc("/admin/templates/invalidate", controllers.Template.InvalidateCache)

	// Resolve a picked template back to its full-detail record
	http.HandleFunc("/admin/templates/resolve", controllers.Template.ResolveTemplate)

	// Resolve a template and assemble the platform metadata payload
	http.HandleFunc("/admin/templates/payload", controllers.Template.BuildListingPayload)

	// Reference mapping routes
	http.HandleFunc("/admin/references/resolve", controllers.Reference.ResolveReference)

	// Re-read mapping files after operator edits
	http.HandleFunc("/admin/references/reload", controllers.Reference.ReloadMappings)

	// Missing-mapping report - GET returns the summary, DELETE clears it
	http.HandleFunc("/admin/references/missing", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Reference.MissingSummary(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Reference.ClearMissing(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
