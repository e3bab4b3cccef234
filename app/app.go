package app

import (
	"log"

	"vitrina-tech/app/controller"
	"vitrina-tech/app/router"
	"vitrina-tech/codec"
	"vitrina-tech/config"
	"vitrina-tech/repository"
	"vitrina-tech/service"
)

// Initialize wires the engine together: storage-backed repositories at the
// bottom, codec and services above them, controllers and routes on top.
// Every storage path comes from the injected config so tests can run the
// whole stack against isolated directories.
func Initialize(cfg *config.Config) error {
	// Read-only backing stores
	catalogRepo := repository.NewCatalogRepository(cfg.CatalogDir)
	mappingRepo := repository.NewMappingRepository(cfg.MappingsDir)

	// Codec shared by generation and resolution so both sides of the
	// round trip abbreviate identically
	abbreviator := codec.NewAbbreviator()
	generator := codec.NewGenerator(abbreviator)

	// Engine services
	templateCache := service.NewTemplateCacheService(catalogRepo, generator, cfg.TemplateCacheFl)
	resolver := service.NewTemplateResolverService(catalogRepo, abbreviator, cfg.MatchThreshold)
	missingLog := service.NewMissingMappingLog(cfg.MissingLogFl)
	references := service.NewReferenceService(mappingRepo, missingLog, abbreviator)
	listings := service.NewListingService(references)

	// Create controllers
	controllers := &router.Controllers{
		Template:  controller.NewTemplateController(templateCache, resolver, listings),
		Reference: controller.NewReferenceController(references, mappingRepo, missingLog),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	log.Printf("✓ App initialized (catalog=%s, mappings=%s, threshold=%d/6)", cfg.CatalogDir, cfg.MappingsDir, cfg.MatchThreshold)
	return nil
}
