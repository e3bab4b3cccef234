package service

import (
	"vitrina-tech/models"
)

// TemplateResolverInterface defines the contract for template resolution
type TemplateResolverInterface interface {
	Resolve(template string) *models.ResolvedRecord
}

// Ensure TemplateResolverService implements TemplateResolverInterface
var _ TemplateResolverInterface = (*TemplateResolverService)(nil)
