package service

// TemplateCacheInterface defines the contract for the template picklist cache
type TemplateCacheInterface interface {
	AllTemplates() []string
	Invalidate()
	Describe() string
}

// Ensure TemplateCacheService implements TemplateCacheInterface
var _ TemplateCacheInterface = (*TemplateCacheService)(nil)
