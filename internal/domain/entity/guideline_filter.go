package entity

import "github.com/google/uuid"

// GuidelineFilter is a domain-level filter for querying the catalog.
// Used by repository layer to avoid coupling with delivery DTOs.
type GuidelineFilter struct {
	Category   string               // Filter by category (exact match)
	Name       string               // Filter by guideline name (ILIKE)
	Visibility *GuidelineVisibility // nil = public plus the viewer's private copies
	ViewerID   *uuid.UUID           // Owner of private copies to include
}
