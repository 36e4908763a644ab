package pagemeta

import (
	"context"
	"time"
)

// Inspection is the extracted metadata of one page at one point in time.
// Title, BestTitle, and SiteName are nil when no candidate was found, which
// is distinct from an empty string.
type Inspection struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       *string   `json:"title"`
	BestTitle   *string   `json:"bestTitle"`
	SiteName    *string   `json:"siteName"`
	Description string    `json:"description"`
	Language    string    `json:"language,omitempty"`
	Content     string    `json:"content,omitempty"` // Markdown
	ContentHash string    `json:"contentHash,omitempty"`
	InspectedAt time.Time `json:"inspectedAt"`
}

// NewInspection builds an Inspection for url from the answers of page.
func NewInspection(url string, page *Page) *Inspection {
	return &Inspection{
		URL:         url,
		Title:       optional(page.Title()),
		BestTitle:   optional(page.BestTitle()),
		SiteName:    optional(page.BestSiteName()),
		Description: page.Description(),
	}
}

func optional(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}

// Validate returns an error if the inspection contains invalid fields.
func (i *Inspection) Validate() error {
	if i.URL == "" {
		return Errorf(EINVALID, "inspection URL required")
	}
	return nil
}

// InspectionService represents a service for managing stored inspections.
type InspectionService interface {
	// CreateInspection stores a new inspection, assigning its ID and
	// InspectedAt.
	CreateInspection(ctx context.Context, inspection *Inspection) error

	// FindInspectionByID retrieves an inspection by ID.
	// Returns ENOTFOUND if the inspection does not exist.
	FindInspectionByID(ctx context.Context, id string) (*Inspection, error)

	// FindInspections retrieves inspections matching the filter, newest first.
	FindInspections(ctx context.Context, filter InspectionFilter) ([]*Inspection, error)

	// DeleteInspection permanently removes an inspection.
	// Returns ENOTFOUND if the inspection does not exist.
	DeleteInspection(ctx context.Context, id string) error
}

// InspectionFilter represents a filter for FindInspections.
type InspectionFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
