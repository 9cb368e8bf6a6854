package models

import "time"

// Batch identifies one of the two parallel cohorts. Exactly two exist; both
// share the same 15-title catalog but follow opposite odd/even schedules.
type Batch string

const (
	BatchA Batch = "Batch A"
	BatchB Batch = "Batch B"
)

// Batches lists the two cohorts in display order.
var Batches = []Batch{BatchA, BatchB}

// IsValidBatch reports whether s names a known batch.
func IsValidBatch(s string) bool {
	return Batch(s) == BatchA || Batch(s) == BatchB
}

// batchBOffset separates Batch B course IDs from Batch A's so the same
// 15-title catalog yields 30 distinct addressable course instances
// (A: 1..15, B: 101..115).
const batchBOffset = 100

// CatalogTitles is the fixed 15-title course catalog, enumerated once at
// startup and never mutated at runtime.
var CatalogTitles = []string{
	"Video Editing",
	"Graphic Designing",
	"Web Development",
	"SEO",
	"Content Writing",
	"Digital Marketing",
	"Freelancing",
	"E-Commerce",
	"Amazon VA",
	"Affiliate Marketing",
	"YouTube Mastery",
	"Mobile App Development",
	"UI UX Design",
	"Data Entry",
	"Dropshipping",
}

// Course is one batch's instance of a catalog title.
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;index" json:"title"`
	Batch     Batch     `gorm:"not null;index" json:"batch"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BuildCatalog constructs the full immutable 30-course catalog (15 titles per
// batch, Batch B IDs offset by 100). Callers receive a fresh slice each time.
func BuildCatalog() []Course {
	catalog := make([]Course, 0, 2*len(CatalogTitles))
	for i, title := range CatalogTitles {
		catalog = append(catalog, Course{ID: uint(i + 1), Title: title, Batch: BatchA})
	}
	for i, title := range CatalogTitles {
		catalog = append(catalog, Course{ID: uint(i + 1 + batchBOffset), Title: title, Batch: BatchB})
	}
	return catalog
}
