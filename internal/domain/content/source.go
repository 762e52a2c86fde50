package content

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("content not found")

// Source is the read-only query contract against the CMS.
// List queries return documents ordered by their order field.
type Source interface {
	ActiveJobListings(ctx context.Context) ([]JobListing, error)
	JobListingsByDepartment(ctx context.Context, department string) ([]JobListing, error)
	JobListingBySlug(ctx context.Context, slug string) (*JobListing, error)
	JobListingByID(ctx context.Context, id string) (*JobListing, error)
	ServiceCategories(ctx context.Context) ([]ServiceCategory, error)
	ServiceCategoryBySlug(ctx context.Context, slug string) (*ServiceCategory, error)
	TeamMembers(ctx context.Context) ([]TeamMember, error)
	Partners(ctx context.Context) ([]Partner, error)
	Testimonials(ctx context.Context) ([]Testimonial, error)
}
