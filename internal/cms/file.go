package cms

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/linskybing/corpsite-go/internal/domain/content"
	"gopkg.in/yaml.v3"
)

// fixture is the on-disk layout of a content export.
type fixture struct {
	JobListings       []content.JobListing      `yaml:"job_listings"`
	ServiceCategories []content.ServiceCategory `yaml:"service_categories"`
	TeamMembers       []content.TeamMember      `yaml:"team_members"`
	Partners          []content.Partner         `yaml:"partners"`
	Testimonials      []content.Testimonial     `yaml:"testimonials"`
}

// FileSource serves content from a YAML export. It is used for local
// development and tests when no CMS project is configured.
type FileSource struct {
	data fixture
}

func LoadFileSource(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content fixture: %w", err)
	}
	return ParseFileSource(raw)
}

func ParseFileSource(raw []byte) (*FileSource, error) {
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse content fixture: %w", err)
	}
	sort.SliceStable(f.JobListings, func(i, j int) bool { return f.JobListings[i].Order < f.JobListings[j].Order })
	sort.SliceStable(f.ServiceCategories, func(i, j int) bool { return f.ServiceCategories[i].Order < f.ServiceCategories[j].Order })
	sort.SliceStable(f.TeamMembers, func(i, j int) bool { return f.TeamMembers[i].Order < f.TeamMembers[j].Order })
	sort.SliceStable(f.Partners, func(i, j int) bool { return f.Partners[i].Order < f.Partners[j].Order })
	sort.SliceStable(f.Testimonials, func(i, j int) bool { return f.Testimonials[i].Order < f.Testimonials[j].Order })
	return &FileSource{data: f}, nil
}

func (s *FileSource) ActiveJobListings(ctx context.Context) ([]content.JobListing, error) {
	out := []content.JobListing{}
	for _, j := range s.data.JobListings {
		if j.IsActive {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *FileSource) JobListingsByDepartment(ctx context.Context, department string) ([]content.JobListing, error) {
	out := []content.JobListing{}
	for _, j := range s.data.JobListings {
		if j.IsActive && strings.EqualFold(j.Department, department) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *FileSource) JobListingBySlug(ctx context.Context, slug string) (*content.JobListing, error) {
	for i := range s.data.JobListings {
		if s.data.JobListings[i].Slug == slug {
			j := s.data.JobListings[i]
			return &j, nil
		}
	}
	return nil, content.ErrNotFound
}

func (s *FileSource) JobListingByID(ctx context.Context, id string) (*content.JobListing, error) {
	for i := range s.data.JobListings {
		if s.data.JobListings[i].ID == id {
			j := s.data.JobListings[i]
			return &j, nil
		}
	}
	return nil, content.ErrNotFound
}

func (s *FileSource) ServiceCategories(ctx context.Context) ([]content.ServiceCategory, error) {
	return append([]content.ServiceCategory{}, s.data.ServiceCategories...), nil
}

func (s *FileSource) ServiceCategoryBySlug(ctx context.Context, slug string) (*content.ServiceCategory, error) {
	for i := range s.data.ServiceCategories {
		if s.data.ServiceCategories[i].Slug == slug {
			c := s.data.ServiceCategories[i]
			return &c, nil
		}
	}
	return nil, content.ErrNotFound
}

func (s *FileSource) TeamMembers(ctx context.Context) ([]content.TeamMember, error) {
	return append([]content.TeamMember{}, s.data.TeamMembers...), nil
}

func (s *FileSource) Partners(ctx context.Context) ([]content.Partner, error) {
	return append([]content.Partner{}, s.data.Partners...), nil
}

func (s *FileSource) Testimonials(ctx context.Context) ([]content.Testimonial, error) {
	out := []content.Testimonial{}
	for _, t := range s.data.Testimonials {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}
