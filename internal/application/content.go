package application

import (
	"bytes"
	"context"
	"errors"
	"log"

	"github.com/linskybing/corpsite-go/internal/domain/content"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var ErrContentUnavailable = errors.New("content source unavailable")

// JobListingView is a job listing with its Markdown description rendered.
type JobListingView struct {
	content.JobListing
	DescriptionHTML string `json:"descriptionHtml"`
}

// ContentService is the read side of the CMS for the public site.
type ContentService struct {
	source   content.Source
	markdown goldmark.Markdown
}

func NewContentService(source content.Source) *ContentService {
	return &ContentService{
		source:   source,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (s *ContentService) Jobs(ctx context.Context, department string) ([]JobListingView, error) {
	if s.source == nil {
		return nil, ErrContentUnavailable
	}
	var (
		jobs []content.JobListing
		err  error
	)
	if department != "" {
		jobs, err = s.source.JobListingsByDepartment(ctx, department)
	} else {
		jobs, err = s.source.ActiveJobListings(ctx)
	}
	if err != nil {
		return nil, err
	}
	views := make([]JobListingView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, s.view(j))
	}
	return views, nil
}

func (s *ContentService) JobBySlug(ctx context.Context, slug string) (*JobListingView, error) {
	if s.source == nil {
		return nil, ErrContentUnavailable
	}
	job, err := s.source.JobListingBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	v := s.view(*job)
	return &v, nil
}

func (s *ContentService) ServiceCategories(ctx context.Context) ([]content.ServiceCategory, error) {
	if s.source == nil {
		return nil, ErrContentUnavailable
	}
	return s.source.ServiceCategories(ctx)
}

func (s *ContentService) ServiceCategory(ctx context.Context, slug string) (*content.ServiceCategory, error) {
	if s.source == nil {
		return nil, ErrContentUnavailable
	}
	return s.source.ServiceCategoryBySlug(ctx, slug)
}

func (s *ContentService) TeamMembers(ctx context.Context) ([]content.TeamMember, error) {
	if s.source == nil {
		return nil, ErrContentUnavailable
	}
	return s.source.TeamMembers(ctx)
}

func (s *ContentService) Partners(ctx context.Context) ([]content.Partner, error) {
	if s.source == nil {
		return nil, ErrContentUnavailable
	}
	return s.source.Partners(ctx)
}

func (s *ContentService) Testimonials(ctx context.Context) ([]content.Testimonial, error) {
	if s.source == nil {
		return nil, ErrContentUnavailable
	}
	return s.source.Testimonials(ctx)
}

func (s *ContentService) view(j content.JobListing) JobListingView {
	return JobListingView{JobListing: j, DescriptionHTML: s.RenderMarkdown(j.Description)}
}

// RenderMarkdown converts CMS Markdown to HTML. Raw HTML in the source is
// omitted by goldmark's default renderer.
func (s *ContentService) RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(src), &buf); err != nil {
		log.Printf("[content] markdown render failed: %v", err)
		return ""
	}
	return buf.String()
}
