// Package cms reads marketing and careers content from the headless CMS.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/linskybing/corpsite-go/internal/domain/content"
)

const (
	jobListingProjection = `{_id, title, "slug": slug.current, department, location, employmentType, description, requirements, benefits, salaryRange, isActive, order, publishedAt}`

	queryActiveJobListings   = `*[_type == "jobListing" && isActive == true] | order(order asc) ` + jobListingProjection
	queryJobsByDepartment    = `*[_type == "jobListing" && isActive == true && department == $department] | order(order asc) ` + jobListingProjection
	queryJobListingBySlug    = `*[_type == "jobListing" && slug.current == $slug][0]` + jobListingProjection
	queryJobListingByID      = `*[_type == "jobListing" && _id == $id][0]` + jobListingProjection
	queryServiceCategories   = `*[_type == "serviceCategory"] | order(order asc) {_id, title, "slug": slug.current, description, order, services[]{title, description}}`
	queryServiceCategorySlug = `*[_type == "serviceCategory" && slug.current == $slug][0]{_id, title, "slug": slug.current, description, order, services[]{title, description}}`
	queryTeamMembers         = `*[_type == "teamMember"] | order(order asc) {_id, name, role, bio, "imageUrl": image.asset->url, order}`
	queryPartners            = `*[_type == "partner"] | order(order asc) {_id, name, "logoUrl": logo.asset->url, website, order}`
	queryTestimonials        = `*[_type == "testimonial" && isActive == true] | order(order asc) {_id, author, company, quote, order, isActive}`
)

type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	// BaseURL overrides the project API host, e.g. for a self-hosted gateway.
	BaseURL string
	Timeout time.Duration
}

// Client queries the CMS HTTP query API. It implements content.Source.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	}
	version := strings.TrimPrefix(cfg.APIVersion, "v")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: fmt.Sprintf("%s/v%s/data/query/%s", base, version, cfg.Dataset),
		token:    cfg.Token,
		http:     &http.Client{Timeout: timeout},
	}
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// Query runs a query with $-prefixed parameters and decodes the result into out.
// A null result is reported as content.ErrNotFound.
func (c *Client) Query(ctx context.Context, query string, params map[string]any, out any) error {
	values := url.Values{}
	values.Set("query", query)
	for k, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", k, err)
		}
		values.Set("$"+k, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cms request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("cms read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("cms query failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return fmt.Errorf("cms decode response: %w", err)
	}
	if len(qr.Result) == 0 || string(qr.Result) == "null" {
		return content.ErrNotFound
	}
	return json.Unmarshal(qr.Result, out)
}

func (c *Client) ActiveJobListings(ctx context.Context) ([]content.JobListing, error) {
	var out []content.JobListing
	if err := c.list(ctx, queryActiveJobListings, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) JobListingsByDepartment(ctx context.Context, department string) ([]content.JobListing, error) {
	var out []content.JobListing
	if err := c.list(ctx, queryJobsByDepartment, map[string]any{"department": department}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) JobListingBySlug(ctx context.Context, slug string) (*content.JobListing, error) {
	var out content.JobListing
	if err := c.Query(ctx, queryJobListingBySlug, map[string]any{"slug": slug}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) JobListingByID(ctx context.Context, id string) (*content.JobListing, error) {
	var out content.JobListing
	if err := c.Query(ctx, queryJobListingByID, map[string]any{"id": id}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ServiceCategories(ctx context.Context) ([]content.ServiceCategory, error) {
	var out []content.ServiceCategory
	if err := c.list(ctx, queryServiceCategories, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ServiceCategoryBySlug(ctx context.Context, slug string) (*content.ServiceCategory, error) {
	var out content.ServiceCategory
	if err := c.Query(ctx, queryServiceCategorySlug, map[string]any{"slug": slug}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TeamMembers(ctx context.Context) ([]content.TeamMember, error) {
	var out []content.TeamMember
	if err := c.list(ctx, queryTeamMembers, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Partners(ctx context.Context) ([]content.Partner, error) {
	var out []content.Partner
	if err := c.list(ctx, queryPartners, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Testimonials(ctx context.Context) ([]content.Testimonial, error) {
	var out []content.Testimonial
	if err := c.list(ctx, queryTestimonials, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// list treats a null result as an empty list.
func (c *Client) list(ctx context.Context, query string, params map[string]any, out any) error {
	err := c.Query(ctx, query, params, out)
	if err == content.ErrNotFound {
		return nil
	}
	return err
}
