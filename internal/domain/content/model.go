package content

import "time"

type JobListing struct {
	ID             string     `json:"_id" yaml:"id"`
	Title          string     `json:"title" yaml:"title"`
	Slug           string     `json:"slug" yaml:"slug"`
	Department     string     `json:"department" yaml:"department"`
	Location       string     `json:"location" yaml:"location"`
	EmploymentType string     `json:"employmentType" yaml:"employment_type"`
	Description    string     `json:"description" yaml:"description"`
	Requirements   []string   `json:"requirements" yaml:"requirements"`
	Benefits       []string   `json:"benefits" yaml:"benefits"`
	SalaryRange    string     `json:"salaryRange,omitempty" yaml:"salary_range"`
	IsActive       bool       `json:"isActive" yaml:"is_active"`
	Order          int        `json:"order" yaml:"order"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty" yaml:"published_at"`
}

type Service struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type ServiceCategory struct {
	ID          string    `json:"_id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Slug        string    `json:"slug" yaml:"slug"`
	Description string    `json:"description" yaml:"description"`
	Order       int       `json:"order" yaml:"order"`
	Services    []Service `json:"services" yaml:"services"`
}

type TeamMember struct {
	ID       string `json:"_id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Role     string `json:"role" yaml:"role"`
	Bio      string `json:"bio" yaml:"bio"`
	ImageURL string `json:"imageUrl" yaml:"image_url"`
	Order    int    `json:"order" yaml:"order"`
}

type Partner struct {
	ID      string `json:"_id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	LogoURL string `json:"logoUrl" yaml:"logo_url"`
	Website string `json:"website" yaml:"website"`
	Order   int    `json:"order" yaml:"order"`
}

type Testimonial struct {
	ID       string `json:"_id" yaml:"id"`
	Author   string `json:"author" yaml:"author"`
	Company  string `json:"company" yaml:"company"`
	Quote    string `json:"quote" yaml:"quote"`
	Order    int    `json:"order" yaml:"order"`
	IsActive bool   `json:"isActive" yaml:"is_active"`
}
