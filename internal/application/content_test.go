package application

import (
	"context"
	"testing"

	"github.com/linskybing/corpsite-go/internal/cms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contentFixture = `
job_listings:
  - id: j1
    title: Backend Engineer
    slug: backend-engineer
    department: Engineering
    description: |
      ## About the role

      You will build **APIs**.

      <script>alert(1)</script>
    is_active: true
    order: 1
`

func TestContentService_RendersMarkdown(t *testing.T) {
	src, err := cms.ParseFileSource([]byte(contentFixture))
	require.NoError(t, err)
	svc := NewContentService(src)

	jobs, err := svc.Jobs(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Contains(t, jobs[0].DescriptionHTML, "<h2>About the role</h2>")
	assert.Contains(t, jobs[0].DescriptionHTML, "<strong>APIs</strong>")
	assert.NotContains(t, jobs[0].DescriptionHTML, "<script>")

	job, err := svc.JobBySlug(context.Background(), "backend-engineer")
	require.NoError(t, err)
	assert.Equal(t, "j1", job.ID)
}

func TestContentService_NoSource(t *testing.T) {
	svc := NewContentService(nil)
	_, err := svc.Jobs(context.Background(), "")
	assert.ErrorIs(t, err, ErrContentUnavailable)
}
