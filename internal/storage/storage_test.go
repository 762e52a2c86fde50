package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"resume.pdf":              "resume.pdf",
		"../../etc/passwd":        "passwd",
		"C:\\Users\\jane\\cv.pdf": "cv.pdf",
		"my cv (final).docx":      "my_cv_final_.docx",
		"":                        "file",
		"...":                     "file",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := SanitizeFilename(strings.Repeat("a", 200) + ".pdf")
	assert.Len(t, long, 120)
	assert.True(t, strings.HasSuffix(long, ".pdf"))

	longExt := SanitizeFilename("notes." + strings.Repeat("x", 130))
	assert.Len(t, longExt, 120)
	assert.True(t, strings.HasPrefix(longExt, "notes."))
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "resumes/abc/cv.pdf", ObjectKey("resumes", "abc", "cv.pdf"))
	assert.Equal(t, "documents/abc/passwd", ObjectKey("documents", "abc", "../passwd"))
}
