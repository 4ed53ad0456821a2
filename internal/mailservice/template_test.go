package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	template := NewTemplate()

	testCases := []struct {
		name         string
		templateName string
		data         any
		expectedErr  bool
	}{
		{
			name:         "success",
			templateName: newBlogTemplate,
			data: newBlogPayload{
				ID:       3,
				Title:    "Canonical string reduction",
				Author:   "Edsger W. Dijkstra",
				URL:      "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html",
				Username: "hellas",
			},
			expectedErr: false,
		},
		{
			name:         "invalid template name",
			templateName: "invalid_template.tmpl",
			data:         nil,
			expectedErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, p, h, err := template.ParseTemplate(tc.templateName, tc.data)
			assert.Equal(t, tc.expectedErr, err != nil)

			if err == nil {
				assert.Equal(t, "New blog: Canonical string reduction", s.String())
				assert.Contains(t, p.String(), "hellas just added a blog")
				assert.Contains(t, p.String(), "Edsger W. Dijkstra")
				assert.Contains(t, h.String(), "<a href=")
			}
		})
	}
}

func TestParseTemplateEscapesHTML(t *testing.T) {
	_, _, h, err := NewTemplate().ParseTemplate(newBlogTemplate, newBlogPayload{Title: "<b>bold</b>", Author: "a"})
	require.NoError(t, err)

	assert.NotContains(t, h.String(), "<b>bold</b>")
	assert.Contains(t, h.String(), "&lt;b&gt;bold&lt;/b&gt;")
}

func TestParseTemplatePlainPartsAreNotEscaped(t *testing.T) {
	s, p, h, err := NewTemplate().ParseTemplate(newBlogTemplate, newBlogPayload{Title: "Tom & Jerry's <guide>", Author: "a"})
	require.NoError(t, err)

	assert.Equal(t, "New blog: Tom & Jerry's <guide>", s.String())
	assert.Contains(t, p.String(), "Tom & Jerry's <guide>")
	assert.Contains(t, h.String(), "Tom &amp; Jerry&#39;s &lt;guide&gt;")
}
