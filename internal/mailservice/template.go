package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"path"
)

//go:embed templates/*
var templateFS embed.FS

// NewTemplate parses every embedded template once. Each file is kept in its own set because all
// of them define the same subject, plainBody and htmlBody blocks.
func NewTemplate() *Template {
	names, err := fs.Glob(templateFS, "templates/*.tmpl")
	if err != nil {
		panic(err)
	}

	sets := make(map[string]*template.Template, len(names))
	for _, name := range names {
		sets[path.Base(name)] = template.Must(template.New("email").ParseFS(templateFS, name))
	}

	return &Template{sets: sets}
}

// ParseTemplate renders the subject, plain text body and HTML body of the named template with data.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, ok := tp.sets[name]
	if !ok {
		return nil, nil, nil, fmt.Errorf("could not find template %q", name)
	}

	subject, err := executePlain(t, "subject", data)
	if err != nil {
		return nil, nil, nil, err
	}

	plainBody, err := executePlain(t, "plainBody", data)
	if err != nil {
		return nil, nil, nil, err
	}

	htmlBody := new(bytes.Buffer)
	err = t.ExecuteTemplate(htmlBody, "htmlBody", data)
	if err != nil {
		return nil, nil, nil, err
	}

	return subject, plainBody, htmlBody, nil
}

// executePlain renders a block that ends up in a header or a text/plain part, where HTML entities
// would be shown literally.
func executePlain(t *template.Template, name string, data any) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	err := t.ExecuteTemplate(buf, name, data)
	if err != nil {
		return nil, err
	}

	return bytes.NewBufferString(html.UnescapeString(buf.String())), nil
}
