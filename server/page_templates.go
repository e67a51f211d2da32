package server

import (
	"embed"
	"html/template"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFiles embed.FS

// pageTemplates holds the HTML pages served by the login flow.
type pageTemplates struct {
	login     *template.Template
	errorPage *template.Template
}

func parsePageTemplates() (*pageTemplates, error) {
	login, err := ParseTemplate("login.html")
	if err != nil {
		return nil, err
	}
	errorPage, err := ParseTemplate("error.html")
	if err != nil {
		return nil, err
	}
	return &pageTemplates{login: login, errorPage: errorPage}, nil
}

// ParseTemplate parses a page from the embedded templates directory
func ParseTemplate(name string) (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/"+name)
	if err != nil {
		return nil, errors.Wrapf(err, "[ParseTemplate] %s", name)
	}
	return tmpl, nil
}
