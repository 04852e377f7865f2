package main

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// loadTemplates parses each page template together with the shared layout.
// The map is keyed by page name without the extension.
func loadTemplates() (map[string]*template.Template, error) {
	pages := []string{
		"login.html",
		"dashboard.html",
		"logs.html",
		"add_employee.html",
		"error.html",
	}

	tmpls := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		tmpls[strings.TrimSuffix(page, ".html")] = t
	}

	return tmpls, nil
}
