package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/jrsteele09/courier-admin/console"
	"github.com/jrsteele09/courier-admin/session"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

var pageTemplates = map[session.Page]string{
	session.PageCategories:    "categories.html",
	session.PageSubcategories: "subcategories.html",
	session.PageProducts:      "products.html",
	session.PageCouriers:      "couriers.html",
	session.PageCities:        "cities.html",
}

var templateFuncs = template.FuncMap{
	"page":      func(p session.Page) string { return string(p) },
	"tableArgs": tableArgs,
}

// tableArgs bundles what the shared "table" template needs from a console page.
func tableArgs(data ConsolePageData, table console.Table, actions, deletable bool) map[string]any {
	return map[string]any{
		"Table":     table,
		"Actions":   actions,
		"Deletable": deletable,
		"Page":      data.Active,
		"Query":     data.Query,
	}
}

func TemplateFilesFS() fs.FS {
	// Create the sub filesystem once
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(templateFuncs).Parse(string(content))
}

// parseLayoutPage parses the console layout together with the page that defines its "content" block.
func parseLayoutPage(name string) (*template.Template, error) {
	return template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}

func (s *Server) parseTemplates() error {
	var err error
	if s.loginTmpl, err = ParseTemplate("login.html"); err != nil {
		return fmt.Errorf("login.html: %w", err)
	}
	if s.emptyTmpl, err = parseLayoutPage("empty.html"); err != nil {
		return fmt.Errorf("empty.html: %w", err)
	}
	s.pageTmpls = make(map[session.Page]*template.Template, len(pageTemplates))
	for page, name := range pageTemplates {
		tmpl, err := parseLayoutPage(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		s.pageTmpls[page] = tmpl
	}
	return nil
}
