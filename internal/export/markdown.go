package export

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const fallbackTemplateName = "dictionary-report.md.go.tmpl"

//go:embed templates/dictionary-report.md.go.tmpl
var fallbackDictionaryReportTemplate string

// ParseReportTemplate parses templatePath, falling back to the embedded
// template when the path is empty, missing or fails to parse.
func ParseReportTemplate(templatePath string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackTemplateName).
		Funcs(funcMap).
		Parse(fallbackDictionaryReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

func WriteMarkdown(output io.Writer, templatePath string, report Report) error {
	tmpl, err := ParseReportTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseReportTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, report); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// WriteMarkdownFile renders report into path, creating its directory.
func WriteMarkdownFile(path, templatePath string, report Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := WriteMarkdown(file, templatePath, report); err != nil {
		return fmt.Errorf("WriteMarkdown() > %w", err)
	}
	return nil
}
