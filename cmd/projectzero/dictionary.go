package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/project-zero/backend/internal/export"
)

type Format string

func (f *Format) Set(val string) error {
	for _, format := range allFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "Format"
}

const (
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

var (
	_          pflag.Value = (*Format)(nil)
	allFormats             = []Format{FormatYAML, FormatMarkdown, FormatPDF}
)

func newDictionaryCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "dictionary",
		Short: "Dictionary lookups and archive exports",
	}
	rootCommand.AddCommand(newDictionaryLookupCommand(), newDictionaryExportCommand())
	return &rootCommand
}

func newDictionaryLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up the definition of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx := cmd.Context()
			lookup, closeArchive, err := newLookup(ctx, cfg)
			if err != nil {
				return fmt.Errorf("newLookup > %w", err)
			}
			defer closeArchive()

			return printResult(cmd.OutOrStdout(), lookup.Lookup(ctx, args[0]))
		},
	}
}

func newDictionaryExportCommand() *cobra.Command {
	format := FormatYAML
	var outputFile string

	command := &cobra.Command{
		Use:   "export",
		Short: "Export the archived dictionary responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx := cmd.Context()
			repository, closeArchive, err := openArchive(ctx, cfg)
			if err != nil {
				return fmt.Errorf("openArchive > %w", err)
			}
			defer closeArchive()
			if repository == nil {
				return errors.New("the dictionary archive requires database.enabled in the configuration")
			}

			archived, err := repository.FindAll(ctx)
			if err != nil {
				return fmt.Errorf("repository.FindAll > %w", err)
			}

			if outputFile == "" {
				outputFile = filepath.Join(cfg.Outputs.Directory, "dictionary."+format.extension())
			}

			switch format {
			case FormatYAML:
				if err := export.WriteYAML(outputFile, archived); err != nil {
					return fmt.Errorf("export.WriteYAML > %w", err)
				}
			case FormatMarkdown, FormatPDF:
				markdownFile := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".md"
				report := export.Report{
					Title:       "Dictionary archive",
					GeneratedAt: time.Now(),
					Entries:     export.EntriesFromArchive(archived),
				}
				if err := export.WriteMarkdownFile(markdownFile, cfg.Templates.DictionaryReportTemplate, report); err != nil {
					return fmt.Errorf("export.WriteMarkdownFile > %w", err)
				}
				outputFile = markdownFile
				if format == FormatPDF {
					if outputFile, err = export.ConvertMarkdownToPDF(markdownFile); err != nil {
						return fmt.Errorf("export.ConvertMarkdownToPDF > %w", err)
					}
				}
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Exported %d words to %s\n", len(archived), color.GreenString(outputFile)); err != nil {
				return fmt.Errorf("fmt.Fprintf > %w", err)
			}
			return nil
		},
	}

	flags := command.Flags()
	flags.Var(&format, "format", fmt.Sprintf("Output format. Possible values are %v", allFormats))
	flags.StringVarP(&outputFile, "output", "o", "", "output file path (default: <outputs.directory>/dictionary.<ext>)")
	return command
}

func (f Format) extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatPDF:
		return "pdf"
	default:
		return "yml"
	}
}
