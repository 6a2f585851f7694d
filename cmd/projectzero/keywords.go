package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/project-zero/backend/internal/enrichment"
	"github.com/project-zero/backend/internal/export"
)

func newKeywordsCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "keywords",
		Short: "Keyword enrichment",
	}

	var documentID string
	var outputFile string
	processCommand := &cobra.Command{
		Use:   "process <keyword>...",
		Short: "Enrich keywords of a document with dictionary definitions",
		Args:  cobra.MinimumNArgs(1),
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

			cache := enrichment.NewCache(lookup, enrichment.WithKeywordPause(cfg.Dictionary.KeywordPause))
			cache.ProcessKeywords(ctx, args, documentID)
			words := cache.WordDictionary()

			if outputFile != "" {
				if err := export.WriteYAML(outputFile, words); err != nil {
					return fmt.Errorf("export.WriteYAML > %w", err)
				}
				return nil
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			defer func() {
				_ = encoder.Close()
			}()
			if err := encoder.Encode(words); err != nil {
				return fmt.Errorf("encoder.Encode > %w", err)
			}
			return nil
		},
	}
	flags := processCommand.Flags()
	flags.StringVar(&documentID, "document", "", "id of the document the keywords come from")
	flags.StringVarP(&outputFile, "output", "o", "", "write the enriched keywords as YAML to this file")
	_ = processCommand.MarkFlagRequired("document")

	rootCommand.AddCommand(processCommand)
	return &rootCommand
}
