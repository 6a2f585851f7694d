package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/project-zero/backend/internal/config"
	"github.com/project-zero/backend/internal/nlp"
)

func newNLPCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "nlp",
		Short: "Call the NLP keyword extraction service",
	}

	rootCommand.AddCommand(
		&cobra.Command{
			Use:   "ping",
			Short: "Check the NLP service is reachable",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withNLPClient(func(cfg *config.Config, client *nlp.Client) error {
					payload, err := client.TestConnection(cmd.Context())
					if err != nil {
						return fmt.Errorf("client.TestConnection > %w", err)
					}
					return printJSON(cmd.OutOrStdout(), payload)
				})
			},
		},
		newNLPProcessCommand(),
		newNLPResultCommand(),
	)
	return &rootCommand
}

func newNLPProcessCommand() *cobra.Command {
	var async bool
	command := &cobra.Command{
		Use:   "process <text>...",
		Short: "Extract keywords from text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			return withNLPClient(func(cfg *config.Config, client *nlp.Client) error {
				process := client.ProcessText
				if async {
					process = client.ProcessTextAsync
				}
				payload, err := process(cmd.Context(), content)
				if err != nil {
					return fmt.Errorf("client.ProcessText > %w", err)
				}
				return printJSON(cmd.OutOrStdout(), payload)
			})
		},
	}
	command.Flags().BoolVar(&async, "async", false, "submit a background task instead of waiting for the keywords")
	return command
}

func newNLPResultCommand() *cobra.Command {
	var wait bool
	command := &cobra.Command{
		Use:   "result <task-id>",
		Short: "Show the result of an asynchronous task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNLPClient(func(cfg *config.Config, client *nlp.Client) error {
				var payload json.RawMessage
				var err error
				if wait {
					payload, err = client.WaitForResult(cmd.Context(), args[0], cfg.NLP.PollAttempts, cfg.NLP.PollInterval)
				} else {
					payload, err = client.GetResult(cmd.Context(), args[0])
				}
				if err != nil {
					return fmt.Errorf("get result of %s > %w", args[0], err)
				}
				return printJSON(cmd.OutOrStdout(), payload)
			})
		},
	}
	command.Flags().BoolVar(&wait, "wait", false, "poll until the task is no longer pending")
	return command
}

func withNLPClient(fn func(cfg *config.Config, client *nlp.Client) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	client := nlp.NewClient(cfg.NLP.BaseURL, cfg.NLP.Timeout)
	defer func() {
		_ = client.Close()
	}()
	return fn(cfg, client)
}

func printJSON(w io.Writer, payload json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return fmt.Errorf("json.Indent > %w", err)
	}
	buf.WriteByte('\n')
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("buf.WriteTo > %w", err)
	}
	return nil
}
