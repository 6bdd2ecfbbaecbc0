// Command parley is a thin CLI over the dispatch core: one-shot chat with
// tool calling, and concurrent batch execution of independent prompts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/parley-ai/parley/core/agent"
	"github.com/parley-ai/parley/core/batch"
	"github.com/parley-ai/parley/core/config"
	"github.com/parley-ai/parley/providers/observability"
	"github.com/parley-ai/parley/providers/observability/slogobs"
	"github.com/parley-ai/parley/providers/tool"
	"github.com/parley-ai/parley/providers/tool/fsops"
	"github.com/parley-ai/parley/providers/tool/shell"
	"github.com/parley-ai/parley/providers/tool/webfetch"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	var verbose bool

	root := &cobra.Command{
		Use:           "parley",
		Short:         "Dispatch conversations to LLM providers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (default: environment / .env)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	loadConfig := func() (config.Config, error) {
		if configFile != "" {
			return config.LoadFile(configFile)
		}
		return config.Load(), nil
	}

	newContext := func() context.Context {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return observability.WithObserver(context.Background(), slogobs.New(logger))
	}

	chat := &cobra.Command{
		Use:   "chat <prompt>",
		Short: "Send one prompt through the tool-calling loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := agent.New(cfg, defaultCatalog())
			if err != nil {
				return err
			}

			reply, err := a.Chat(newContext(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(reply.Content)
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch <prompt> [prompt...]",
		Short: "Run independent prompts concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dispatcher := batch.New(cfg, defaultCatalog())
			results := dispatcher.Run(newContext(), args)

			for _, result := range results {
				fmt.Printf("--- %s\n%s\n", result.Prompt, result.Reply.Content)
			}
			if len(results) < len(args) {
				fmt.Fprintf(os.Stderr, "%d of %d prompts failed\n", len(args)-len(results), len(args))
			}
			return nil
		},
	}

	root.AddCommand(chat, batchCmd)
	return root
}

// defaultCatalog registers the built-in tool set advertised to providers.
func defaultCatalog() *tool.Catalog {
	return tool.NewCatalogWithTools(
		fsops.NewReadFileTool(),
		fsops.NewWriteFileTool(),
		fsops.NewDeleteFileTool(),
		fsops.NewListDirTool(),
		shell.NewRunCommandTool(),
		shell.NewEvalCodeTool(),
		webfetch.NewFetchURLTool(),
	)
}
