package main

import (
	"strings"

	"github.com/hyperjump/internai/internal/models"
	"github.com/spf13/cobra"
)

func (a *app) askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the mentor a question",
		Long: "Ask a free-text question. Questions about what to learn next get learning guidance;\n" +
			"anything else is answered as an explanation of the concept it names.",
		Example: "  internai ask what should I learn next\n  internai ask \"explain JWT authentication\"",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, err := a.mentor.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return a.printer.Answer(answer)
		},
	}
}

func (a *app) explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <concept...>",
		Short: "Explain a concept using your journal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, err := a.mentor.Explain(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return a.printer.Answer(answer)
		},
	}
}

func (a *app) guidanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guidance",
		Short: "Get learning guidance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, err := a.mentor.Guidance(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Answer(answer)
		},
	}
}

func (a *app) searchCmd() *cobra.Command {
	var scope string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Semantic search over concepts or logs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := models.ParseSearchScope(scope)
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = a.cfg.Search.DefaultLimit
			}
			query := strings.Join(args, " ")
			results, err := a.mentor.Search(cmd.Context(), query, s, limit)
			if err != nil {
				return err
			}
			return a.printer.SearchResults(query, s, results)
		},
	}

	cmd.Flags().StringVar(&scope, "scope", string(models.ScopeConcepts), "concepts or logs")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (default from config)")
	return cmd
}
