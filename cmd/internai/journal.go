package main

import (
	"errors"
	"strings"

	"github.com/hyperjump/internai/internal/extract"
	"github.com/hyperjump/internai/internal/models"
	"github.com/spf13/cobra"
)

var errEmptyLog = errors.New("log text is empty")

func (a *app) logCmd() *cobra.Command {
	var dateFlag, file string

	cmd := &cobra.Command{
		Use:   "log [text...]",
		Short: "Submit today's (or --date's) daily log",
		Long: "Submit a daily log. The text is the remaining arguments, or the contents of --file.\n" +
			"With --file and no --date, a file named YYYY-MM-DD* is logged for that date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, text, err := logInput(dateFlag, file, args)
			if err != nil {
				return err
			}
			view, err := a.mentor.SubmitLog(cmd.Context(), date, text)
			if err != nil {
				return err
			}
			return a.printer.Submitted(view)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "log date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the log text from a file")
	return cmd
}

// logInput resolves the date and raw text of a log command. The text is never blank.
func logInput(dateFlag, file string, args []string) (models.Date, string, error) {
	date := models.Today()
	text := strings.Join(args, " ")
	if file != "" {
		if len(args) > 0 {
			return models.Date{}, "", errors.New("pass the log text or --file, not both")
		}
		var err error
		if text, err = extract.NewExtractor().Extract(file); err != nil {
			return models.Date{}, "", err
		}
		if d, ok := extract.DateFromFilename(file); ok {
			date = d
		}
	}
	if dateFlag != "" {
		d, err := models.ParseDate(dateFlag)
		if err != nil {
			return models.Date{}, "", err
		}
		date = d
	}
	if strings.TrimSpace(text) == "" {
		return models.Date{}, "", errEmptyLog
	}
	return date, text, nil
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <date>",
		Short: "Show the log for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := models.ParseDate(args[0])
			if err != nil {
				return err
			}
			view, err := a.mentor.ShowLog(cmd.Context(), date)
			if err != nil {
				return err
			}
			return a.printer.Log(view)
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var skip, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List daily logs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = a.cfg.Logs.ListLimit
			}
			recs, err := a.mentor.ListLogs(cmd.Context(), skip, limit)
			if err != nil {
				return err
			}
			return a.printer.Logs(recs)
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "number of logs to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of logs (default from config)")
	return cmd
}

func (a *app) summaryCmd() *cobra.Command {
	var mode, start, end string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Generate a diary summary for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := models.ParseSummaryMode(mode)
			if err != nil {
				return err
			}
			startDate := models.Today()
			if start != "" {
				if startDate, err = models.ParseDate(start); err != nil {
					return err
				}
			}
			view, err := a.mentor.Summarize(cmd.Context(), m, startDate, end)
			if err != nil {
				return err
			}
			return a.printer.Summary(view)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(models.SummaryDaily), "daily, weekly or monthly")
	cmd.Flags().StringVar(&start, "start", "", "first day of the period (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the period (default derived from --mode)")
	return cmd
}

func (a *app) dashboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show backend status and recent logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = a.cfg.Logs.ListLimit
			}
			d, err := a.mentor.Dashboard(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return a.printer.Dashboard(d)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "number of recent logs (default from config)")
	return cmd
}

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.mentor.Health(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Health(h)
		},
	}
}
