// Package main is the entry point for the cronpad CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flemzord/cronpad/internal/crontab"
	"github.com/flemzord/cronpad/internal/jobindex"
	"github.com/flemzord/cronpad/internal/lifecycle"
	"github.com/flemzord/cronpad/internal/schedule"
	"github.com/flemzord/cronpad/pkg/app"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cronpad:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var params app.Params
	root := &cobra.Command{
		Use:           "cronpad",
		Short:         "Interactive editor for crontab jobs",
		Long:          "cronpad lists, adds, removes and modifies crontab jobs, asking for confirmation before every change.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.In = cmd.InOrStdin()
			params.Out = cmd.OutOrStdout()
			return app.Run(params)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&params.ConfigPath, "config", "c", "", "Path to configuration file")
	flags.StringVarP(&params.File, "file", "f", "", "Edit a crontab-format file instead of the user crontab")
	flags.StringVarP(&params.User, "user", "u", "", "Edit another user's crontab (needs privileges)")
	flags.StringVar(&params.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&params.UIMode, "ui", "", "Prompt style: auto, line or form")

	root.AddCommand(
		versionCmd(),
		listCmd(&params),
		searchCmd(&params),
		checkCmd(),
		historyCmd(&params),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cronpad %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// readOnly refuses every confirmation; the listing commands never mutate.
var readOnly = lifecycle.ConfirmFunc(func(context.Context, string, *crontab.Job) (bool, error) {
	return false, nil
})

// withManager sets up the environment and a read-only manager for fn.
func withManager(cmd *cobra.Command, params *app.Params, fn func(*lifecycle.Manager) error) (err error) {
	ctx := cmd.Context()
	p := *params
	p.Out = cmd.OutOrStdout()
	env, err := app.Setup(ctx, p)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	m, err := env.Manager(ctx, readOnly)
	if err != nil {
		return err
	}
	return fn(m)
}

func listCmd(params *app.Params) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print active and inactive jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, params, func(m *lifecycle.Manager) error {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "User: %s\nJob Count: %d\n", m.Table().Owner, m.Table().Len())
				fmt.Fprintln(w, "Active Jobs:")
				printIndex(w, m.Active(), "no active jobs")
				fmt.Fprintln(w, "\nInactive Jobs:")
				printIndex(w, m.Inactive(), "no inactive jobs")
				return nil
			})
		},
	}
}

func searchCmd(params *app.Params) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find jobs by command or comment; /expr/ searches by regular expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := args[0]
			var re *regexp.Regexp
			if len(term) > 2 && strings.HasPrefix(term, "/") && strings.HasSuffix(term, "/") {
				var err error
				if re, err = regexp.Compile(term[1 : len(term)-1]); err != nil {
					return fmt.Errorf("bad pattern: %w", err)
				}
			}
			return withManager(cmd, params, func(m *lifecycle.Manager) error {
				ix := m.Search(term)
				if re != nil {
					ix = m.SearchPattern(re)
				}
				w := cmd.OutOrStdout()
				if ix.Len() == 0 {
					fmt.Fprintf(w, "No jobs found for query: %q\n", term)
					return nil
				}
				fmt.Fprintf(w, "Search query found %d job(s):\n", ix.Len())
				printIndex(w, ix, "")
				return nil
			})
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <expression>",
		Short: "Validate a schedule expression or macro",
		Example: `  cronpad check "0-30/10 9-17 * * 1-5"
  cronpad check @weekly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := schedule.Parse(args[0])
			if err != nil {
				return err
			}
			expr, err := spec.Render()
			if err != nil {
				return err
			}
			if err := crontab.ValidateSchedule(expr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", expr)
			return nil
		},
	}
}

func historyCmd(params *app.Params) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently committed changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			p := *params
			p.Out = cmd.OutOrStdout()
			env, err := app.Setup(cmd.Context(), p)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := env.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			if env.Journal == nil {
				return errors.New("history is disabled")
			}

			changes, err := env.Journal.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(changes) == 0 {
				fmt.Fprintln(w, "No changes recorded.")
				return nil
			}
			for _, c := range changes {
				fmt.Fprintf(w, "%s  %-15s %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04:05"), c.Action, c.Owner)
				if c.Before != "" {
					fmt.Fprintf(w, "    - %s\n", c.Before)
				}
				if c.After != "" {
					fmt.Fprintf(w, "    + %s\n", c.After)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of changes to show; 0 shows all")
	return cmd
}

func printIndex(w io.Writer, ix jobindex.Index, empty string) {
	if ix.Len() == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	for _, e := range ix.Entries() {
		fmt.Fprintf(w, "%d. %s\n", e.Position, e.Job.Line())
	}
}
