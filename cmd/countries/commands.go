package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"countries/internal/countries/models"
	"countries/internal/countries/view"
	"countries/internal/platform/config"
	"countries/internal/theme"
	"countries/pkg/platform/sentinel"
)

type rootOptions struct {
	envFile string
	apiURL  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "countries",
		Short:         "Browse countries from the REST Countries service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the environment")
	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "override the REST Countries base URL")

	root.AddCommand(
		newSearchCmd(opts),
		newShowCmd(opts),
		newThemeCmd(opts),
	)
	return root
}

// withApp loads configuration and hands fn a fresh app that is closed
// afterwards.
func withApp(opts *rootOptions, fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := config.FromEnv(opts.envFile)
		if err != nil {
			return err
		}
		if opts.apiURL != "" {
			cfg.API.BaseURL = opts.apiURL
		}
		a := newApp(cfg, cmd.ErrOrStderr())
		defer func() {
			if cerr := a.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		return fn(cmd, a, args)
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var query, region string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "List countries matching a name and region",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			state, err := models.NewSearchState(query, region)
			if err != nil {
				return err
			}
			ctrl, err := newController(cmd.Context(), a)
			if err != nil {
				return err
			}
			res, err := ctrl.Search(cmd.Context(), state)
			if err != nil {
				return err
			}
			if res.Degraded() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not load countries: %v\n", res.Failure)
			}
			return printList(cmd.OutOrStdout(), res.Records)
		}),
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive part of the country name")
	cmd.Flags().StringVarP(&region, "region", "r", "", "one of Africa, Americas, Asia, Europe, Oceania")
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show one country and its neighbors",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			name := strings.Join(args, " ")
			ctrl, err := newController(cmd.Context(), a)
			if err != nil {
				return err
			}
			detail, err := ctrl.OpenDetail(cmd.Context(), name)
			if errors.Is(err, sentinel.ErrNotFound) {
				return fmt.Errorf("no country matches %q", name)
			}
			if err != nil {
				return err
			}
			return printDetail(cmd.OutOrStdout(), detail)
		}),
	}
}

func newThemeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|light|dark]",
		Short:     "Show or change the saved color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle", string(theme.Light), string(theme.Dark)},
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			svc, err := a.openTheme(cmd.Context())
			if err != nil {
				return err
			}
			current := svc.Current()
			switch {
			case len(args) == 0:
			case args[0] == "toggle":
				current, err = svc.Toggle(cmd.Context())
			default:
				var t theme.Theme
				if t, err = theme.Parse(args[0]); err == nil {
					current, err = svc.Set(cmd.Context(), t)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), current)
			return nil
		}),
	}
}

func newController(ctx context.Context, a *app) (*view.Controller, error) {
	m, err := a.openCountries(ctx)
	if err != nil {
		return nil, err
	}
	return m.NewController()
}

var printer = message.NewPrinter(language.English)

func population(p *int64) string {
	if p == nil {
		return "unknown"
	}
	return printer.Sprintf("%d", *p)
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return "unknown"
	}
	return *s
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}

func printList(w io.Writer, records []models.CountryRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No countries found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCAPITAL\tPOPULATION\tREGION")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, orUnknown(r.Capital), population(r.Population), r.Region)
	}
	return tw.Flush()
}

func printDetail(w io.Writer, d view.Detail) error {
	r := d.Record
	// A failed lookup leaves Names empty and reads the same as no borders.
	neighbors := joinOr(d.Neighbors.Names(), "none")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Name", r.Name},
		{"Native names", joinOr(r.NativeNameList(), "none")},
		{"Population", population(r.Population)},
		{"Region", r.Region},
		{"Subregion", orUnknown(r.Subregion)},
		{"Capital", orUnknown(r.Capital)},
		{"Top level domain", joinOr(r.TLDs, "none")},
		{"Currencies", joinOr(r.CurrencyNames(), "none")},
		{"Languages", joinOr(r.LanguageNames(), "none")},
		{"Border countries", neighbors},
		{"Flag", r.Flag},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}
