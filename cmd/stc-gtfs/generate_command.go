package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/config"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/converter"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/filter"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/formatter"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/gtfs"
)

const todayLayout = "20060102"

type generateOptions struct {
	input     string
	output    string
	prefix    string
	format    string
	feed      string
	today     string
	lookahead int
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Convert the raw feed into the canonical feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			run, err := applyGenerateFlags(cmd, *cfg, opts)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), run, opts.feed, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "GTFS zip to read (overrides the configured feed)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Output file name prefix")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: json or sqlite")
	cmd.Flags().StringVar(&opts.feed, "feed", "", "Feed name from config feeds[]")
	cmd.Flags().StringVar(&opts.today, "today", "", "Reference date YYYYMMDD for useful services")
	cmd.Flags().IntVar(&opts.lookahead, "lookahead", -1, "Days of service to keep after today")

	return cmd
}

// applyGenerateFlags copies the flags the user set over cfg.
func applyGenerateFlags(cmd *cobra.Command, cfg config.AppConfig, opts generateOptions) (config.AppConfig, error) {
	if cmd.Flags().Changed("input") {
		cfg.Feeds = nil
		cfg.GTFS = config.GTFSConfig{Path: opts.input, TimeoutMS: cfg.GTFS.TimeoutMS}
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Dir = opts.output
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Output.Prefix = opts.prefix
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = opts.format
	}
	if cmd.Flags().Changed("today") {
		cfg.Services.Today = opts.today
	}
	if cmd.Flags().Changed("lookahead") {
		cfg.Services.LookaheadDays = opts.lookahead
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func runGenerate(ctx context.Context, cfg config.AppConfig, feedName string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	t, err := buildTables(&cfg)
	if err != nil {
		return err
	}

	feed, err := gtfs.NewFeedFromConfig(ctx, cfg.SelectFeed(feedName))
	if err != nil {
		return err
	}

	var services map[string]struct{}
	if !cfg.Services.Disabled {
		today, err := referenceDay(cfg.Services.Today)
		if err != nil {
			return err
		}
		services = gtfs.UsefulServiceIDs(feed, today, cfg.Services.LookaheadDays)
		log.Printf("useful services from %s: %d", today.Format(todayLayout), len(services))
	}

	f, err := filter.NewFromConfig(cfg.Agency, services)
	if err != nil {
		return err
	}
	conv, err := converter.NewConverter(converter.ConverterOptions{
		Filter:     f,
		Assigner:   t.assigner,
		Normalizer: t.normalizer,
		Colors:     t.colors,
		Headsigns:  t.headsigns,
		Templates:  t.templates,
	})
	if err != nil {
		return err
	}

	normalized, err := conv.Convert(feed)
	conv.Warnings().LogAll(feedLabel(feedName), cfg.Agency.AgencySubstring)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	env := formatter.Wrap(normalized, cfg.Agency.AgencySubstring, feedName, time.Now())
	path, err := formatter.Write(ctx, cfg.Output.Format, cfg.Output.Dir, cfg.Output.Prefix, env)
	if err != nil {
		return err
	}
	log.Printf("run %s wrote %s in %s", env.RunID, path, time.Since(start).Round(time.Millisecond))

	fmt.Fprintln(out, renderStats(normalized.Stats))
	if w := conv.Warnings().Summaries(); len(w) > 0 {
		fmt.Fprintln(out, renderWarnings(w))
	}
	fmt.Fprintf(out, "Wrote %s (%d routes, %d stops, %d trips)\n", path, len(normalized.Routes), len(normalized.Stops), len(normalized.Trips))
	return nil
}

func referenceDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(todayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference date %q: %w", s, err)
	}
	return d, nil
}

func feedLabel(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

func renderStats(s filter.Stats) string {
	rows := [][]string{
		countsRow("Routes", s.Routes),
		countsRow("Trips", s.Trips),
		countsRow("Stops", s.Stops),
		countsRow("Calendars", s.Calendars),
		countsRow("Calendar dates", s.CalendarDates),
	}
	return renderTable(
		[]string{"Records", "Kept", "Excluded", "Unreferenced"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	)
}

func countsRow(name string, c filter.Counts) []string {
	return []string{name, strconv.Itoa(c.Kept), strconv.Itoa(c.Excluded), strconv.Itoa(c.Unreferenced)}
}

func renderWarnings(summaries []converter.WarningSummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{s.Description, strconv.Itoa(s.Count), strings.Join(s.Examples, ", ")})
	}
	return renderTable(
		[]string{"Warning", "Count", "Examples"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	)
}
