package app

import (
	"github.com/Egor213/LogTrail/internal/config"
	"github.com/Egor213/LogTrail/internal/filter"
	"github.com/spf13/cobra"
)

type options struct {
	date     string
	from     string
	to       string
	keywords []string
	entries  []int
	latest   bool
	tagged   bool

	preset string
	format string
	level  string

	input string
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "logtrail [file]",
		Short: "Filter and tag timestamped log entries",
		Long: `logtrail extracts entries from block-format ([YYYY-MM-DD_HHMMhr_SSsec] + """body""")
and leveled ([YYYY-MM-DD HH:MM:SS,mmm] LEVEL - [ctx] Component: msg) logs,
tags each with a breadcrumb and narrows them by date, keyword, position or recency.

Date filters infer their granularity from the shape:
  2025-05-10  day        2025-05  month        2025  year
  1975-2025   year range 05-09    month range in every year

Examples:
  logtrail build.log --date 05-09
  logtrail build.log -k make -k nvcc --latest
  logtrail trace.log --preset trading --format table`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.input = args[0]
			}
			return run(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.date, "date", "d", "", "date filter: YYYY-MM-DD, YYYY-MM, YYYY, YYYY-YYYY or MM-MM")
	f.StringVar(&opts.from, "from", "", "keep entries from the start of this day, month or year")
	f.StringVar(&opts.to, "to", "", "keep entries until the end of this day, month or year")
	f.StringArrayVarP(&opts.keywords, "keyword", "k", nil, "keyword every message must contain (repeatable)")
	f.IntSliceVarP(&opts.entries, "entry", "n", nil, "1-based positions in the full sorted log")
	f.BoolVarP(&opts.latest, "latest", "l", false, "keep only the most recent entry")
	f.BoolVarP(&opts.tagged, "tagged", "t", false, "keep only entries that received a breadcrumb")
	f.StringVarP(&opts.preset, "preset", "p", "", "breadcrumb rule preset: incident or trading")
	f.StringVarP(&opts.format, "format", "f", "", "output format: block, json or table")
	f.StringVar(&opts.level, "log-level", "", "log level for diagnostics on stderr")

	return cmd
}

func (o *options) request() filter.Request {
	return filter.Request{
		Date:     o.date,
		From:     o.from,
		To:       o.to,
		Keywords: o.keywords,
		Entries:  o.entries,
		Tagged:   o.tagged,
		Latest:   o.latest,
	}
}

// override applies explicitly given flags on top of the loaded config.
func (o *options) override(cfg *config.Config) {
	if o.input != "" {
		cfg.Input.Path = o.input
	}
	if o.preset != "" {
		cfg.Classifier.Preset = o.preset
		cfg.Classifier.Rules = nil
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.level != "" {
		cfg.Log.Level = o.level
	}
}
