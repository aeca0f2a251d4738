package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/analysis/analysissrv"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
	"github.com/Abraxas-365/aikyuu/recruitment/report"
)

func runAnalyze(ctx context.Context, c *Container, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	watchOnly := fs.Bool("watch", false, "only wait for a run that was already started")
	id, err := positional(fs, args, "position-id")
	if err != nil {
		return err
	}
	positionID := kernel.NewPositionID(id)

	hooks := analysissrv.Hooks{
		OnProgress: func(percent float64) {
			fmt.Fprintf(os.Stderr, "\ranalyzing... %3.0f%%", percent)
		},
		OnRedirect: func(kernel.PositionID) {
			fmt.Fprintf(os.Stderr, "\ranalyzing... 100%%\n")
		},
	}

	var p *position.Position
	if *watchOnly {
		p, err = c.Analyzer.Watch(ctx, positionID, hooks)
	} else {
		p, err = c.Analyzer.Analyze(ctx, positionID, hooks)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr)
		return err
	}
	c.Prefs.SetShowAnalysis(true)
	printPosition(p)
	return nil
}

func runExport(ctx context.Context, c *Container, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", string(report.FormatCSV), "csv, xlsx or json")
	id, err := positional(fs, args, "position-id")
	if err != nil {
		return err
	}
	f, err := report.ParseFormat(*format)
	if err != nil {
		return err
	}
	out, err := c.Reports.Export(ctx, kernel.NewPositionID(id), f)
	if err != nil {
		return err
	}
	fmt.Printf("%d rows written to %s\n", out.Rows, out.Location)
	return nil
}
