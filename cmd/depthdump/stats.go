package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"depth-precision/dump"
)

func createStatsCommand() *command {
	args := commonArgs{}

	flags := flag.NewFlagSet("stats", flag.ExitOnError)

	registerCommonFlags(flags, &args)

	return &command{
		Name:  "stats",
		Help:  "print depth precision statistics",
		Usage: "meta-glob...",
		Flags: flags,
		Run: func(globs []string) {
			setCommonArgs(&args)
			for _, p := range gatherInputFiles(globs) {
				softerr(printStats(p))
			}
		},
	}
}

func printStats(p string) error {
	meta, err := dump.ReadMeta(p)
	if err != nil {
		return err
	}
	stored, err := dump.ReadDepth(p, meta)
	if err != nil {
		return err
	}
	report, err := analyze(stored, meta)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", filepath.ToSlash(p))
	fmt.Printf("  mode      %s, %s layout, near %g far %g\n", meta.DepthMode, meta.Layout, meta.Near, meta.Far)
	fmt.Printf("  stored    min %.9g max %.9g, %d distinct values\n", report.Stored.Min, report.Stored.Max, report.Stored.Distinct)
	fmt.Printf("  distance  min %.4f max %.4f\n", report.MinDistance, report.MaxDistance)
	fmt.Printf("  coverage  %.1f%%\n", report.Coverage*100)
	if report.Stored.NonFinite > 0 {
		fmt.Printf("  %d non finite values\n", report.Stored.NonFinite)
	}
	return nil
}
