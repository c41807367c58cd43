// depthdump inspects framebuffer dumps written by the depth precision explorer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

type commonArgs struct {
	out     string
	quiet   bool
	supress bool
}

var cargs *commonArgs

type command struct {
	Name  string
	Help  string
	Usage string
	Flags *flag.FlagSet
	// Run receives the positional arguments after flag parsing.
	Run func(args []string)
}

func usage(commands []*command) {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [arguments] meta-glob...\n\nCommands:\n", filepath.Base(os.Args[0]))
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", c.Name, c.Help)
	}
	os.Exit(2)
}

func commandUsage(cmd *command) {
	fmt.Fprintf(os.Stderr, "Usage: %s %s [arguments] %s\n\n", filepath.Base(os.Args[0]), cmd.Name, cmd.Usage)
	cmd.Flags.SetOutput(os.Stderr)
	cmd.Flags.PrintDefaults()
	os.Exit(2)
}

func main() {
	commands := []*command{createExportCommand(), createStatsCommand()}
	slices.SortFunc(commands, func(a, b *command) int {
		return strings.Compare(a.Name, b.Name)
	})

	if len(os.Args) < 2 {
		usage(commands)
	}
	i := slices.IndexFunc(commands, func(c *command) bool {
		return strings.EqualFold(c.Name, os.Args[1])
	})
	if i < 0 {
		usage(commands)
	}

	cmd := commands[i]
	harderr(cmd.Flags.Parse(os.Args[2:]))
	if cmd.Flags.NArg() == 0 {
		commandUsage(cmd)
	}
	cmd.Run(cmd.Flags.Args())
}

func registerCommonFlags(flags *flag.FlagSet, args *commonArgs) {
	flags.StringVar(&args.out, "out", args.out, "directory for written files, defaults to the working directory")
	flags.StringVar(&args.out, "o", args.out, "shorthand for out")
	flags.BoolVar(&args.quiet, "quiet", args.quiet, "only print errors")
	flags.BoolVar(&args.quiet, "q", args.quiet, "shorthand for quiet")
	flags.BoolVar(&args.supress, "supress", args.supress, "do not print per file errors")
}

func setCommonArgs(args *commonArgs) {
	cargs = args
	if args.out == "" {
		wd, err := os.Getwd()
		harderr(err)
		args.out = wd
	}
	if info, err := os.Stat(args.out); err != nil {
		harderr(fmt.Errorf("output directory: %w", err))
	} else if !info.IsDir() {
		harderr(fmt.Errorf("output %q is not a directory", args.out))
	}
}

// gatherInputFiles expands the globs and keeps the dump metadata files.
func gatherInputFiles(globs []string) []string {
	var matched []string
	for _, g := range globs {
		m, err := filepath.Glob(g)
		softerr(err)
		for _, p := range m {
			if strings.EqualFold(filepath.Ext(p), ".toml") {
				matched = append(matched, p)
			}
		}
	}
	slices.Sort(matched)
	return slices.Compact(matched)
}

func softerr(err error) bool {
	if err == nil {
		return false
	}
	if !cargs.supress {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return true
}

func harderr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
