package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the publish command.
type cliFlags struct {
	config  string
	pageID  string
	space   string
	title   string
	parent  string
	dryRun  bool
	verbose bool
	version bool
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2conf", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.StringVar(&f.pageID, "page-id", "", "id of an existing page to update")
	fs.StringVar(&f.space, "space", "", "space key for creating a new page")
	fs.StringVarP(&f.title, "title", "t", "", "page title (\"\" = auto from first heading)")
	fs.StringVar(&f.parent, "parent", "", "parent page id for creating a new page")
	fs.BoolVar(&f.dryRun, "dry-run", false, "convert and print the body without publishing")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show publish progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: md2conf [flags] <file.md>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Publish a markdown file to Confluence. Pass --page-id to update an")
	fmt.Fprintln(w, "existing page, or --space (and optionally --parent) to create one.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
