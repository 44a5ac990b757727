// Command pollstream-log views and analyzes pollstream capture files.
//
// Capture files are written by pollstream when run with -protocol-log.
//
// Usage:
//
//	pollstream-log <command> [flags] <file.plog>
//
// Commands:
//
//	view     View capture file in human-readable format
//	export   Export capture file to JSON lines or CSV
//	filter   Filter capture file and write to new file
//	stats    Show statistics about the capture file
//
// Examples:
//
//	# View all events
//	pollstream-log view client.plog
//
//	# View only flow-control steps of one connection
//	pollstream-log view -category flow -conn-id 3f2a9c1e-... client.plog
//
//	# Export to CSV
//	pollstream-log export -format csv -o client.csv client.plog
//
//	# Show statistics
//	pollstream-log stats client.plog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mash-protocol/pollstream/cmd/pollstream-log/commands"
)

const usage = `pollstream-log - pollstream Capture Analyzer

Usage:
  pollstream-log <command> [flags] <file.plog>

Commands:
  view     View capture file in human-readable format
  export   Export capture file to JSON lines or CSV
  filter   Filter capture file and write to new file
  stats    Show statistics about the capture file

Use "pollstream-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags registers the filter flags shared by view and filter.
func filterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.ConnID, "conn-id", "", "Filter by connection ID")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (state, data, flow, error)")
	return opts
}

// parseArgs parses fs and returns the capture file path.
func parseArgs(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pollstream-log view - View capture file in human-readable format

Usage:
  pollstream-log view [flags] <file.plog>

Flags:
`)
		fs.PrintDefaults()
	}
	opts := filterFlags(fs)
	path := parseArgs(fs, args)

	filter, err := commands.BuildFilter(*opts)
	if err != nil {
		fail(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pollstream-log export - Export capture file to JSON lines or CSV

Usage:
  pollstream-log export [flags] <file.plog>

Flags:
`)
		fs.PrintDefaults()
	}
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path := parseArgs(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pollstream-log filter - Filter capture file and write to new file

Usage:
  pollstream-log filter [flags] -o <out.plog> <file.plog>

Flags:
`)
		fs.PrintDefaults()
	}
	output := fs.String("o", "", "Output file (required)")
	opts := filterFlags(fs)
	path := parseArgs(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := commands.BuildFilter(*opts)
	if err != nil {
		fail(err)
	}
	count, err := commands.RunFilter(path, *output, filter)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", count, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pollstream-log stats - Show statistics about the capture file

Usage:
  pollstream-log stats <file.plog>

`)
	}
	path := parseArgs(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
