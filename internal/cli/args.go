package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Options are the parsed command-line options.
type Options struct {
	Files          []string
	Format         string  // target extension; empty selects the category default
	MaxGIFDuration float64 // zero means "use the configured default"

	GUI    bool
	Setup  bool
	Remove bool
	List   bool
	Force  bool
	Watch  bool
	NoLog  bool

	History      bool
	HistoryLimit int
}

// Parse parses arguments (without the program name). Flags come first; every
// remaining argument is a file to convert.
func Parse(args []string, errOut io.Writer) (*Options, error) {
	opts := &Options{}

	fs := flag.NewFlagSet("file-converter", flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.StringVar(&opts.Format, "f", "", "target format extension, e.g. png or webm")
	fs.StringVar(&opts.Format, "format", "", "target format extension, e.g. png or webm")
	fs.Float64Var(&opts.MaxGIFDuration, "max-gif-duration", 0, "seconds of video encoded when converting to gif")

	fs.BoolVar(&opts.GUI, "gui", false, "open the graphical interface")
	fs.BoolVar(&opts.Setup, "setup", false, "install Explorer context-menu entries")
	fs.BoolVar(&opts.Remove, "remove", false, "remove Explorer context-menu entries")
	fs.BoolVar(&opts.List, "list", false, "list supported formats per category")
	fs.BoolVar(&opts.Force, "force", false, "with -setup: replace existing entries")
	fs.BoolVar(&opts.Watch, "watch", false, "watch configured directories and convert new files")
	fs.BoolVar(&opts.NoLog, "no-log", false, "disable logging to the application log file")

	fs.BoolVar(&opts.History, "history", false, "show recent conversions")
	fs.IntVar(&opts.HistoryLimit, "history-limit", 0, "number of history entries to show")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.Files = fs.Args()
	for _, arg := range opts.Files {
		if strings.HasPrefix(arg, "-") {
			return nil, fmt.Errorf("flag %s must come before file arguments", arg)
		}
	}

	opts.Format = strings.TrimPrefix(strings.ToLower(opts.Format), ".")

	return opts, nil
}
