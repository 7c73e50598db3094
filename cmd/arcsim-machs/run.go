package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"

	"github.com/apparentlymart/arcsim/internal/config"
	"github.com/apparentlymart/arcsim/internal/ctxlog"
	"github.com/apparentlymart/arcsim/internal/logging"
	"github.com/apparentlymart/arcsim/mach"
	"github.com/apparentlymart/arcsim/machs"
	"github.com/apparentlymart/arcsim/sim"
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

type options struct {
	configPath string
	mach       string
	bfdName    string
	model      string
	numCPUs    int
	selectOnly bool
	asJSON     bool
	dump       bool
	logLevel   string
	logFormat  string
}

func parseArgs(args []string, errW io.Writer) (*options, error) {
	var opts options
	flagSet := flag.NewFlagSet("arcsim-machs", flag.ContinueOnError)
	flagSet.SetOutput(errW)
	flagSet.Usage = func() {
		fmt.Fprint(errW, `
arcsim-machs - list the ARC machine variants in this simulator build.

Usage:
  arcsim-machs [options]

Without selection options the compiled-in machines are listed in table
order. Any of -config, -mach, -bfd-name, -model or -cpus resolves a
selection instead.

Options:
`)
		flagSet.PrintDefaults()
	}

	flagSet.StringVar(&opts.configPath, "config", "", "Path to an HCL configuration file.")
	flagSet.StringVar(&opts.mach, "mach", "", "Machine name, overriding the config file.")
	flagSet.StringVar(&opts.bfdName, "bfd-name", "", "Machine BFD name, overriding the config file.")
	flagSet.StringVar(&opts.model, "model", "", "Model name, overriding the config file.")
	flagSet.IntVar(&opts.numCPUs, "cpus", 0, "Number of CPUs, overriding the config file.")
	flagSet.BoolVar(&opts.selectOnly, "select", false, "Resolve and print the selected machine.")
	flagSet.BoolVar(&opts.asJSON, "json", false, "Print JSON instead of text.")
	flagSet.BoolVar(&opts.dump, "dump", false, "Dump the full descriptors or selection state.")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "Logging level: debug, info, warn or error.")
	flagSet.StringVar(&opts.logFormat, "log-format", "", "Log output format: text or json.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil
		}
		return nil, usageError("%s", err)
	}
	if flagSet.NArg() > 0 {
		return nil, usageError("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))
	}
	if opts.numCPUs < 0 {
		return nil, usageError("-cpus must not be negative")
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "config", "mach", "bfd-name", "model", "cpus":
			opts.selectOnly = true
		}
	})
	return &opts, nil
}

func run(ctx context.Context, outW, errW io.Writer, args []string, table *machs.Table) error {
	opts, err := parseArgs(args, errW)
	if err != nil {
		return err
	}
	if opts == nil {
		return nil
	}

	cfg := config.Default()
	if opts.configPath != "" {
		cfg, err = config.Load(ctx, opts.configPath, table)
		if err != nil {
			return err
		}
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.LogFormat = opts.logFormat
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, errW)
	if err != nil {
		return usageError("%s", err)
	}
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Machine table loaded.", "machs", table.Names())

	if !opts.selectOnly {
		return listMachs(outW, table, opts)
	}

	if opts.mach != "" {
		cfg.Sim.Mach = opts.mach
	}
	if opts.bfdName != "" {
		cfg.Sim.BFDName = opts.bfdName
	}
	if opts.model != "" {
		cfg.Sim.Model = opts.model
	}
	if opts.numCPUs != 0 {
		cfg.Sim.NumCPUs = opts.numCPUs
	}

	state, err := sim.Open(ctx, cfg.Sim, table)
	if err != nil {
		return err
	}
	return printSelection(outW, state, opts)
}

type machJSON struct {
	Name             string      `json:"name"`
	BFDName          string      `json:"bfd_name"`
	ISA              string      `json:"isa"`
	WordBitsize      int         `json:"word_bitsize"`
	AddrBitsize      int         `json:"addr_bitsize"`
	InsnChunkBitsize int         `json:"insn_chunk_bitsize"`
	Options          []string    `json:"options"`
	Models           []modelJSON `json:"models"`
}

type modelJSON struct {
	Name  string     `json:"name"`
	Units []unitJSON `json:"units"`
}

type unitJSON struct {
	Name  string `json:"name"`
	Issue int    `json:"issue"`
	Done  int    `json:"done"`
}

func toJSON(m *mach.Mach) machJSON {
	ret := machJSON{
		Name:             m.Name,
		BFDName:          m.BFDName,
		ISA:              string(m.ISA),
		WordBitsize:      m.WordBitsize,
		AddrBitsize:      m.AddrBitsize,
		InsnChunkBitsize: m.InsnChunkBitsize,
		Options:          []string{},
		Models:           []modelJSON{},
	}
	for _, o := range m.Options.List() {
		ret.Options = append(ret.Options, o.String())
	}
	for _, model := range m.Models {
		mj := modelJSON{Name: model.Name, Units: []unitJSON{}}
		for _, u := range model.Units {
			mj.Units = append(mj.Units, unitJSON{Name: u.Name, Issue: u.Issue, Done: u.Done})
		}
		ret.Models = append(ret.Models, mj)
	}
	return ret
}

func listMachs(w io.Writer, table *machs.Table, opts *options) error {
	switch {
	case opts.dump:
		spew.Fdump(w, table.Machs())
		return nil
	case opts.asJSON:
		list := make([]machJSON, 0, table.Len())
		table.Each(func(m *mach.Mach) bool {
			list = append(list, toJSON(m))
			return true
		})
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	if table.Len() == 0 {
		fmt.Fprintln(w, "no machines compiled in")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBFD NAME\tMODELS\tOPTIONS")
	table.Each(func(m *mach.Mach) bool {
		models := make([]string, len(m.Models))
		for i, model := range m.Models {
			models[i] = model.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name, m.BFDName, strings.Join(models, ","), m.Options)
		return true
	})
	return tw.Flush()
}

type selectionJSON struct {
	Mach  string `json:"mach"`
	Model string `json:"model"`
	CPUs  int    `json:"cpus"`
}

func printSelection(w io.Writer, state *sim.State, opts *options) error {
	switch {
	case opts.dump:
		spew.Fdump(w, state)
		return nil
	case opts.asJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(selectionJSON{
			Mach:  state.Mach.Name,
			Model: state.Model.Name,
			CPUs:  len(state.CPUs),
		})
	}
	_, err := fmt.Fprintf(w, "mach=%s model=%s cpus=%d\n", state.Mach.Name, state.Model.Name, len(state.CPUs))
	return err
}
