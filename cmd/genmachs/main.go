// Command genmachs generates the machine table for package machs from a
// line-oriented machine description.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/apparentlymart/arcsim/internal/logging"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outW, errW io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("genmachs", flag.ContinueOnError)
	flagSet.SetOutput(errW)
	outDir := flagSet.String("o", ".", "Directory to write the generated files to.")
	dump := flagSet.Bool("dump", false, "Print the parsed description instead of generating code.")
	logLevel := flagSet.String("log-level", "info", "Logging level: debug, info, warn or error.")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("usage: genmachs [-o dir] [-dump] <machs.def>")
	}

	logger, err := logging.New(*logLevel, "text", errW)
	if err != nil {
		return err
	}

	desc, err := loadDescription(flagSet.Arg(0))
	if err != nil {
		return err
	}
	logger.Debug("Loaded machine description.", "file", flagSet.Arg(0), "machs", len(desc.Machs))

	if *dump {
		spew.Fdump(outW, desc)
		return nil
	}

	if err := generateGo(*outDir, desc); err != nil {
		return fmt.Errorf("failed to generate machine table: %w", err)
	}
	for _, md := range desc.Machs {
		logger.Info("Generated machine.", slog.String("mach", md.Name), slog.String("tag", md.TagName))
	}
	return nil
}
