// Package config loads simulator settings from HCL files.
//
// A configuration file has two optional blocks:
//
//	simulator {
//	  mach     = contains(machs, "arc700") ? "arc700" : machs[0]
//	  model    = "ARC700"
//	  num_cpus = 1
//	}
//
//	logging {
//	  level  = "info"
//	  format = "text"
//	}
//
// Expressions are evaluated with the names of the compiled-in machines
// available as the variables machs and bfd_names.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/apparentlymart/arcsim/internal/ctxlog"
	"github.com/apparentlymart/arcsim/internal/logging"
	"github.com/apparentlymart/arcsim/machs"
	"github.com/apparentlymart/arcsim/sim"
)

type Config struct {
	Sim       sim.Config
	LogLevel  string
	LogFormat string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Sim:       sim.Config{NumCPUs: 1},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

type fileRoot struct {
	Simulator *simulatorBlock `hcl:"simulator,block"`
	Logging   *loggingBlock   `hcl:"logging,block"`
}

type simulatorBlock struct {
	Mach    string `hcl:"mach,optional"`
	BFDName string `hcl:"bfd_name,optional"`
	Model   string `hcl:"model,optional"`
	NumCPUs *int   `hcl:"num_cpus,optional"`
}

type loggingBlock struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Load reads and validates a configuration file.
func Load(ctx context.Context, path string, table *machs.Table) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return Parse(ctx, src, path, table)
}

// Parse decodes configuration source. The filename is used only in
// diagnostics.
func Parse(ctx context.Context, src []byte, filename string, table *machs.Table) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing config file.", "file", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(table), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", filename, diags)
	}

	cfg := Default()
	if b := root.Simulator; b != nil {
		cfg.Sim.Mach = b.Mach
		cfg.Sim.BFDName = b.BFDName
		cfg.Sim.Model = b.Model
		if b.NumCPUs != nil {
			cfg.Sim.NumCPUs = *b.NumCPUs
		}
	}
	if b := root.Logging; b != nil {
		if b.Level != "" {
			cfg.LogLevel = strings.ToLower(b.Level)
		}
		if b.Format != "" {
			cfg.LogFormat = strings.ToLower(b.Format)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	logger.Debug("Config loaded.", "mach", cfg.Sim.Mach, "model", cfg.Sim.Model, "num_cpus", cfg.Sim.NumCPUs)
	return cfg, nil
}

// Validate checks the values that can be checked without a machine table.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be one of %s", c.LogFormat, strings.Join(logging.Formats, ", "))
	}
	if c.Sim.NumCPUs < 1 || c.Sim.NumCPUs > sim.MaxCPUs {
		return fmt.Errorf("num_cpus must be between 1 and %d, got %d", sim.MaxCPUs, c.Sim.NumCPUs)
	}
	return nil
}

func evalContext(table *machs.Table) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"machs":     stringList(table.Names()),
			"bfd_names": stringList(table.BFDNames()),
		},
		Functions: map[string]function.Function{
			"contains": stdlib.ContainsFunc,
			"element":  stdlib.ElementFunc,
			"length":   stdlib.LengthFunc,
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
		},
	}
}

func stringList(ss []string) cty.Value {
	if len(ss) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
