// Package sim implements simulator initialization: choosing the active
// machine and model from the machine table and allocating its CPUs.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/apparentlymart/arcsim/internal/ctxlog"
	"github.com/apparentlymart/arcsim/mach"
	"github.com/apparentlymart/arcsim/machs"
)

const MaxCPUs = 8

var (
	ErrModelMismatch = errors.New("model does not belong to the requested machine")
	ErrNumCPUs       = fmt.Errorf("number of CPUs must be between 1 and %d", MaxCPUs)
)

// Config selects the machine to simulate. All fields are optional; with
// none set the first machine in the table and its default model are used.
type Config struct {
	Mach    string
	BFDName string
	Model   string
	NumCPUs int
}

type State struct {
	Mach  *mach.Mach
	Model *mach.Model
	CPUs  []*mach.CPU
}

// CPU returns the CPU with the given index, or nil if out of range.
func (s *State) CPU(i int) *mach.CPU {
	if i < 0 || i >= len(s.CPUs) {
		return nil
	}
	return s.CPUs[i]
}

// Open resolves cfg against table and returns an initialized state.
func Open(ctx context.Context, cfg Config, table *machs.Table) (*State, error) {
	logger := ctxlog.FromContext(ctx)

	numCPUs := cfg.NumCPUs
	if numCPUs == 0 {
		numCPUs = 1
	}
	if numCPUs < 0 || numCPUs > MaxCPUs {
		return nil, fmt.Errorf("%w (got %d)", ErrNumCPUs, numCPUs)
	}

	m, model, err := selectMach(cfg, table)
	if err != nil {
		return nil, fmt.Errorf("failed to select machine: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Selected machine.", "mach", m.Name, "bfd_name", m.BFDName, "model", model.Name)

	state := &State{
		Mach:  m,
		Model: model,
		CPUs:  make([]*mach.CPU, numCPUs),
	}
	for i := range state.CPUs {
		state.CPUs[i] = mach.NewCPU(i, m, model)
	}
	if m.PrepareRun != nil {
		m.PrepareRun(state.CPUs)
	}

	logger.Info("Simulator initialized.",
		slog.String("mach", m.Name),
		slog.String("model", model.Name),
		slog.Int("cpus", numCPUs),
	)
	return state, nil
}

func selectMach(cfg Config, table *machs.Table) (*mach.Mach, *mach.Model, error) {
	var want *mach.Mach
	var err error
	switch {
	case cfg.Mach != "":
		want, err = table.Lookup(cfg.Mach)
	case cfg.BFDName != "":
		want, err = table.LookupBFDName(cfg.BFDName)
	}
	if err != nil {
		return nil, nil, err
	}
	if want != nil && cfg.Mach != "" && cfg.BFDName != "" && !strings.EqualFold(want.BFDName, cfg.BFDName) {
		return nil, nil, fmt.Errorf("%w %q with BFD name %q", machs.ErrUnknownMach, cfg.Mach, cfg.BFDName)
	}

	if cfg.Model != "" {
		model, err := table.LookupModel(cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		if want != nil && model.Mach != want {
			return nil, nil, fmt.Errorf("%w: model %q is for %s, not %s", ErrModelMismatch, model.Name, model.Mach, want)
		}
		return model.Mach, model, nil
	}

	if want == nil {
		want, err = table.First()
		if err != nil {
			return nil, nil, err
		}
	}
	model := want.DefaultModel()
	if model == nil {
		return nil, nil, fmt.Errorf("machine %q has no models", want.Name)
	}
	return want, model, nil
}
