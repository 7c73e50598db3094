// Package mach describes the CPU variants that the ARC simulator can model.
//
// A Mach is an immutable descriptor: it is built once, usually by generated
// code in package machs, and then only read. Per-CPU mutable state lives in
// CPU, which is allocated from a Mach and one of its Models.
package mach

import (
	"errors"
	"fmt"
)

// Num identifies a machine variant independently of its name. Numbers are
// assigned by the generated machine table in declaration order, starting
// at 1.
type Num int

const MachInvalid Num = 0

func (n Num) String() string {
	if n == MachInvalid {
		return "MachInvalid"
	}
	return fmt.Sprintf("Mach(%d)", int(n))
}

type ISA string

const ARCompact ISA = "ARCompact"

// Unit is one functional unit of a timing model.
type Unit struct {
	Name  string
	Issue int
	Done  int
}

type Model struct {
	Name  string
	Mach  *Mach
	Units []Unit
}

func (m *Model) String() string {
	if m == nil {
		return "<nil>"
	}
	return m.Name
}

// A Mach describes one supported CPU variant.
type Mach struct {
	Name    string
	BFDName string
	Num     Num
	ISA     ISA

	WordBitsize      int
	AddrBitsize      int
	InsnChunkBitsize int

	Options Options

	// Models lists the timing models for this machine. The first one is
	// the default.
	Models []*Model

	// InitCPU, if set, is called for each CPU allocated for this machine.
	InitCPU func(cpu *CPU)

	// PrepareRun, if set, is called once after all CPUs are allocated and
	// before execution starts.
	PrepareRun func(cpus []*CPU)
}

// String returns the machine name.
func (m *Mach) String() string {
	if m == nil {
		return "<nil>"
	}
	return m.Name
}

// Model returns the model with the given name, or nil.
func (m *Mach) Model(name string) *Model {
	for _, model := range m.Models {
		if model.Name == name {
			return model
		}
	}
	return nil
}

func (m *Mach) DefaultModel() *Model {
	if len(m.Models) == 0 {
		return nil
	}
	return m.Models[0]
}

// Validate checks the structural invariants of a descriptor.
func (m *Mach) Validate() error {
	if m == nil {
		return errors.New("nil machine descriptor")
	}
	var errs []error
	if m.Name == "" {
		errs = append(errs, errors.New("missing name"))
	}
	if m.BFDName == "" {
		errs = append(errs, errors.New("missing BFD name"))
	}
	if m.Num == MachInvalid {
		errs = append(errs, errors.New("invalid machine number"))
	}
	if m.InsnChunkBitsize <= 0 || m.WordBitsize%m.InsnChunkBitsize != 0 {
		errs = append(errs, fmt.Errorf("instruction chunk size %d does not divide word size %d", m.InsnChunkBitsize, m.WordBitsize))
	}
	if len(m.Models) == 0 {
		errs = append(errs, errors.New("no models"))
	}
	seen := make(map[string]struct{}, len(m.Models))
	for _, model := range m.Models {
		if model.Mach != m {
			errs = append(errs, fmt.Errorf("model %q belongs to %s", model.Name, model.Mach))
		}
		if _, dup := seen[model.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate model %q", model.Name))
		}
		seen[model.Name] = struct{}{}
	}
	if len(errs) > 0 {
		return fmt.Errorf("machine %q: %w", m.Name, errors.Join(errs...))
	}
	return nil
}
