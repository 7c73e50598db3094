package mach

import "fmt"

const NumCoreRegs = 64

type Reg uint32

func (r Reg) String() string {
	return fmt.Sprintf("0x%08x", uint32(r))
}

// CPU is the per-processor state allocated for a machine.
type CPU struct {
	Index int
	Mach  *Mach
	Model *Model

	Regs [NumCoreRegs]Reg
	PC   Reg

	// Props holds implementation properties recorded by Mach.InitCPU.
	Props map[string]string
}

// NewCPU allocates a CPU for the given machine and model and runs the
// machine's InitCPU hook on it.
func NewCPU(index int, m *Mach, model *Model) *CPU {
	cpu := &CPU{
		Index: index,
		Mach:  m,
		Model: model,
		Props: make(map[string]string),
	}
	if m.InitCPU != nil {
		m.InitCPU(cpu)
	}
	return cpu
}
