package machs

import (
	"strconv"

	"github.com/apparentlymart/arcsim/mach"
)

func initCPU(cpu *mach.CPU) {
	m := cpu.Mach
	cpu.Props["isa"] = string(m.ISA)
	cpu.Props["word-bitsize"] = strconv.Itoa(m.WordBitsize)
	cpu.Props["insn-chunk-bitsize"] = strconv.Itoa(m.InsnChunkBitsize)
	cpu.Props["options"] = m.Options.String()
	cpu.Props["cpu-id"] = strconv.Itoa(cpu.Index)
	if m.Options.Has(mach.OptMMU) {
		cpu.Props["mmu"] = "off"
	}
}

func prepareRun(cpus []*mach.CPU) {
	n := strconv.Itoa(len(cpus))
	for _, cpu := range cpus {
		cpu.PC = 0
		cpu.Props["num-cpus"] = n
	}
}
