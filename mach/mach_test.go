package mach

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testMach() *Mach {
	m := &Mach{
		Name:             "test",
		BFDName:          "TEST",
		Num:              1,
		ISA:              ARCompact,
		WordBitsize:      32,
		AddrBitsize:      32,
		InsnChunkBitsize: 16,
		Options:          NewOptions(OptBarrel),
	}
	m.Models = []*Model{
		{Name: "fast", Mach: m},
		{Name: "slow", Mach: m},
	}
	return m
}

func TestValidate(t *testing.T) {
	require.NoError(t, testMach().Validate())

	var nilMach *Mach
	require.Error(t, nilMach.Validate())

	m := testMach()
	m.Name = ""
	m.InsnChunkBitsize = 12
	err := m.Validate()
	require.ErrorContains(t, err, "missing name")
	require.ErrorContains(t, err, "does not divide word size")

	m = testMach()
	m.Models = append(m.Models, &Model{Name: "fast", Mach: m})
	require.ErrorContains(t, m.Validate(), `duplicate model "fast"`)

	m = testMach()
	other := testMach()
	m.Models[1].Mach = other
	require.ErrorContains(t, m.Validate(), `model "slow" belongs to test`)

	m = testMach()
	m.Models = nil
	m.Num = MachInvalid
	err = m.Validate()
	require.ErrorContains(t, err, "no models")
	require.ErrorContains(t, err, "invalid machine number")
}

func TestModelLookup(t *testing.T) {
	m := testMach()
	require.Equal(t, "fast", m.DefaultModel().Name)
	require.Equal(t, "slow", m.Model("slow").Name)
	require.Nil(t, m.Model("medium"))

	m.Models = nil
	require.Nil(t, m.DefaultModel())
}

func TestNilStrings(t *testing.T) {
	var m *Mach
	var model *Model
	require.Equal(t, "<nil>", m.String())
	require.Equal(t, "<nil>", model.String())
	require.Equal(t, "test", testMach().String())
}

func TestNumString(t *testing.T) {
	require.Equal(t, "MachInvalid", MachInvalid.String())
	require.Equal(t, "Mach(42)", Num(42).String())
}

func TestOptions(t *testing.T) {
	opts := NewOptions(OptSwap, OptMMU, OptBarrel)
	require.True(t, opts.Has(OptMMU))
	require.False(t, opts.Has(OptAtomic))
	require.Equal(t, "barrel, mmu, swap", opts.String())

	opts.Add(OptAtomic)
	require.Equal(t, []Option{OptAtomic, OptBarrel, OptMMU, OptSwap}, opts.List())
	require.Equal(t, "", NewOptions().String())
}

func TestParseOption(t *testing.T) {
	require.Equal(t, OptMul32x16, ParseOption("mul32x16"))
	require.Equal(t, OptMMU, ParseOption(" MMU "))
	require.Equal(t, OptInvalid, ParseOption("fpu"))
	require.Equal(t, "invalid", OptInvalid.String())
}

func TestNewCPU(t *testing.T) {
	m := testMach()
	var calls int
	m.InitCPU = func(cpu *CPU) {
		calls++
		cpu.Props["init"] = cpu.Model.Name
	}
	cpu := NewCPU(3, m, m.Model("slow"))
	require.Equal(t, 1, calls)
	require.Equal(t, 3, cpu.Index)
	require.Equal(t, "slow", cpu.Props["init"])
	require.Equal(t, "0x00000000", cpu.PC.String())

	m.InitCPU = nil
	require.Empty(t, NewCPU(0, m, m.DefaultModel()).Props)
}
