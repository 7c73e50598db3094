package main

import "github.com/apparentlymart/arcsim/mach"

type UnitDef struct {
	Name        string
	Issue, Done int
}

type ModelDef struct {
	Name  string
	Units []UnitDef
}

type MachDef struct {
	Name     string
	BFDName  string
	VarName  string
	NumName  string
	FlagName string
	TagName  string
	FileName string

	WordBits, AddrBits, ChunkBits int

	Options []mach.Option
	Models  []*ModelDef
}

type Description struct {
	Machs  []*MachDef
	ByName map[string]*MachDef
}
