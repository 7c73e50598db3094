package main

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
)

const generatedHeader = "// Code generated by genmachs; DO NOT EDIT.\n\n"

func generateGo(dir string, desc *Description) error {
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return err
	}

	src, err := generateTable(desc)
	if err != nil {
		return err
	}
	err = os.WriteFile(filepath.Join(dir, "zmachs.go"), src, 0644)
	if err != nil {
		return err
	}

	for _, md := range desc.Machs {
		on, off, err := generateFlagFiles(md)
		if err != nil {
			return err
		}
		err = os.WriteFile(filepath.Join(dir, md.FileName+".go"), on, 0644)
		if err != nil {
			return err
		}
		err = os.WriteFile(filepath.Join(dir, md.FileName+"_off.go"), off, 0644)
		if err != nil {
			return err
		}
	}
	return nil
}

func generateTable(desc *Description) ([]byte, error) {
	var w bytes.Buffer

	w.WriteString(generatedHeader)
	w.WriteString("package machs\n\n")
	w.WriteString("import \"github.com/apparentlymart/arcsim/mach\"\n\n")

	w.WriteString("// Flags selects which machine variants a table includes.\n")
	w.WriteString("type Flags struct {\n")
	for _, md := range desc.Machs {
		fmt.Fprintf(&w, "%s bool\n", md.FlagName)
	}
	w.WriteString("}\n\n")

	w.WriteString("// AllFlags returns flags with every known variant enabled.\n")
	w.WriteString("func AllFlags() Flags {\n")
	w.WriteString("return Flags{\n")
	for _, md := range desc.Machs {
		fmt.Fprintf(&w, "%s: true,\n", md.FlagName)
	}
	w.WriteString("}\n}\n\n")

	w.WriteString("// BuildFlags returns the variant flags this binary was built with.\n")
	w.WriteString("func BuildFlags() Flags {\n")
	w.WriteString("return Flags{\n")
	for _, md := range desc.Machs {
		fmt.Fprintf(&w, "%s: have%s,\n", md.FlagName, md.VarName)
	}
	w.WriteString("}\n}\n\n")

	// The order of the tests here is the order of the table, so consumers
	// that take the first entry as the default get the first declared
	// variant that is enabled.
	w.WriteString("// Build returns a table holding one descriptor per enabled flag.\n")
	w.WriteString("func Build(flags Flags) *Table {\n")
	w.WriteString("var list []*mach.Mach\n")
	for _, md := range desc.Machs {
		fmt.Fprintf(&w, "if flags.%s {\n", md.FlagName)
		fmt.Fprintf(&w, "list = append(list, %s)\n", md.VarName)
		w.WriteString("}\n")
	}
	w.WriteString("return newTable(list)\n")
	w.WriteString("}\n")

	w.WriteString("\n// Machine numbers, in declaration order.\n")
	w.WriteString("const (\n")
	for i, md := range desc.Machs {
		if i == 0 {
			fmt.Fprintf(&w, "%s mach.Num = iota + 1\n", md.NumName)
			continue
		}
		fmt.Fprintf(&w, "%s\n", md.NumName)
	}
	w.WriteString(")\n")

	for _, md := range desc.Machs {
		opts := make([]string, len(md.Options))
		for i, o := range md.Options {
			opts[i] = optionIdent(o)
		}

		w.WriteString("\n")
		fmt.Fprintf(&w, "var %s = &mach.Mach{\n", md.VarName)
		fmt.Fprintf(&w, "Name: %q,\n", md.Name)
		fmt.Fprintf(&w, "BFDName: %q,\n", md.BFDName)
		fmt.Fprintf(&w, "Num: %s,\n", md.NumName)
		w.WriteString("ISA: mach.ARCompact,\n")
		fmt.Fprintf(&w, "WordBitsize: %d,\n", md.WordBits)
		fmt.Fprintf(&w, "AddrBitsize: %d,\n", md.AddrBits)
		fmt.Fprintf(&w, "InsnChunkBitsize: %d,\n", md.ChunkBits)
		fmt.Fprintf(&w, "Options: mach.NewOptions(%s),\n", strings.Join(opts, ", "))
		w.WriteString("InitCPU: initCPU,\n")
		w.WriteString("PrepareRun: prepareRun,\n")
		w.WriteString("}\n")
	}

	// Models refer back to their machine, so they can't be part of the
	// variable initializers above.
	w.WriteString("\nfunc init() {\n")
	for i, md := range desc.Machs {
		if i > 0 {
			w.WriteString("\n")
		}
		fmt.Fprintf(&w, "%s.Models = []*mach.Model{\n", md.VarName)
		for _, model := range md.Models {
			fmt.Fprintf(&w, "{Name: %q, Mach: %s, Units: []mach.Unit{\n", model.Name, md.VarName)
			for _, u := range model.Units {
				fmt.Fprintf(&w, "{Name: %q, Issue: %d, Done: %d},\n", u.Name, u.Issue, u.Done)
			}
			w.WriteString("}},\n")
		}
		w.WriteString("}\n")
	}
	w.WriteString("}\n")

	return format.Source(w.Bytes())
}

func generateFlagFiles(md *MachDef) (on, off []byte, err error) {
	gen := func(constraint string, value bool) ([]byte, error) {
		var w bytes.Buffer
		w.WriteString(generatedHeader)
		fmt.Fprintf(&w, "//go:build %s\n\n", constraint)
		w.WriteString("package machs\n\n")
		fmt.Fprintf(&w, "const have%s = %t\n", md.VarName, value)
		return format.Source(w.Bytes())
	}

	on, err = gen("!"+md.TagName, true)
	if err != nil {
		return nil, nil, err
	}
	off, err = gen(md.TagName, false)
	if err != nil {
		return nil, nil, err
	}
	return on, off, nil
}
