package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apparentlymart/arcsim/mach"
)

func loadDescription(filename string) (*Description, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	desc, err := parseDescription(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return desc, nil
}

func parseDescription(r io.Reader) (*Description, error) {
	desc := &Description{
		ByName: make(map[string]*MachDef),
	}

	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := trimComments(sc.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "mach":
			err = desc.addMach(fields[1:])
		case "model":
			err = desc.addModel(fields[1:])
		default:
			err = fmt.Errorf("unknown directive %q", fields[0])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for _, md := range desc.Machs {
		if len(md.Models) == 0 {
			return nil, fmt.Errorf("machine %q has no models", md.Name)
		}
	}
	return desc, nil
}

func (d *Description) addMach(fields []string) error {
	if len(fields) < 5 {
		return fmt.Errorf("mach needs at least 5 fields, got %d", len(fields))
	}
	name, bfdName := fields[0], fields[1]
	if _, exists := d.ByName[name]; exists {
		return fmt.Errorf("machine %q declared twice", name)
	}

	var bits [3]int
	for i, raw := range fields[2:5] {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return fmt.Errorf("machine %q: invalid bit size %q", name, raw)
		}
		bits[i] = v
	}
	if bits[0]%bits[2] != 0 {
		return fmt.Errorf("machine %q: chunk size %d does not divide word size %d", name, bits[2], bits[0])
	}

	md := &MachDef{
		Name:      name,
		BFDName:   bfdName,
		VarName:   makeIdentExported(bfdName),
		NumName:   "Num" + makeIdentExported(bfdName),
		FlagName:  makeIdentExported(bfdName),
		TagName:   "arcsim_no_" + makeIdentUnderscores(name),
		FileName:  "zhave_" + makeIdentUnderscores(name),
		WordBits:  bits[0],
		AddrBits:  bits[1],
		ChunkBits: bits[2],
	}

	// Distinct names can still collide on BFD name, Go identifiers or
	// build tag, which would make the generated package uncompilable.
	for _, other := range d.Machs {
		switch {
		case strings.EqualFold(other.BFDName, md.BFDName):
			return fmt.Errorf("machine %q: BFD name %s declared twice (also used by %q)", name, md.BFDName, other.Name)
		case other.VarName == md.VarName:
			return fmt.Errorf("machine %q: identifier %s declared twice (also used by %q)", name, md.VarName, other.Name)
		case other.FileName == md.FileName:
			return fmt.Errorf("machine %q: build tag %s declared twice (also used by %q)", name, md.TagName, other.Name)
		}
	}

	for _, raw := range fields[5:] {
		opt := mach.ParseOption(raw)
		if opt == mach.OptInvalid {
			return fmt.Errorf("machine %q: unknown option %q", name, raw)
		}
		md.Options = append(md.Options, opt)
	}

	d.Machs = append(d.Machs, md)
	d.ByName[name] = md
	return nil
}

func (d *Description) addModel(fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("model needs at least 2 fields, got %d", len(fields))
	}
	md, ok := d.ByName[fields[0]]
	if !ok {
		return fmt.Errorf("model %q refers to undeclared machine %q", fields[1], fields[0])
	}

	model := &ModelDef{Name: fields[1]}
	for _, raw := range fields[2:] {
		unit, err := parseUnit(raw)
		if err != nil {
			return fmt.Errorf("model %q: %w", model.Name, err)
		}
		model.Units = append(model.Units, unit)
	}
	md.Models = append(md.Models, model)
	return nil
}

// parseUnit deals with unit specs like "u-exec:1:1", giving the unit name
// followed by its issue and done cycle counts.
func parseUnit(raw string) (UnitDef, error) {
	name, rest := partition(raw, ":")
	rawIssue, rawDone := partition(rest, ":")
	issue, err := strconv.Atoi(rawIssue)
	if err != nil || issue < 1 {
		return UnitDef{}, fmt.Errorf("invalid unit %q", raw)
	}
	done, err := strconv.Atoi(rawDone)
	if err != nil || done < 1 {
		return UnitDef{}, fmt.Errorf("invalid unit %q", raw)
	}
	return UnitDef{Name: name, Issue: issue, Done: done}, nil
}

func trimComments(line string) string {
	hash := strings.IndexByte(line, '#')
	if hash == -1 {
		return line
	}
	return line[:hash]
}

func partition(s string, sep string) (l, r string) {
	idx := strings.Index(s, sep)
	if idx == -1 {
		return s, ""
	}
	return s[:idx], s[idx+len(sep):]
}
