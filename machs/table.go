// Package machs holds the table of machine variants compiled into this
// simulator build, along with the lookups that simulator initialization
// uses to pick the active machine.
//
// Each variant is guarded by a build tag: building with arcsim_no_a5,
// arcsim_no_arc600 or arcsim_no_arc700 leaves the corresponding descriptor
// out of the table returned by Default.
package machs

//go:generate go run ../cmd/genmachs -o . machs.def

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/apparentlymart/arcsim/mach"
)

var (
	ErrNoMachines   = errors.New("no supported machine variant")
	ErrUnknownMach  = errors.New("unknown machine")
	ErrUnknownModel = errors.New("unknown model")
)

// Table is an ordered, immutable list of machine descriptors. It is safe
// for concurrent use.
type Table struct {
	list []*mach.Mach
}

func newTable(list []*mach.Mach) *Table {
	seen := make(map[string]struct{}, len(list))
	for _, m := range list {
		if m == nil {
			panic("machs: nil descriptor in table")
		}
		if _, dup := seen[m.Name]; dup {
			panic(fmt.Sprintf("machs: machine %q listed twice", m.Name))
		}
		seen[m.Name] = struct{}{}
	}
	return &Table{list: list}
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table for the variants this binary was built with.
// It is constructed on first use and the same table is returned thereafter.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = Build(BuildFlags())
	})
	return defaultTable
}

func (t *Table) Len() int {
	return len(t.list)
}

func (t *Table) At(i int) *mach.Mach {
	return t.list[i]
}

// Machs returns a copy of the table entries.
func (t *Table) Machs() []*mach.Mach {
	ret := make([]*mach.Mach, len(t.list))
	copy(ret, t.list)
	return ret
}

// Terminated returns a copy of the table entries followed by a nil
// sentinel, for consumers that scan until nil rather than by length.
func (t *Table) Terminated() []*mach.Mach {
	ret := make([]*mach.Mach, len(t.list)+1)
	copy(ret, t.list)
	return ret
}

// Each calls fn for every entry in order, stopping early if fn returns
// false.
func (t *Table) Each(fn func(m *mach.Mach) bool) {
	Scan(t.Terminated(), fn)
}

func (t *Table) Names() []string {
	ret := make([]string, 0, len(t.list))
	for _, m := range t.list {
		ret = append(ret, m.Name)
	}
	return ret
}

func (t *Table) BFDNames() []string {
	ret := make([]string, 0, len(t.list))
	for _, m := range t.list {
		ret = append(ret, m.BFDName)
	}
	return ret
}

// First returns the default machine, which is the first one in the table.
func (t *Table) First() (*mach.Mach, error) {
	if len(t.list) == 0 {
		return nil, ErrNoMachines
	}
	return t.list[0], nil
}

// Lookup returns the machine with the given name.
func (t *Table) Lookup(name string) (*mach.Mach, error) {
	var found *mach.Mach
	t.Each(func(m *mach.Mach) bool {
		if m.Name == name {
			found = m
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownMach, name, t.available())
	}
	return found, nil
}

// LookupBFDName returns the machine whose BFD name matches, ignoring case.
func (t *Table) LookupBFDName(name string) (*mach.Mach, error) {
	var found *mach.Mach
	t.Each(func(m *mach.Mach) bool {
		if strings.EqualFold(m.BFDName, name) {
			found = m
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w with BFD name %q (available: %s)", ErrUnknownMach, name, t.available())
	}
	return found, nil
}

// LookupModel searches the models of every machine in the table.
func (t *Table) LookupModel(name string) (*mach.Model, error) {
	var found *mach.Model
	t.Each(func(m *mach.Mach) bool {
		found = m.Model(name)
		return found == nil
	})
	if found == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownModel, name)
	}
	return found, nil
}

func (t *Table) available() string {
	if len(t.list) == 0 {
		return "none"
	}
	return strings.Join(t.Names(), ", ")
}

// Scan calls fn for each entry of a nil-terminated list, stopping at the
// first nil or when fn returns false.
func Scan(list []*mach.Mach, fn func(m *mach.Mach) bool) {
	for _, m := range list {
		if m == nil {
			return
		}
		if !fn(m) {
			return
		}
	}
}
