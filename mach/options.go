package mach

import (
	"sort"
	"strings"
)

// Option identifies one optional instruction-set feature that a particular
// ARC core may or may not have been configured with.
type Option byte
type Options map[Option]struct{}

const (
	OptInvalid  Option = 0
	OptBarrel   Option = 'b' // barrel shifter
	OptNorm     Option = 'n' // NORM/NORMW
	OptSwap     Option = 's' // SWAP
	OptMul64    Option = 'm' // MUL64/MULU64 scoreboarded multiplier
	OptMul32x16 Option = 'x' // 32x16 multiply
	OptMpy      Option = 'p' // 32x32 MPY family
	OptAtomic   Option = 'a' // LLOCK/SCOND
	OptMMU      Option = 'u' // memory management unit
)

var optionNames = map[Option]string{
	OptBarrel:   "barrel",
	OptNorm:     "norm",
	OptSwap:     "swap",
	OptMul64:    "mul64",
	OptMul32x16: "mul32x16",
	OptMpy:      "mpy",
	OptAtomic:   "atomic",
	OptMMU:      "mmu",
}

func (o Option) String() string {
	if name, ok := optionNames[o]; ok {
		return name
	}
	return "invalid"
}

// ParseOption returns the option with the given name, or OptInvalid if
// the name isn't recognized.
func ParseOption(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	for o, name := range optionNames {
		if name == s {
			return o
		}
	}
	return OptInvalid
}

// NewOptions returns a set containing the given options.
func NewOptions(opts ...Option) Options {
	ret := make(Options, len(opts))
	for _, o := range opts {
		ret.Add(o)
	}
	return ret
}

func (opts Options) Has(o Option) bool {
	_, ok := opts[o]
	return ok
}

func (opts Options) Add(o Option) {
	opts[o] = struct{}{}
}

// List returns the options in the set ordered by name.
func (opts Options) List() []Option {
	ret := make([]Option, 0, len(opts))
	for o := range opts {
		ret = append(ret, o)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].String() < ret[j].String()
	})
	return ret
}

func (opts Options) String() string {
	var buf strings.Builder
	for i, o := range opts.List() {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(o.String())
	}
	return buf.String()
}
