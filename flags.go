package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wejn/xrandr-by-edid/match"
)

// pairList accumulates --serial/--config values in the order they appear
// on the command line, so a --config can be tied to the --serial right
// before it. Two pflag.Value implementations share one collector; pflag
// calls Set in argv order, which is what makes the pairing observable.
type pairList struct {
	specs []match.Spec
}

type serialFlag struct {
	pairs *pairList
}

func (f *serialFlag) String() string { return "" }
func (f *serialFlag) Type() string   { return "serial" }

func (f *serialFlag) Set(v string) error {
	if v == "" {
		return fmt.Errorf("serial must not be empty")
	}
	f.pairs.specs = append(f.pairs.specs, match.Spec{Serial: v})
	return nil
}

type configFlag struct {
	pairs *pairList
}

func (f *configFlag) String() string { return "" }
func (f *configFlag) Type() string   { return "args" }

func (f *configFlag) Set(v string) error {
	n := len(f.pairs.specs)
	if n == 0 {
		return fmt.Errorf("--config requires a preceding --serial")
	}
	last := &f.pairs.specs[n-1]
	if last.Args != nil {
		return fmt.Errorf("serial %q already has a --config", last.Serial)
	}
	last.Args = strings.Fields(v)
	return nil
}

type mappingEntry struct {
	Serial string `yaml:"serial"`
	Config string `yaml:"config"`
}

// loadMappings reads an ordered list of serial/config entries from a YAML
// file, e.g.
//
//	- serial: ABC123
//	  config: --mode 1920x1080 --pos 0x0
//	- serial: XYZ789
//	  config: --off
func loadMappings(path string) ([]match.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read mappings file: %w", err)
	}

	var entries []mappingEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unable to parse mappings file: %w", err)
	}

	specs := make([]match.Spec, 0, len(entries))
	for i, e := range entries {
		if e.Serial == "" {
			return nil, fmt.Errorf("mappings entry %d: serial must not be empty", i)
		}
		specs = append(specs, match.Spec{Serial: e.Serial, Args: strings.Fields(e.Config)})
	}
	return specs, nil
}
