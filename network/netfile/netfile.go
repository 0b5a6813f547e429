// Package netfile parses the line-oriented Network text format (spec §6)
// and a YAML run-configuration sibling format for the options a
// contraction run needs beyond the pattern itself.
package netfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/qsymm/symten"
	"github.com/qsymm/symten/network"
)

// Entry is one parsed line of a Network file: a name plus its declared
// label pattern. The TOUT entry carries the output ordering/split and is
// reported separately by Parse rather than folded into Entries.
type Entry struct {
	Name    string
	Pattern network.LabelPattern
}

// Parse reads a Network file (blank and '#'-prefixed lines ignored; each
// remaining line `NAME : in1 in2 … ; out1 out2 …`) and returns the
// non-TOUT entries in file order plus the TOUT pattern, if one was
// declared (spec §6).
func Parse(r io.Reader) (entries []Entry, tout *network.LabelPattern, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, pattern, perr := parseLine(line)
		if perr != nil {
			return nil, nil, symten.Wrap(symten.InvalidNetwork, fmt.Sprintf("netfile: line %d", lineNo), perr)
		}
		if name == "TOUT" {
			p := pattern
			tout = &p
			continue
		}
		entries = append(entries, Entry{Name: name, Pattern: pattern})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, symten.Wrap(symten.InvalidNetwork, "netfile: read failed", err)
	}
	return entries, tout, nil
}

func parseLine(line string) (string, network.LabelPattern, error) {
	nameRest := strings.SplitN(line, ":", 2)
	if len(nameRest) != 2 {
		return "", network.LabelPattern{}, fmt.Errorf("missing ':'")
	}
	name := strings.TrimSpace(nameRest[0])
	if name == "" {
		return "", network.LabelPattern{}, fmt.Errorf("empty entry name")
	}

	inOut := strings.SplitN(nameRest[1], ";", 2)
	in, err := parseLabels(inOut[0])
	if err != nil {
		return "", network.LabelPattern{}, err
	}
	var out []int
	if len(inOut) == 2 {
		out, err = parseLabels(inOut[1])
		if err != nil {
			return "", network.LabelPattern{}, err
		}
	}
	return name, network.LabelPattern{In: in, Out: out}, nil
}

func parseLabels(field string) ([]int, error) {
	fields := strings.Fields(field)
	labels := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad label %q: %w", f, err)
		}
		labels = append(labels, v)
	}
	return labels, nil
}

// BuildNetwork parses r and constructs an unbound network.Network ready
// for Bind/ReplaceWith, in file order.
func BuildNetwork(r io.Reader) (*network.Network, []string, error) {
	entries, tout, err := Parse(r)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, len(entries))
	patterns := make([]network.LabelPattern, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		patterns[i] = e.Pattern
	}
	return network.New(names, patterns, tout), names, nil
}
