// Package mapping loads and inspects the old->new issue-number table that
// drives a remap run.
//
// The on-disk format is JSON:
//
//	{ "mappings": { "<old-number-as-string>": <new-number>, ... } }
//
// Any other top-level fields are ignored. A malformed file is a fatal load
// error; no partial table is ever returned.
package mapping

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
)

// Table maps old issue numbers to their replacements. Immutable after Load.
type Table map[int]int

// Load reads the mapping file at path and returns the parsed table.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path) // #nosec G304 - mapping file path comes from the CLI argument
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	raw, ok := doc["mappings"]
	if !ok {
		return nil, fmt.Errorf("%s is missing the required \"mappings\" field", path)
	}

	var entries map[string]json.Number
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("invalid \"mappings\" object in %s: %w", path, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("\"mappings\" in %s must be an object", path)
	}

	table := make(Table, len(entries))
	for key, value := range entries {
		oldNum, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("mapping key %q is not an issue number", key)
		}
		newNum, err := parseIssueNumber(value)
		if err != nil {
			return nil, fmt.Errorf("mapping value for %q: %w", key, err)
		}
		table[oldNum] = newNum
	}

	return table, nil
}

// parseIssueNumber accepts integer JSON numbers, including float spellings
// with no fractional part (50.0 -> 50). Anything else is an error.
func parseIssueNumber(value json.Number) (int, error) {
	if n, err := value.Int64(); err == nil {
		return int(n), nil
	}
	f, err := value.Float64()
	if err != nil {
		return 0, fmt.Errorf("%v is not a number", value)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not an integer", value)
	}
	return int(f), nil
}

// Stats summarizes a table for the check command.
type Stats struct {
	// Entries is the total number of mapping pairs.
	Entries int `json:"entries"`
	// Identity counts pairs that map a number to itself. These are loaded but
	// never produce a rewrite.
	Identity int `json:"identity"`
	// Overlaps lists new numbers that are themselves keys of a non-identity
	// pair. A reference rewritten to such a number would be rewritten again on
	// a second run, so their presence makes re-running the tool hazardous.
	Overlaps []int `json:"overlaps,omitempty"`
}

// Stats computes diagnostics for the table. Overlaps are sorted and deduped.
func (t Table) Stats() Stats {
	s := Stats{Entries: len(t)}

	overlapSet := make(map[int]struct{})
	for oldNum, newNum := range t {
		if oldNum == newNum {
			s.Identity++
			continue
		}
		if mapped, ok := t[newNum]; ok && mapped != newNum {
			overlapSet[newNum] = struct{}{}
		}
	}

	if len(overlapSet) > 0 {
		s.Overlaps = make([]int, 0, len(overlapSet))
		for n := range overlapSet {
			s.Overlaps = append(s.Overlaps, n)
		}
		sort.Ints(s.Overlaps)
	}

	return s
}
