// Package loader reads candidate sets from files or stdin, auto-detecting
// the input format. Supported inputs:
//
//   - JSON array of strings or of {label, value} objects
//   - NDJSON: one JSON object or string per line
//   - YAML: a sequence, or multi-document sequences separated by ---
//   - TOML: a table with a top-level "candidates" array
//
// All formats produce a flat candidate list in input order.
package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/aliasimkazmi/core-components/internal/candidate"
)

// entry is the permissive decode target for a single candidate.
type entry struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

// Load parses input into a candidate list, auto-detecting format.
func Load(input string) (candidate.List, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	// Multi-document YAML is the most restrictive shape; check it first.
	if strings.HasPrefix(input, "---") || strings.Contains(input, "\n---") {
		return loadMultiDocYAML(input)
	}

	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return loadNDJSON(lines)
	}

	// TOML [section] headers look like JSON arrays but are distinct.
	if isLikelyTOML(input) {
		return loadTOML(input)
	}

	if strings.HasPrefix(input, "[") || strings.HasPrefix(input, "{") {
		return loadJSON(input)
	}

	return loadYAML(input)
}

// LoadReader drains r and parses its contents.
func LoadReader(r io.Reader) (candidate.List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Load(string(data))
}

func loadJSON(input string) (candidate.List, error) {
	var items []interface{}
	if err := json.Unmarshal([]byte(input), &items); err != nil {
		// A single object is not a candidate list.
		return nil, fmt.Errorf("parse JSON candidates: %w", err)
	}
	return fromItems(items)
}

func loadNDJSON(lines []string) (candidate.List, error) {
	var out candidate.List
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var item interface{}
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			return nil, fmt.Errorf("parse NDJSON line %d: %w", i+1, err)
		}
		c, err := fromItem(item)
		if err != nil {
			return nil, fmt.Errorf("NDJSON line %d: %w", i+1, err)
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no candidates in NDJSON input")
	}
	return out, nil
}

func loadYAML(input string) (candidate.List, error) {
	var items []interface{}
	if err := yaml.Unmarshal([]byte(input), &items); err != nil {
		return nil, fmt.Errorf("parse YAML candidates: %w", err)
	}
	return fromItems(items)
}

func loadMultiDocYAML(input string) (candidate.List, error) {
	dec := yaml.NewDecoder(strings.NewReader(input))
	var out candidate.List
	for {
		var doc []interface{}
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse YAML document: %w", err)
		}
		cands, err := fromItems(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, cands...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no candidates in YAML input")
	}
	return out, nil
}

func loadTOML(input string) (candidate.List, error) {
	var doc struct {
		Candidates []entry `toml:"candidates"`
	}
	if err := toml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, fmt.Errorf("parse TOML candidates: %w", err)
	}
	if len(doc.Candidates) == 0 {
		return nil, fmt.Errorf("TOML input has no candidates array")
	}
	out := make(candidate.List, 0, len(doc.Candidates))
	for i, e := range doc.Candidates {
		if e.Label == "" {
			return nil, fmt.Errorf("TOML candidate %d has no label", i)
		}
		out = append(out, candidate.Candidate{Label: e.Label, Value: e.Value})
	}
	return out, nil
}

func fromItems(items []interface{}) (candidate.List, error) {
	out := make(candidate.List, 0, len(items))
	for i, item := range items {
		c, err := fromItem(item)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func fromItem(item interface{}) (candidate.Candidate, error) {
	switch v := item.(type) {
	case string:
		return candidate.Candidate{Label: v}, nil
	case map[string]interface{}:
		label, _ := v["label"].(string)
		if label == "" {
			return candidate.Candidate{}, fmt.Errorf("object candidate has no label")
		}
		value, _ := v["value"].(string)
		return candidate.Candidate{Label: label, Value: value}, nil
	default:
		return candidate.Candidate{}, fmt.Errorf("unsupported candidate type %T", item)
	}
}

// isLikelyNDJSON reports whether every non-empty line parses as standalone JSON.
func isLikelyNDJSON(lines []string) bool {
	seen := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "{") && !strings.HasPrefix(line, `"`) {
			return false
		}
		seen++
	}
	return seen > 1
}

// isLikelyTOML detects a [section] header or key = value pair on the first line.
func isLikelyTOML(input string) bool {
	first := strings.TrimSpace(strings.SplitN(input, "\n", 2)[0])
	if strings.HasPrefix(first, "[[") {
		return true
	}
	if strings.HasPrefix(first, "[") && strings.HasSuffix(first, "]") && !strings.Contains(first, ",") && !strings.Contains(first, `"`) {
		// "[candidates]" vs a JSON array like ["a"] or [1, 2]
		return !strings.HasPrefix(first, "[]") && len(first) > 2
	}
	return strings.Contains(first, "=") && !strings.HasPrefix(first, "{")
}
