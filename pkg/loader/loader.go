// Package loader turns files or stdin into record collections. Input format
// is auto-detected: JSON object/array, newline-delimited JSON, YAML (single
// or multi-document), TOML, or CSV with a header row. Every format normalizes
// to []map[string]any so screens can treat all sources alike.
package loader

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Records is one loaded collection.
type Records []map[string]any

// LoadFile reads and parses a record collection from a file. CSV detection
// uses the file extension; everything else is sniffed from content.
func LoadFile(path string) (Records, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isCSVFile(path) {
		return parseCSV(data)
	}
	return Load(data)
}

// Load parses record bytes, auto-detecting the format.
func Load(data []byte) (Records, error) {
	input := strings.TrimSpace(string(data))
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	// Multi-document YAML first (most restrictive marker).
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return loadMultiDocYAML(input)
	}

	// Newline-delimited JSON: several lines, each its own object.
	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return loadNDJSON(lines)
	}

	// TOML before JSON: "[section]" headers look like JSON arrays.
	if isLikelyTOML(input) {
		return loadTOML(input)
	}

	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return loadJSON(input)
	}

	return loadYAML(input)
}

func isCSVFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

func isLikelyNDJSON(lines []string) bool {
	seen := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "{") {
			return false
		}
		seen++
	}
	return seen > 1
}

func isLikelyTOML(input string) bool {
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") && !strings.Contains(line, ",") {
			return true
		}
		// key = value at the top level is TOML, not JSON/YAML.
		if eq := strings.Index(line, "="); eq > 0 && !strings.Contains(line[:eq], ":") {
			return true
		}
		return false
	}
	return false
}

func loadJSON(input string) (Records, error) {
	var node any
	if err := json.Unmarshal([]byte(input), &node); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return normalize(node)
}

func loadNDJSON(lines []string) (Records, error) {
	var records Records
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parse ndjson line %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func loadYAML(input string) (Records, error) {
	var node any
	if err := yaml.Unmarshal([]byte(input), &node); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return normalize(node)
}

func loadMultiDocYAML(input string) (Records, error) {
	dec := yaml.NewDecoder(strings.NewReader(input))
	var records Records
	for {
		var node any
		err := dec.Decode(&node)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse yaml document: %w", err)
		}
		if node == nil {
			continue
		}
		recs, err := normalize(node)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

func loadTOML(input string) (Records, error) {
	var node map[string]any
	if err := toml.Unmarshal([]byte(input), &node); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	return normalize(node)
}

// parseCSV converts CSV data into records keyed by the header row. Numeric
// and boolean cells are typed so that sorting and CEL filters see real
// values, not strings.
func parseCSV(data []byte) (Records, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv input has no header row")
	}

	headers := rows[0]
	records := make(Records, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]any, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = typedCell(row[i])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func typedCell(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// normalize coerces a parsed node into a flat record collection. An array of
// objects maps one-to-one; a single object becomes a one-record collection; a
// single-key object wrapping an array (a common API envelope) unwraps.
// Anything else is rejected: the grid presents records, not scalars.
func normalize(node any) (Records, error) {
	switch v := node.(type) {
	case []any:
		records := make(Records, 0, len(v))
		for i, el := range v {
			rec, ok := el.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, want an object", i, el)
			}
			records = append(records, rec)
		}
		return records, nil
	case map[string]any:
		// Unwrap a single-key envelope like {"items": [...]}.
		if len(v) == 1 {
			for _, inner := range v {
				if arr, ok := inner.([]any); ok {
					return normalize(arr)
				}
			}
		}
		return Records{v}, nil
	default:
		return nil, fmt.Errorf("input is %T, want an object or array of objects", node)
	}
}
