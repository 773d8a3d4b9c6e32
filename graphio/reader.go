// SPDX-License-Identifier: MIT

package graphio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/asgdnmf/matrix"
)

// record is one non-empty input line split into fields.
type record struct {
	line   int
	fields []string
}

// ReadEdgeList parses an edge list. With weighted the third column is
// required and parsed as the edge weight; otherwise it is ignored.
//
// Errors: ErrBadRecord (with line number), ErrNoEdges, read errors.
func ReadEdgeList(r io.Reader, weighted bool) ([]matrix.Edge, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read edge list: %w", err)
	}
	var records []record
	if commaSeparated(data) {
		records, err = csvRecords(data)
		if err != nil {
			return nil, err
		}
	} else {
		records = fieldRecords(data)
	}

	edges := make([]matrix.Edge, 0, len(records))
	for k, rec := range records {
		if k == 0 && !isInt(rec.fields[0]) {
			continue // header
		}
		e, err := parseEdge(rec.fields, weighted, rec.line)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	if len(edges) == 0 {
		return nil, ErrNoEdges
	}

	return edges, nil
}

func csvRecords(data []byte) ([]record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var out []record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if fields = nonEmpty(fields); len(fields) > 0 {
			out = append(out, record{line: line, fields: fields})
		}
	}
}

func fieldRecords(data []byte) []record {
	var out []record
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, record{line: i + 1, fields: strings.Fields(line)})
	}

	return out
}

// ReadEdgeListFile opens filename and calls ReadEdgeList.
func ReadEdgeListFile(filename string, weighted bool) ([]matrix.Edge, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadEdgeList(file, weighted)
}

// commaSeparated reports whether the first data line contains a comma.
func commaSeparated(data []byte) bool {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Contains(line, ",")
	}

	return true
}

// nonEmpty drops empty fields left by repeated whitespace separators.
func nonEmpty(record []string) []string {
	out := record[:0]
	for _, f := range record {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}

	return out
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func parseEdge(fields []string, weighted bool, line int) (matrix.Edge, error) {
	if len(fields) < 2 || len(fields) > 3 {
		return matrix.Edge{}, fmt.Errorf("line %d: expected 2 or 3 columns, got %d: %w", line, len(fields), ErrBadRecord)
	}
	from, err := strconv.Atoi(fields[0])
	if err != nil {
		return matrix.Edge{}, fmt.Errorf("line %d, column 1: invalid integer: %w", line, ErrBadRecord)
	}
	to, err := strconv.Atoi(fields[1])
	if err != nil {
		return matrix.Edge{}, fmt.Errorf("line %d, column 2: invalid integer: %w", line, ErrBadRecord)
	}
	e := matrix.Edge{From: from, To: to, Weight: matrix.DefaultEdgeWeight}
	if !weighted {
		return e, nil
	}
	if len(fields) < 3 {
		return matrix.Edge{}, fmt.Errorf("line %d: missing weight: %w", line, ErrBadRecord)
	}
	if e.Weight, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return matrix.Edge{}, fmt.Errorf("line %d, column 3: invalid weight: %w", line, ErrBadRecord)
	}

	return e, nil
}
