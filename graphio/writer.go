// SPDX-License-Identifier: MIT

package graphio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/asgdnmf/matrix"
)

// WriteEdgeList writes "source,target[,weight]" rows.
func WriteEdgeList(w io.Writer, edges []matrix.Edge, weighted bool) error {
	headers := []string{"source", "target"}
	if weighted {
		headers = append(headers, "weight")
	}
	rows := make([][]string, len(edges))
	for i, e := range edges {
		row := []string{strconv.Itoa(e.From), strconv.Itoa(e.To)}
		if weighted {
			row = append(row, formatFloat(e.Weight))
		}
		rows[i] = row
	}

	return writeCSV(w, headers, rows)
}

// WriteLabels writes "node,community" rows in node order.
func WriteLabels(w io.Writer, labels []int) error {
	rows := make([][]string, len(labels))
	for i, l := range labels {
		rows[i] = []string{strconv.Itoa(i), strconv.Itoa(l)}
	}

	return writeCSV(w, []string{"node", "community"}, rows)
}

// WriteFactors writes one "node,c0,...,cK-1" row per matrix row.
func WriteFactors(w io.Writer, m *matrix.Dense) error {
	if m == nil {
		return fmt.Errorf("WriteFactors: %w", matrix.ErrNilMatrix)
	}
	r, c := m.Shape()
	headers := make([]string, c+1)
	headers[0] = "node"
	for j := 0; j < c; j++ {
		headers[j+1] = "c" + strconv.Itoa(j)
	}
	data := m.RawData()
	rows := make([][]string, r)
	for i := 0; i < r; i++ {
		row := make([]string, c+1)
		row[0] = strconv.Itoa(i)
		for j := 0; j < c; j++ {
			row[j+1] = formatFloat(data[i*c+j])
		}
		rows[i] = row
	}

	return writeCSV(w, headers, rows)
}

// WriteFile creates filePath (and its directory) and passes it to write.
func WriteFile(filePath string, write func(io.Writer) error) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}

func writeCSV(w io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	writer.Flush()

	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
