// Package export writes comparison results and requirement sets to files.
//
// Requirement sets use the flat table form (one row per requirement
// attribute) as CSV; any result can be written as YAML.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// CSV readers fold a quoted "\r\n" into "\n", so carriage returns are
// written as the two characters `\r` and backslashes are doubled.
var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\r", `\r`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\r`, "\r")
)

// WriteTable writes rows as CSV with a domain.TableColumns header.
func WriteTable(w io.Writer, rows []domain.TableRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.TableColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.ID, r.Identifier, r.Type, string(r.Kind), r.Attribute, r.Value}
		for i := range record {
			record[i] = escaper.Replace(record[i])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTable reads CSV written by WriteTable. The header must match
// domain.TableColumns exactly.
func ReadTable(r io.Reader) ([]domain.TableRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(domain.TableColumns)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty table", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !slices.Equal(header, domain.TableColumns) {
		return nil, fmt.Errorf("%w: unexpected header %v", domain.ErrInvalidInput, header)
	}

	var rows []domain.TableRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		for i := range record {
			record[i] = unescaper.Replace(record[i])
		}

		row := domain.TableRow{
			ID:         record[0],
			Identifier: record[1],
			Type:       record[2],
			Kind:       domain.AttributeKind(record[3]),
			Attribute:  record[4],
			Value:      record[5],
		}
		if row.ID == "" {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: empty id", domain.ErrInvalidInput, line)
		}
		if row.Kind != "" && !row.Kind.IsValid() {
			line, _ := cr.FieldPos(3)
			return nil, fmt.Errorf("%w: line %d: unknown kind %q", domain.ErrInvalidInput, line, row.Kind)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
