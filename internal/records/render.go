package records

import (
	"fmt"
	"github.com/goccy/go-yaml"
	"github.com/icinga/icinga-filter/pkg/filter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/exp/maps"
	"io"
	"slices"
	"strings"
)

// Format is the output format of the matched records.
type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// Validate implements the config.Validator interface.
func (f Format) Validate() error {
	switch f {
	case FormatTable, FormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format %q, expected one of %q or %q", f, FormatTable, FormatYAML)
	}
}

// Render writes the records to w in the given format.
func Render(w io.Writer, format Format, records []filter.Record) error {
	switch format {
	case FormatTable:
		_, err := io.WriteString(w, renderTable(records)+"\n")
		return err
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(records)
	default:
		return format.Validate()
	}
}

// renderTable renders one row per record and one column per field any of the records has, sorted by name.
func renderTable(records []filter.Record) string {
	columns := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			columns[k] = struct{}{}
		}
	}

	names := maps.Keys(columns)
	slices.Sort(names)

	header := make(table.Row, 0, len(names))
	for _, name := range names {
		header = append(header, name)
	}

	tw := table.NewWriter()
	tw.AppendHeader(header)
	for _, r := range records {
		row := make(table.Row, 0, len(names))
		for _, name := range names {
			row = append(row, cell(r, name))
		}

		tw.AppendRow(row)
	}

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	return tw.Render()
}

// cell renders nested values inline as YAML flow style, so that lists and maps stay on one line.
func cell(r filter.Record, name string) string {
	v, ok := r[name]
	if !ok {
		return ""
	}

	switch v.(type) {
	case []any, map[string]any:
		out, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
		if err == nil {
			return strings.TrimSpace(string(out))
		}
	}

	return fmt.Sprintf("%v", v)
}
