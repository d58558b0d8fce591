package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/beadsync/internal/cmd/table"
)

// Formatter writes data to w in one format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(w io.Writer, data any) error

// Format calls fn.
func (fn FormatterFunc) Format(w io.Writer, data any) error { return fn(w, data) }

var formatters = map[Format]FormatterFunc{
	FormatJSON: writeJSON,
	FormatYAML: writeYAML,
}

// NewFormatter returns the formatter for f. Table formats, and anything
// unknown, get the table formatter.
func NewFormatter(f Format) Formatter {
	if fn, ok := formatters[f]; ok {
		return fn
	}
	return FormatterFunc(writeTable)
}

// Print writes rows for table formats and raw for the others.
func Print(w io.Writer, f Format, rows table.Data, raw any) error {
	if f.IsTable() {
		return writeTable(w, rows)
	}
	return NewFormatter(f).Format(w, raw)
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeYAML(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// writeTable renders table.Data directly and a struct as property/value
// rows. Anything else is written as JSON.
func writeTable(w io.Writer, data any) error {
	var rows table.Data
	switch v := data.(type) {
	case table.Data:
		rows = v
	case *table.Data:
		rows = *v
	default:
		props, ok := properties(data)
		if !ok {
			return writeJSON(w, data)
		}
		rows = props
	}

	tbl := tablewriter.NewTable(w, tablewriter.WithConfig(tableConfig(rows.ColumnAlignment)))
	if len(rows.Headers) > 0 {
		tbl.Header(toAny(rows.Headers)...)
	}
	for _, row := range rows.Rows {
		if err := tbl.Append(toAny(row)...); err != nil {
			return err
		}
	}
	return tbl.Render()
}

var alignments = map[table.Align]tw.Align{
	table.AlignLeft:   tw.AlignLeft,
	table.AlignCenter: tw.AlignCenter,
	table.AlignRight:  tw.AlignRight,
}

func tableConfig(columns []table.Align) tablewriter.Config {
	var cfg tablewriter.Config
	if len(columns) == 0 {
		return cfg
	}
	per := make([]tw.Align, len(columns))
	for i, a := range columns {
		if mapped, ok := alignments[a]; ok {
			per[i] = mapped
		} else {
			per[i] = tw.Skip
		}
	}
	cfg.Header.Alignment = tw.CellAlignment{PerColumn: per}
	cfg.Row.Alignment = tw.CellAlignment{PerColumn: per}
	return cfg
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// properties lays out the exported fields of a struct, labelled from their
// json tags ("branch_name" becomes "Branch Name").
func properties(data any) (table.Data, bool) {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return table.Data{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return table.Data{}, false
	}

	title := cases.Title(language.English)
	props := table.Data{Headers: []string{"Property", "Value"}}
	for _, field := range reflect.VisibleFields(v.Type()) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		label := field.Name
		if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag == "-" {
			continue
		} else if tag != "" {
			label = title.String(strings.ReplaceAll(tag, "_", " "))
		}
		props.Rows = append(props.Rows, []string{label, fmt.Sprint(v.FieldByIndex(field.Index).Interface())})
	}
	return props, true
}
