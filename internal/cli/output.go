package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// columns renders records of one type as table rows.
type columns[T any] struct {
	headers []string
	row     func(T) []string
}

func render[T any](w io.Writer, format string, cols columns[T], rec T) error {
	return renderList(w, format, cols, []T{rec}, true)
}

// renderList writes recs in format. single emits the lone record instead of
// a one-element list for json and yaml.
func renderList[T any](w io.Writer, format string, cols columns[T], recs []T, single bool) error {
	var value any = recs
	if single && len(recs) == 1 {
		value = recs[0]
	}
	if recs == nil {
		value = []T{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(cols.headers, "\t"))
		for _, rec := range recs {
			fmt.Fprintln(tw, strings.Join(cols.row(rec), "\t"))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
