package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// renderer writes command results as a table or as structured data.
type renderer struct {
	w      io.Writer
	format string

	good, bad, warn *color.Color
	title           cases.Caser
}

func newRenderer(w io.Writer, format string, colored bool) *renderer {
	r := &renderer{
		w:      w,
		format: format,
		good:   color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
		warn:   color.New(color.FgYellow),
		title:  cases.Title(language.English),
	}
	if !colored {
		for _, c := range []*color.Color{r.good, r.bad, r.warn} {
			c.DisableColor()
		}
	}
	return r
}

// structured reports whether results should be encoded rather than tabled.
func (r *renderer) structured() bool { return r.format == "json" || r.format == "yaml" }

// encode writes v as JSON or YAML.
func (r *renderer) encode(v any) error {
	if r.format == "yaml" {
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *renderer) table(header []string, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	h := make(table.Row, len(header))
	for i, col := range header {
		h[i] = r.title.String(col)
	}
	t.AppendHeader(h)
	t.AppendRows(rows)
	t.Render()
}

func (r *renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

// verdict colours a yes/no cell.
func (r *renderer) verdict(ok bool, yes, no string) string {
	if ok {
		return r.good.Sprint(yes)
	}
	return r.bad.Sprint(no)
}
