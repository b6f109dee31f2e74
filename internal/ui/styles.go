package ui

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TylerBrock/colorjson"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/olekukonko/tablewriter"
	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/theme"
	"gopkg.in/yaml.v3"
)

// Stdout and Stderr are where CLI output goes
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// CurrentTheme returns the tint for the configured theme mode
func CurrentTheme() tint.Tint {
	mode, err := theme.ParseMode(config.Get().Theme)
	if err != nil {
		mode = theme.Light
	}
	return theme.NewContext(mode).Tint()
}

func AccentStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Accent(t))
}

func TitleStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accent(t)).
		MarginBottom(1)
}

func LabelStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightWhite()).
		Width(16)
}

func ValueStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.White())
}

func MutedStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.BrightBlack())
}

func ErrorStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightRed()).
		Bold(true)
}

func SuccessStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightGreen()).
		Bold(true)
}

// RenderError prints a styled error message
func RenderError(err error) {
	fmt.Fprintf(Stderr, "%s %v\n", ErrorStyle(CurrentTheme()).Render("Error:"), err)
}

// RenderSuccess prints a styled success message
func RenderSuccess(msg string) {
	fmt.Fprintln(Stdout, SuccessStyle(CurrentTheme()).Render(msg))
}

// OutputData is a result that can be printed in any of the output formats
type OutputData struct {
	Title   string
	Headers []string
	Rows    [][]string
	Raw     any // used for json and yaml
}

// Print writes d in the configured output format
func (d OutputData) Print() error {
	return d.Fprint(Stdout, config.Get().OutputFormat)
}

func (d OutputData) Fprint(w io.Writer, format string) error {
	switch strings.Trim(strings.ToLower(format), "\"") {
	case "json":
		return d.printJSON(w)
	case "json-pretty":
		return d.printJSONPretty(w)
	case "yaml":
		return d.printYAML(w)
	case "csv":
		return d.printCSV(w)
	case "txt", "text":
		return d.printText(w)
	default:
		return d.printTable(w)
	}
}

func (d OutputData) printJSONPretty(w io.Writer) error {
	rawJSON, err := json.Marshal(d.Raw)
	if err != nil {
		return err
	}
	var obj any
	if err := json.Unmarshal(rawJSON, &obj); err != nil {
		return err
	}

	f := colorjson.NewFormatter()
	f.Indent = 2
	b, err := f.Marshal(obj)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func (d OutputData) printJSON(w io.Writer) error {
	b, err := json.Marshal(d.Raw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func (d OutputData) printYAML(w io.Writer) error {
	b, err := yaml.Marshal(d.Raw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(b))
	return err
}

func (d OutputData) printCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Headers); err != nil {
		return err
	}
	return cw.WriteAll(d.Rows)
}

func (d OutputData) printText(w io.Writer) error {
	t := CurrentTheme()
	if d.Title != "" {
		fmt.Fprintln(w, TitleStyle(t).Render(d.Title))
	}
	for _, row := range d.Rows {
		for i, val := range row {
			if i < len(d.Headers) {
				fmt.Fprintf(w, "%s %s\n", LabelStyle(t).Render(d.Headers[i]+":"), ValueStyle(t).Render(val))
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

func (d OutputData) printTable(w io.Writer) error {
	if d.Title != "" {
		fmt.Fprintln(w, TitleStyle(CurrentTheme()).Render(d.Title))
	}
	table := tablewriter.NewWriter(w)
	table.Header(d.Headers)
	if err := table.Bulk(d.Rows); err != nil {
		return err
	}
	return table.Render()
}

type SummaryItem struct{ Label, Value string }

// RenderSummary renders a list of key-value pairs
func RenderSummary(title string, items []SummaryItem) {
	t := CurrentTheme()
	if title != "" {
		fmt.Fprintln(Stdout, TitleStyle(t).Render(title))
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle(t).Render(item.Label+":"), ValueStyle(t).Render(item.Value))
	}
	fmt.Fprintln(Stdout, b.String())
}
