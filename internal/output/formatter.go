package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Formatter renders a plan report
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console":  ConsoleFormatter{},
	"csv":      CSVFormatter{},
	"json":     JSONFormatter{Pretty: true},
	"markdown": MarkdownFormatter{},
	"html":     HTMLFormatter{},
}

var formatAliases = map[string]string{
	"text":  "console",
	"table": "console",
	"txt":   "console",
	"md":    "markdown",
	"htm":   "html",
}

var extensions = map[string]string{
	"console":  "txt",
	"csv":      "csv",
	"json":     "json",
	"markdown": "md",
	"html":     "html",
}

// NormalizeFormatName lowercases a format name and resolves aliases
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[n]; ok {
		return canonical
	}
	return n
}

// GetFormatterByName returns the formatter registered under name or one of its aliases
func GetFormatterByName(name string) (Formatter, bool) {
	f, ok := formatters[NormalizeFormatName(name)]
	return f, ok
}

// AvailableFormatterNames lists the canonical format names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Extension returns the file extension used when writing a format to disk
func Extension(name string) string {
	if ext, ok := extensions[NormalizeFormatName(name)]; ok {
		return ext
	}
	return "txt"
}

// ReportFilename names an exported report: retirement-plan-YYYY-MM-DD.<ext>
func ReportFilename(report *Report, ext string) string {
	return fmt.Sprintf("retirement-plan-%s.%s", report.GeneratedAt.Format("2006-01-02"), ext)
}

// WriteFormatted renders report with f and writes it into dir, returning the path written
func WriteFormatted(f Formatter, report *Report, dir string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}

	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ReportFilename(report, Extension(f.Name())))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
