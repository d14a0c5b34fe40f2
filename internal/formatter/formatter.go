// package formatter exports party guest lists to CSV, Markdown, plain text and JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// ManifestFile is the name of the bulk export manifest inside the output directory.
const ManifestFile = "export_manifest.json"

// ParseFormat accepts a format name or a common alias (md, txt).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

const dateLayout = "2006-01-02 15:04"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// ExportToCSV converts a guest list to CSV with columns: ID, Name, Full Name, Age, Present, Invited, Host, Photo
func ExportToCSV(list *models.GuestList) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Full Name", "Age", "Present", "Invited", "Host", "Photo"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, a := range list.Attendees {
		record := []string{
			strconv.Itoa(a.ID),
			a.Name,
			a.FullName,
			strconv.Itoa(a.Age),
			shared.YesNo(a.Present),
			shared.YesNo(a.Invited),
			shared.YesNo(a.Host),
			a.PhotoURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a guest list to Markdown; hosts are starred.
func ExportToMarkdown(list *models.GuestList) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", list.Party.Name))
	buf.WriteString(fmt.Sprintf("**Date**: %s\n", formatDate(list.Party.Date)))
	buf.WriteString(fmt.Sprintf("**Attendees**: %d (%d present, %d invited)\n", len(list.Attendees), list.Present(), list.Invited()))
	if hosts := list.Hosts(); len(hosts) > 0 {
		buf.WriteString(fmt.Sprintf("**Hosts**: %s\n", strings.Join(hosts, ", ")))
	}
	buf.WriteString("\n## Attendees\n\n")

	if len(list.Attendees) == 0 {
		buf.WriteString("_No attendees._\n")
		return buf.Bytes(), nil
	}

	for i, a := range list.Attendees {
		line := fmt.Sprintf("%d. %s", i+1, a.Name)
		if a.FullName != "" {
			line += fmt.Sprintf(" (%s)", a.FullName)
		}
		line += fmt.Sprintf(", %d", a.Age)
		if a.Host {
			line += " ★ host"
		}
		if !a.Present {
			line += " _(absent)_"
		}
		if a.PhotoURL != "" {
			line += fmt.Sprintf(" [photo](%s)", a.PhotoURL)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a guest list to plain text
func ExportToText(list *models.GuestList) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Party: %s\n", list.Party.Name))
	buf.WriteString(fmt.Sprintf("Date: %s\n", formatDate(list.Party.Date)))
	buf.WriteString(fmt.Sprintf("Attendees: %d\n\n", len(list.Attendees)))

	for i, a := range list.Attendees {
		marker := ""
		if a.Host {
			marker = " [host]"
		}
		buf.WriteString(fmt.Sprintf("%d. %s, %d%s\n", i+1, a.Name, a.Age, marker))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a guest list to indented JSON
func ExportToJSON(list *models.GuestList) ([]byte, error) {
	return shared.MarshalJSON(list, true)
}

// baseName defaults export file names to party_{id}.
func baseName(list *models.GuestList) string {
	return fmt.Sprintf("party_%d", list.Party.ID)
}

// WriteCSVExport writes {base}_guests.csv. Defaults base to party_{id}.
func WriteCSVExport(list *models.GuestList, base string) (string, error) {
	if base == "" {
		base = baseName(list)
	}

	data, err := ExportToCSV(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	path := base + "_guests.csv"
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	return path, nil
}

// WriteMarkdownExport writes {dir}/README.md. Defaults dir to party_{id}.
func WriteMarkdownExport(list *models.GuestList, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = baseName(list)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := ExportToMarkdown(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	path := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}
	return path, nil
}

// WriteTextExport writes the plain text export. Defaults to party_{id}_guests.txt.
func WriteTextExport(list *models.GuestList, path string) (string, error) {
	if path == "" {
		path = baseName(list) + "_guests.txt"
	}

	data, err := ExportToText(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}
	return path, nil
}

// WriteJSONExport writes the JSON export. Defaults to party_{id}.json.
func WriteJSONExport(list *models.GuestList, path string) (string, error) {
	if path == "" {
		path = baseName(list) + ".json"
	}

	data, err := ExportToJSON(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}
	return path, nil
}

// WriteExport writes list in format under dir using the default names and returns the files created.
func WriteExport(list *models.GuestList, format Format, dir string) ([]string, error) {
	base := filepath.Join(dir, baseName(list))

	var (
		path string
		err  error
	)
	switch format {
	case FormatCSV:
		path, err = WriteCSVExport(list, base)
	case FormatMarkdown:
		path, err = WriteMarkdownExport(list, base)
	case FormatText:
		path, err = WriteTextExport(list, base+"_guests.txt")
	case FormatJSON:
		path, err = WriteJSONExport(list, base+".json")
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// WriteBulkExportManifest writes {dir}/export_manifest.json.
func WriteBulkExportManifest(manifest *models.ExportManifest, dir string) (string, error) {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return "", fmt.Errorf("failed to generate manifest: %w", err)
	}

	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}
