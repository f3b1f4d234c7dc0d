package codec

import (
	"errors"
	"strconv"
	"strings"

	"hushbudget/internal/core"
)

// ErrEmptyExport reports an export request against an empty collection. The
// caller surfaces it as a notice and produces no file.
var ErrEmptyExport = errors.New("no transactions to export")

// ExportFilename is the download name for the export artifact.
const ExportFilename = "transactions.csv"

var exportHeader = []string{"id", "description", "amount", "category", "date"}

// EncodeExport renders the delimited export encoding: a header row followed
// by one row per record, comma-delimited, "\n"-separated. Every field is
// quoted unconditionally with internal quotes doubled, so the output never
// depends on field content.
func EncodeExport(records []core.Transaction) (string, error) {
	if len(records) == 0 {
		return "", ErrEmptyExport
	}

	rows := make([]string, 0, len(records)+1)
	rows = append(rows, strings.Join(exportHeader, ","))
	for _, t := range records {
		fields := []string{
			strconv.FormatInt(t.ID, 10),
			t.Description,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
			t.Category,
			t.Date.String(),
		}
		for i, f := range fields {
			fields[i] = quoteField(f)
		}
		rows = append(rows, strings.Join(fields, ","))
	}
	return strings.Join(rows, "\n"), nil
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
