// Package csvio implements the back-office CSV import/export formats.
//
// Export quotes every field individually with generic text escaping. Import
// splits lines on bare newlines and fields on bare commas: a field whose value
// contains a comma therefore does not survive a round-trip. The asymmetry is a
// documented limitation of the format, which is intended for same-system
// round-trips only, not as a stable interchange format.
package csvio

import (
	"errors"
	"strconv"
	"strings"
)

var ErrEmpty = errors.New("csv input is empty or malformed")

func encodeField(s string) string { return strconv.Quote(s) }

func decodeField(s string) string {
	s = strings.TrimSpace(s)
	if unq, err := strconv.Unquote(s); err == nil {
		return unq
	}
	return s
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}

func parseBoolDefault(s string, def bool) bool {
	if s == "" {
		return def
	}
	return parseBool(s)
}

// export writes the header row plus one encoded row per record.
func export(header []string, rows [][]string) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		enc := make([]string, len(row))
		for i, f := range row {
			enc[i] = encodeField(f)
		}
		b.WriteString(strings.Join(enc, ","))
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// parse returns the header fields and decoded data rows. Blank lines are
// skipped; a missing header is an error and nothing is returned.
func parse(data []byte) ([]string, [][]string, error) {
	lines := []string{}
	for _, line := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, nil, ErrEmpty
	}
	header := strings.Split(lines[0], ",")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cols := strings.Split(line, ",")
		dec := make([]string, len(cols))
		for i, c := range cols {
			dec[i] = decodeField(c)
		}
		rows = append(rows, dec)
	}
	return header, rows, nil
}

// field returns the named column of a row, or "" when absent.
func field(header []string, row []string, name string) string {
	for i, h := range header {
		if h == name && i < len(row) {
			return row[i]
		}
	}
	return ""
}
