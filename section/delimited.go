package section

import "strings"

const (
	recordSeparator = "||"
	fieldSeparator  = "|"
)

// splitRecords splits a double-pipe document into its records, dropping blank ones.
func splitRecords(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	var out []string
	for _, rec := range strings.Split(content, recordSeparator) {
		if strings.TrimSpace(rec) != "" {
			out = append(out, rec)
		}
	}
	return out
}

func splitFields(record string) []string {
	parts := strings.Split(record, fieldSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// field returns parts[i] or "" when the tuple is shorter.
func field(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

func joinRecords(records []string) string {
	return strings.Join(records, recordSeparator)
}

// emptyField stands in for a blank field: two adjacent separators would read
// as a record boundary. Fields are trimmed on parse so it reads back as "".
const emptyField = " "

func joinFields(fields ...string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		if f == "" {
			f = emptyField
		}
		out[i] = f
	}
	return strings.Join(out, fieldSeparator)
}

// ContainsDelimiter reports whether a value would corrupt a pipe encoded record.
func ContainsDelimiter(value string) bool {
	return strings.Contains(value, fieldSeparator)
}

func isJSONDocument(content string) bool {
	trimmed := strings.TrimSpace(content)
	return strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{")
}

func parseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return fallback
	}
}
