package corpus

import "strings"

// FormatTable renders a table as Markdown with a header separator row, the
// shape language models handle most reliably for cell lookups.
func FormatTable(table [][]string) string {
	var b strings.Builder
	for i, row := range table {
		b.WriteString("| ")
		b.WriteString(strings.Join(row, " | "))
		b.WriteString(" |\n")
		if i == 0 {
			b.WriteString("|")
			for range row {
				b.WriteString(" --- |")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatContext assembles the document into the context block handed to the
// answer-generation collaborator.
func FormatContext(doc *Document) string {
	var b strings.Builder

	if doc.ID != "" {
		b.WriteString("DOCUMENT ID: ")
		b.WriteString(doc.ID)
		b.WriteString("\n\n")
	}
	if len(doc.PreText) > 0 {
		b.WriteString("TEXT BEFORE TABLE:\n")
		b.WriteString(strings.Join(doc.PreText, " "))
		b.WriteString("\n\n")
	}
	if len(doc.Table) > 0 {
		b.WriteString("TABLE:\n")
		b.WriteString(FormatTable(doc.Table))
		b.WriteString("\n")
	}
	if len(doc.PostText) > 0 {
		b.WriteString("TEXT AFTER TABLE:\n")
		b.WriteString(strings.Join(doc.PostText, " "))
		b.WriteString("\n\n")
	}
	return b.String()
}
