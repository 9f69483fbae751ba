package models

import "strings"

// OptimisticEntry returns the wall fragment shown while text is being sent.
// The raw text is inserted as-is, matching what the wall displays once the
// server echoes it back.
func OptimisticEntry(text string) string {
	var b strings.Builder
	b.WriteString(SendingPlaceholder)
	b.WriteString("<div>")
	b.WriteString(text)
	b.WriteString("</div>")
	return b.String()
}
