package docs

import (
	"fmt"
	"strings"

	"github.com/diogo/wallchat/internal/models"
	"github.com/diogo/wallchat/internal/render"
)

// RenderCardMarkdown writes one endpoint as a markdown section
func RenderCardMarkdown(e models.EndpointDescriptor) string {
	e = CleanEndpoint(e)

	var b strings.Builder
	b.WriteString("### ")
	if e.Operation != "" {
		fmt.Fprintf(&b, "`%s` ", e.Operation)
	}
	b.WriteString(codeSpan(e.URL))
	b.WriteString("\n\n")
	if e.Handler != "" {
		fmt.Fprintf(&b, "Handler: %s\n", codeSpan(e.Handler))
	} else {
		b.WriteString("_no handler_\n")
	}
	return b.String()
}

// RenderDocMarkdown writes the whole document, cards in order
func RenderDocMarkdown(doc *models.HelpDocument) string {
	var b strings.Builder
	b.WriteString("# Endpoints\n\n")

	if doc.Len() == 0 {
		b.WriteString("_The service lists no endpoints._\n")
		return b.String()
	}

	for i, e := range doc.Endpoints {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(RenderCardMarkdown(e))
	}
	return b.String()
}

// Render produces terminal output for doc through glamour
func Render(doc *models.HelpDocument, opts render.Options) (string, error) {
	return render.Markdown(RenderDocMarkdown(doc), opts)
}

// codeSpan wraps s in backticks, widening the fence when s has its own
func codeSpan(s string) string {
	if s == "" {
		return "``"
	}
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}
