package docs

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/diogo/wallchat/internal/models"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// CleanText strips markup from a descriptor field, leaving the text a
// browser would have shown.
func CleanText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	// bluemonday escapes what it keeps; undo that for terminal output
	return strings.TrimSpace(html.UnescapeString(strictPolicy().Sanitize(s)))
}

// CleanEndpoint applies CleanText to every field
func CleanEndpoint(e models.EndpointDescriptor) models.EndpointDescriptor {
	return models.EndpointDescriptor{
		Operation: CleanText(e.Operation),
		URL:       CleanText(e.URL),
		Handler:   CleanText(e.Handler),
	}
}
