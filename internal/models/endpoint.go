package models

import "strings"

// EndpointDescriptor describes one HTTP route of the chat service
type EndpointDescriptor struct {
	Operation string `json:"operation" yaml:"operation"`
	URL       string `json:"url" yaml:"url"`
	Handler   string `json:"handler" yaml:"handler"`
}

// HelpDocument is the body returned by the help endpoint.
// Endpoints keep the order the server listed them in.
type HelpDocument struct {
	Endpoints []EndpointDescriptor `json:"endpoints" yaml:"endpoints"`
}

// Len returns the number of endpoints
func (d *HelpDocument) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Endpoints)
}

// Known HTTP operations
const (
	OperationGet    = "GET"
	OperationPost   = "POST"
	OperationPut    = "PUT"
	OperationPatch  = "PATCH"
	OperationDelete = "DELETE"
)

// KnownOperations returns the operations that get a dedicated style
func KnownOperations() []string {
	return []string{
		OperationGet,
		OperationPost,
		OperationPut,
		OperationPatch,
		OperationDelete,
	}
}

// IsKnownOperation reports whether op is one of KnownOperations (case-insensitive)
func IsKnownOperation(op string) bool {
	op = strings.ToUpper(strings.TrimSpace(op))
	for _, known := range KnownOperations() {
		if op == known {
			return true
		}
	}
	return false
}
