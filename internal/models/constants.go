// Package models contains data types and constants for the wallchat service contract.
package models

import "time"

// Service paths, relative to the server's origin
const (
	PathHelp     = "/help"
	PathMessages = "/messages"
	PathRename   = "/rename/"
)

// DefaultPollInterval is how often the wall is refetched
const DefaultPollInterval = 500 * time.Millisecond

// Chat input conventions
const (
	// RenamePrefix starts a rename command; it must be followed by whitespace and a name
	RenamePrefix = "/rename"

	// SendingPlaceholder is appended to the wall while a message is in flight
	SendingPlaceholder = "<p>Sending</p>"
)

// DefaultHeaders returns the headers sent with every request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent": "wallchat/0.1",
		"Accept":     "*/*",
	}
}

// MessageHeaders returns headers for posting a message body
func MessageHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "text/plain; charset=utf-8",
	}
}
