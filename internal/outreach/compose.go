// Package outreach composes first-contact messages and submits them through
// the browser, consulting the ledger so no listing is contacted twice.
package outreach

import "strings"

// Placeholder values substituted when a record is missing the optional field
// a template slot refers to.
const (
	DefaultUserName     = "there"
	DefaultRequestTitle = "your request"
)

// RenderMessage fills the {user_name} and {request_title} slots of the
// configured template from the record's fields, falling back to neutral
// placeholders for absent ones.
func RenderMessage(template, author, title string) string {
	if author == "" {
		author = DefaultUserName
	}
	if title == "" {
		title = DefaultRequestTitle
	}
	return strings.NewReplacer(
		"{user_name}", author,
		"{request_title}", title,
	).Replace(template)
}
