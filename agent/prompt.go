package agent

import "strings"

// Attachment is a file reference included with a prompt. The CLI resolves
// @<path> references itself; Description is an optional hint rendered in
// parentheses after the path.
type Attachment struct {
	Path        string
	Description string
}

// ComposePrompt prepends one @<path> reference line per attachment to the
// prompt body, separated from it by a blank line.
//
// Returns "" when both prompt and attachments are empty, and the
// attachment block alone when the prompt is empty.
func ComposePrompt(prompt string, attachments []Attachment) string {
	var refs []string
	for _, a := range attachments {
		if a.Path == "" {
			continue
		}
		line := "@" + a.Path
		if a.Description != "" {
			line += " (" + a.Description + ")"
		}
		refs = append(refs, line)
	}

	block := strings.Join(refs, "\n")
	switch {
	case block == "":
		return prompt
	case prompt == "":
		return block
	default:
		return block + "\n\n" + prompt
	}
}
