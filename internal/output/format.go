package output

import "strings"

// FormatOptions control transcript post-processing before commit.
type FormatOptions struct {
	AddTrailingSpace     bool
	RemoveTrailingPeriod bool
	RemoveCapitalization bool
}

// Format applies configured post-processing to a raw transcript.
func Format(text string, opts FormatOptions) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if opts.RemoveTrailingPeriod {
		text = strings.TrimSuffix(text, ".")
	}
	if opts.RemoveCapitalization {
		text = strings.ToLower(text)
	}
	if opts.AddTrailingSpace {
		text += " "
	}
	return text
}
