package config

import (
	"fmt"
	"strings"
	"unicode"
)

// splitCommand turns a configured clipboard or typing command string into an
// argv vector. Quoting follows shell conventions closely enough for the usual
// one-liners (wl-copy, xdotool type, ydotool) without invoking a shell: single
// and double quotes group words, backslash escapes the next rune. A leading #
// comments the whole command out, which config samples use to ship disabled
// alternatives.
func splitCommand(command string) ([]string, error) {
	command = strings.TrimSpace(command)
	if command == "" || strings.HasPrefix(command, "#") {
		return nil, nil
	}

	var (
		argv    []string
		current strings.Builder
		quote   rune
		escape  bool
	)

	flush := func() {
		if current.Len() == 0 {
			return
		}
		argv = append(argv, current.String())
		current.Reset()
	}

	for _, r := range command {
		switch {
		case escape:
			current.WriteRune(r)
			escape = false
		case r == '\\':
			escape = true
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}

	if escape {
		return nil, fmt.Errorf("unterminated escape in command %q", command)
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in command %q", command)
	}

	flush()
	return argv, nil
}

// mustSplitCommand is for built-in defaults, which are known to parse.
func mustSplitCommand(command string) []string {
	argv, err := splitCommand(command)
	if err != nil {
		panic(err)
	}
	return argv
}
