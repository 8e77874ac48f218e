// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package dataset

import (
	"errors"
	"strings"
)

// The source CSV stores multi-valued cells as Python-style list literals,
// e.g. ['Drama', 'Comedy'] or ["US", "GB"]. ParseListLiteral decodes that
// shape without pulling in a full literal grammar: elements are quoted
// strings (single or double quotes, backslash escapes) separated by
// commas.

var errListSyntax = errors.New("malformed list literal")

// ParseListLiteral decodes a text-encoded list of strings.
//
// An empty cell and the empty list decode to nil. A bare unbracketed token
// decodes as a single-element list, mirroring the original pipeline's
// pass-through of already-decoded values. Anything bracketed but not
// parseable returns errListSyntax.
func ParseListLiteral(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "[") {
		return []string{s}, nil
	}
	if !strings.HasSuffix(s, "]") {
		return nil, errListSyntax
	}

	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return nil, nil
	}

	var (
		out     []string
		elem    strings.Builder
		quote   rune // active quote character, 0 outside quotes
		escaped bool
		inElem  bool
	)
	for _, r := range body {
		switch {
		case escaped:
			elem.WriteRune(r)
			escaped = false
		case quote != 0:
			switch r {
			case '\\':
				escaped = true
			case quote:
				quote = 0
			default:
				elem.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inElem = true
		case r == ',':
			if !inElem {
				return nil, errListSyntax
			}
			out = append(out, elem.String())
			elem.Reset()
			inElem = false
		case r == ' ' || r == '\t':
			// whitespace between tokens
		default:
			// unquoted element, e.g. [Drama] or [12]
			elem.WriteRune(r)
			inElem = true
		}
	}
	if quote != 0 || escaped {
		return nil, errListSyntax
	}
	if inElem {
		out = append(out, elem.String())
	} else if len(out) > 0 {
		// trailing comma
		return nil, errListSyntax
	}
	return out, nil
}
