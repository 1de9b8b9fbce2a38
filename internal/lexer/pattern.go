package lexer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// definitionRef matches a {name} placeholder in pattern source, where
// name follows the same grammar as a definition's own name.
var definitionRef = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_-]*)\}`)

// compiledPattern is a compiled pattern: a matcher that can be asked
// "does this pattern match starting exactly at offset in source", plus
// the two pieces of bookkeeping the Match Selector needs - whether the
// pattern carries a user anchor, and (for literals) a fixed width that
// lets the selector short-circuit.
type compiledPattern struct {
	re         *regexp.Regexp
	hasBOL     bool
	hasEOL     bool
	fixedWidth int // -1 when not a literal
}

// match reports whether the pattern matches starting exactly at offset
// in source, and if so the byte length of the match. Go's regexp has no
// native sticky-match mode, so anchoring to an arbitrary offset is done
// by slicing the source from that offset and relying on the compiled
// body's own leading ^ (added at compile time, not part of the user's
// pattern) to pin the match to the start of the slice. The user's own
// ^/$ anchors are stripped out of the compiled regex at compile time and
// checked here as plain postconditions against the real source, which
// avoids needing Go's multiline mode.
func (p *compiledPattern) match(source string, offset int) (length int, ok bool) {
	if p.hasBOL {
		if !(offset == 0 || source[offset-1] == '\n') {
			return 0, false
		}
	}
	loc := p.re.FindStringIndex(source[offset:])
	if loc == nil || loc[0] != 0 {
		return 0, false
	}
	length = loc[1]
	if p.hasEOL {
		end := offset + length
		if !(end == len(source) || source[end] == '\n') {
			return 0, false
		}
	}
	return length, true
}

// compilePattern compiles pat in order: reject an empty source; expand
// {name} references; detect and strip a leading ^ / trailing $; fold in
// case-insensitivity; anchor the body to the start of whatever slice it
// is later matched against.
func compilePattern(pat Pattern, defs *definitionTable, globalIgnoreCase, normalizeUnicode bool) (*compiledPattern, error) {
	if pat.source == "" {
		return nil, &ConfigError{Code: ErrEmptyPattern, Message: "pattern must not be empty"}
	}

	if pat.literal {
		return compileLiteral(pat.source, globalIgnoreCase, normalizeUnicode)
	}

	for _, f := range pat.flags {
		if f != 'i' && f != 'u' {
			return nil, &ConfigError{Code: ErrInvalidPattern, Message: "unsupported pattern flag", Name: string(f)}
		}
	}

	src := expandDefinitions(pat.source, defs)
	if normalizeUnicode {
		src = norm.NFC.String(src)
	}

	hasBOL := strings.HasPrefix(src, "^")
	if hasBOL {
		src = src[1:]
	}
	hasEOL := strings.HasSuffix(src, "$")
	if hasEOL {
		src = src[:len(src)-1]
	}

	ignoreCase := globalIgnoreCase || strings.ContainsRune(pat.flags, 'i')
	re, err := regexp.Compile(anchorBody(src, ignoreCase))
	if err != nil {
		return nil, &ConfigError{Code: ErrInvalidPattern, Message: err.Error()}
	}
	return &compiledPattern{re: re, hasBOL: hasBOL, hasEOL: hasEOL, fixedWidth: -1}, nil
}

func compileLiteral(raw string, globalIgnoreCase, normalizeUnicode bool) (*compiledPattern, error) {
	lit := raw
	if normalizeUnicode {
		lit = norm.NFC.String(lit)
	}
	re, err := regexp.Compile(anchorBody(regexp.QuoteMeta(lit), globalIgnoreCase))
	if err != nil {
		return nil, &ConfigError{Code: ErrInvalidPattern, Message: err.Error()}
	}
	return &compiledPattern{re: re, fixedWidth: len(lit)}, nil
}

func anchorBody(body string, ignoreCase bool) string {
	if ignoreCase {
		return "^(?i:" + body + ")"
	}
	return "^(?:" + body + ")"
}

// expandDefinitions replaces every {name} reference in src with the
// parenthesized source of the matching definition. A reference to an
// unknown name is left verbatim - the caller's responsibility, not an
// error here, since the definition may simply not have been intended as
// one.
func expandDefinitions(src string, defs *definitionTable) string {
	if defs == nil {
		return src
	}
	return definitionRef.ReplaceAllStringFunc(src, func(ref string) string {
		name := ref[1 : len(ref)-1]
		if body, ok := defs.lookup(name); ok {
			return "(?:" + body + ")"
		}
		return ref
	})
}
