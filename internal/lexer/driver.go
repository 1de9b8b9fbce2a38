package lexer

// ScanOne runs a single pass of the scan driver: select a rule, run its
// action, and report the outcome. It returns a nil Token with a nil
// error to mean "nothing produced yet, call again"; this is what Lex
// loops on.
func (s *Scanner) ScanOne() (Token, error) {
	if s.terminated {
		return EOF, nil
	}

	wasEOF := s.index >= len(s.source)
	r, matched, found := s.selectRule()

	if found {
		s.lastRuleIndex = r.index
		if s.debug && s.traceSink != nil {
			s.traceSink(s.state, patternSourceOf(r), matched)
		}
	}

	if !s.readMore {
		s.text = ""
	}
	s.readMore = false

	if !found {
		if wasEOF {
			s.text = ""
			return s.Terminate(), nil
		}
		ch := nextChar(s.source, s.index)
		s.text += ch
		s.index += len(ch)
		s.Echo()
		s.rejected = map[ruleIndex]struct{}{}
		return nil, nil
	}

	s.text += matched
	s.index += len(matched)

	rejectedBefore := len(s.rejected)
	var tok Token
	var err error
	if r.action != nil {
		tok, err = r.action(s)
	}

	if len(s.rejected) > rejectedBefore {
		return nil, err
	}
	s.rejected = map[ruleIndex]struct{}{}

	if wasEOF {
		if s.index < len(s.source) {
			return tok, err
		}
		return s.Terminate(), err
	}
	return tok, err
}

// nextChar reads one rune's worth of bytes starting at offset, the unit
// the default no-match fallback echoes and advances by. Reading a full
// rune rather than a single byte keeps multi-byte UTF-8 sequences intact
// under the default "copy one character" behavior.
func nextChar(source string, offset int) string {
	for i := offset + 1; i <= len(source); i++ {
		if i == len(source) || utf8Boundary(source[i]) {
			return source[offset:i]
		}
	}
	return source[offset:]
}

// utf8Boundary reports whether b is not a UTF-8 continuation byte
// (10xxxxxx), i.e. it starts a new rune.
func utf8Boundary(b byte) bool { return b&0xC0 != 0x80 }

// Lex runs ScanOne until it produces a token (including EOF) or an
// error.
func (s *Scanner) Lex() (Token, error) {
	for {
		tok, err := s.ScanOne()
		if err != nil {
			return tok, err
		}
		if tok != nil {
			return tok, nil
		}
	}
}

// LexAll runs Lex until EOF or an error, collecting every non-EOF token
// produced. On error, it returns the tokens collected so far alongside
// the error.
func (s *Scanner) LexAll() ([]Token, error) {
	var toks []Token
	for {
		tok, err := s.Lex()
		if err != nil {
			return toks, err
		}
		if isEOF(tok) {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
