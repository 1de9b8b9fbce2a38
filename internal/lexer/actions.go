package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Discard is the default action: returns "nothing", telling the driver
// to keep scanning without producing a token. An action with no
// registered behavior is equivalent to returning Discard().
func (s *Scanner) Discard() (Token, error) { return nil, nil }

// Echo writes the current token text to the echo sink. It is the
// explicit counterpart to the driver's implicit default-echo fallback
// on no-match.
func (s *Scanner) Echo() {
	if s.echoSink != nil {
		s.echoSink(s.text)
	}
}

// Reject rewinds the cursor to the start of the current token and
// records the just-selected rule as rejected for this cursor position,
// so the next scan pass re-runs the Match Selector excluding it. The
// rejected set is cleared automatically the next time the cursor
// advances without a new reject.
func (s *Scanner) Reject() {
	s.index -= len(s.text)
	s.rejected[s.lastRuleIndex] = struct{}{}
}

// More tells the driver to keep the current token text instead of
// clearing it before the next match is appended, so a token can be
// assembled across more than one rule firing.
func (s *Scanner) More() { s.readMore = true }

// Less truncates the current token text to its first n bytes and
// rewinds the cursor by the same amount, putting the remainder back in
// front of the cursor for the next scan pass. A no-op if n is not
// strictly less than the current text length.
func (s *Scanner) Less(n int) {
	if n < 0 || n >= len(s.text) {
		return
	}
	s.index -= len(s.text) - n
	s.text = s.text[:n]
}

// Unput splices str into the source buffer at the current cursor
// position, so it is the next text read. The cursor itself is
// unchanged; str is simply read before whatever followed the cursor
// before the call.
func (s *Scanner) Unput(str string) {
	s.source = s.source[:s.index] + str + s.source[s.index:]
}

// Input reads up to n runes (default 1) starting at the current cursor,
// advances the cursor past them, and returns what it read: fewer than n
// runes if the source is exhausted first, "" if already at EOF. Input
// does not touch the token text buffer; it is a separate, manual
// lookahead mechanism.
func (s *Scanner) Input(n ...int) string {
	count := 1
	if len(n) > 0 {
		count = n[0]
	}
	end := s.index
	for i := 0; i < count && end < len(s.source); i++ {
		_, size := utf8.DecodeRuneInString(s.source[end:])
		end += size
	}
	result := s.source[s.index:end]
	s.index = end
	return result
}

// Begin switches the current start condition to state, or INITIAL if no
// state is given. Returns a *ConfigError with code UnknownState if state
// was never registered.
func (s *Scanner) Begin(state ...string) error {
	name := StateInitial
	if len(state) > 0 {
		name = state[0]
	}
	if !s.states.exists(name) {
		return &ConfigError{Code: ErrUnknownState, Message: "unknown state", Name: name}
	}
	s.state = name
	return nil
}

// SwitchState is an alias for Begin.
func (s *Scanner) SwitchState(state ...string) error { return s.Begin(state...) }

// PushState saves the current start condition on the state stack, then
// switches to state.
func (s *Scanner) PushState(state string) error {
	s.stateStack = append(s.stateStack, s.state)
	if err := s.Begin(state); err != nil {
		s.stateStack = s.stateStack[:len(s.stateStack)-1]
		return err
	}
	return nil
}

// PopState switches back to the start condition on top of the state
// stack, and removes it. Returns *StackUnderflowError if the stack is
// empty. This is unlike TopState, which reports emptiness rather than
// erroring: a pop that has nothing to pop to is a caller mistake, while
// asking what's on top of an empty stack is routine.
func (s *Scanner) PopState() error {
	if len(s.stateStack) == 0 {
		return &StackUnderflowError{}
	}
	top := s.stateStack[len(s.stateStack)-1]
	s.stateStack = s.stateStack[:len(s.stateStack)-1]
	return s.Begin(top)
}

// TopState reports the start condition on top of the state stack
// without popping it. ok is false if the stack is empty.
func (s *Scanner) TopState() (name string, ok bool) {
	if len(s.stateStack) == 0 {
		return "", false
	}
	return s.stateStack[len(s.stateStack)-1], true
}

// Terminate resets per-token runtime state (text, more()-carry-over, the
// rejected set) and returns EOF. It does not reset the cursor, source,
// current state, or state stack; those persist until Restart, SetSource,
// or Clear.
func (s *Scanner) Terminate() Token {
	s.text = ""
	s.readMore = false
	s.rejected = map[ruleIndex]struct{}{}
	s.terminated = true
	return EOF
}

// Restart optionally installs a new source buffer and resets the cursor
// to 0, but unlike SetSource, leaves the current start condition and
// state stack untouched, and leaves the terminated state cleared so
// scanning can resume.
func (s *Scanner) Restart(source ...string) {
	if len(source) > 0 {
		src := source[0]
		if s.normalizeUnicode {
			src = norm.NFC.String(src)
		}
		s.source = src
	}
	s.index = 0
	s.terminated = false
}
