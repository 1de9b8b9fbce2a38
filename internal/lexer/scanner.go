package lexer

import "golang.org/x/text/unicode/norm"

// EchoSink receives the text a rule's echo() call (or the driver's
// default no-match fallback) produces. A nil sink discards.
type EchoSink func(text string)

// TraceSink receives one record per rule selection: the state, the
// selected rule's original pattern source, and the text it matched. A
// collaborator (internal/tracestore, the harness) can use this to record
// or compare scan history. A nil sink discards. Only called when debug
// mode is enabled.
type TraceSink func(state, pattern, matchedText string)

// Scanner is the runtime-configurable lexical scanner core: pattern
// compilation, a state registry, a rule table, a match selector, a scan
// driver, and the action API a rule's behavior runs through.
//
// A Scanner is single-threaded and operates on one in-memory source
// buffer at a time; concurrent use of one Scanner from multiple
// goroutines is unsupported.
type Scanner struct {
	// configuration, set by AddDefinition/AddState/AddRule and the
	// Set*/With* options.
	definitions      *definitionTable
	states           *stateRegistry
	table            map[string][]*compiledRule
	nextIndex        int
	ignoreCase       bool
	normalizeUnicode bool
	debug            bool
	echoSink         EchoSink
	traceSink        TraceSink
	sessionIDGen     SessionIDGenerator

	// runtime state, mutated by the Scan Driver and the Action API.
	source        string
	index         int
	text          string
	state         string
	stateStack    []string
	readMore      bool
	rejected      map[ruleIndex]struct{}
	lastRuleIndex ruleIndex
	terminated    bool

	sessionID string
}

// Option configures a Scanner at construction.
type Option func(*Scanner)

// WithIgnoreCase sets the scanner-wide case-insensitivity default.
// Applies only to rules compiled after the option takes effect.
func WithIgnoreCase(b bool) Option { return func(s *Scanner) { s.ignoreCase = b } }

// WithDebugEnabled turns on trace-sink emission during scanning.
func WithDebugEnabled(b bool) Option { return func(s *Scanner) { s.debug = b } }

// WithEchoSink installs the ECHO collaborator. The default is a no-op -
// the core never assumes it owns standard output (see doc.go).
func WithEchoSink(fn EchoSink) Option { return func(s *Scanner) { s.echoSink = fn } }

// WithTraceSink installs the trace collaborator. The default discards.
func WithTraceSink(fn TraceSink) Option { return func(s *Scanner) { s.traceSink = fn } }

// WithNormalizeUnicode turns on NFC normalization of source text and
// pattern text (literal and regex) before compiling/matching, so
// combining-mark variants of the same text compare equal. It is
// independent of the "u" pattern flag.
func WithNormalizeUnicode(b bool) Option { return func(s *Scanner) { s.normalizeUnicode = b } }

// WithSessionIDGenerator overrides the default UUIDv7Generator, mainly
// for deterministic tests.
func WithSessionIDGenerator(g SessionIDGenerator) Option {
	return func(s *Scanner) { s.sessionIDGen = g }
}

// WithSource installs the initial source text.
func WithSource(src string) Option { return func(s *Scanner) { s.source = src } }

// New constructs a Scanner with INITIAL already registered as the sole
// start condition.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		definitions:  newDefinitionTable(),
		states:       newStateRegistry(),
		table:        map[string][]*compiledRule{},
		state:        StateInitial,
		rejected:     map[ruleIndex]struct{}{},
		sessionIDGen: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessionID = s.sessionIDGen.Generate()
	return s
}

// SetIgnoreCase changes the scanner-wide case-insensitivity default.
// Only affects rules added after the call.
func (s *Scanner) SetIgnoreCase(b bool) { s.ignoreCase = b }

// SetDebugEnabled turns trace-sink emission on or off.
func (s *Scanner) SetDebugEnabled(b bool) { s.debug = b }

// SetEchoSink replaces the ECHO collaborator.
func (s *Scanner) SetEchoSink(fn EchoSink) { s.echoSink = fn }

// SetTraceSink replaces the trace collaborator.
func (s *Scanner) SetTraceSink(fn TraceSink) { s.traceSink = fn }

// SetNormalizeUnicode turns NFC normalization on or off. Only affects
// rules added, and source installed, after the call.
func (s *Scanner) SetNormalizeUnicode(b bool) { s.normalizeUnicode = b }

// AddDefinition registers a named sub-pattern for later {name}
// expansion in rule pattern sources.
func (s *Scanner) AddDefinition(name, pattern string) error {
	return s.definitions.add(name, pattern)
}

// AddState registers a start condition. exclusive defaults to false
// (inclusive) when omitted. Registration is idempotent; "*" is rejected
// since it is the reserved any-state pseudo-name, not a real state, and
// any other name must satisfy the same grammar as a definition name.
func (s *Scanner) AddState(name string, exclusive ...bool) error {
	if name == StateAny {
		return &ConfigError{Code: ErrInvalidName, Message: "\"*\" is reserved and cannot be registered as a state", Name: name}
	}
	if !identifierGrammar.MatchString(name) {
		return &ConfigError{Code: ErrInvalidName, Message: "state name must match [A-Za-z_][A-Za-z0-9_-]*", Name: name}
	}
	excl := false
	if len(exclusive) > 0 {
		excl = exclusive[0]
	}
	s.states.add(name, excl)
	return nil
}

// Text returns the current token text accumulated for this match.
func (s *Scanner) Text() string { return s.text }

// SetText lets an action rewrite the token text directly.
func (s *Scanner) SetText(t string) { s.text = t }

// State returns the scanner's current start condition.
func (s *Scanner) State() string { return s.state }

// Index returns the scanner's current cursor position in Source().
func (s *Scanner) Index() int { return s.index }

// Source returns the scanner's current source buffer.
func (s *Scanner) Source() string { return s.source }

// SessionID returns the identifier generated for this scanner at
// construction, used by ambient collaborators for log/trace
// correlation. It has no effect on matching, selection, or action
// semantics.
func (s *Scanner) SessionID() string { return s.sessionID }

// SetSource installs src as the scanner's source buffer and performs a
// full runtime reset (cursor, text, state, state stack, rejected set,
// terminated flag).
func (s *Scanner) SetSource(src string) {
	s.Reset()
	if s.normalizeUnicode {
		src = norm.NFC.String(src)
	}
	s.source = src
}

// Reset clears all runtime state (cursor, text, current state back to
// INITIAL, state stack, rejected set, and the terminated flag) without
// touching configuration (definitions, states, rules) or the source
// buffer itself.
func (s *Scanner) Reset() {
	s.index = 0
	s.text = ""
	s.state = StateInitial
	s.stateStack = nil
	s.readMore = false
	s.rejected = map[ruleIndex]struct{}{}
	s.terminated = false
}

// Clear resets all configuration (definitions, states, rules, and the
// ignore-case, normalize-unicode and debug settings) back to construction
// defaults, then performs the same runtime reset as Reset, and empties
// the source buffer. The echo sink, trace sink and session ID are kept.
func (s *Scanner) Clear() {
	s.definitions = newDefinitionTable()
	s.states = newStateRegistry()
	s.table = map[string][]*compiledRule{}
	s.nextIndex = 0
	s.ignoreCase = false
	s.normalizeUnicode = false
	s.debug = false
	s.Reset()
	s.source = ""
}
