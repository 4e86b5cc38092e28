package kvline

import "unicode/utf8"

// frame is one entry of the state stack. offset is where the state was
// entered and is used to report unterminated literals.
type frame struct {
	state  LexState
	offset int
}

type lexer struct {
	input      string
	pos        int
	operators  matcher
	separators matcher
	stack      []frame
	tokens     []Token
}

// Tokenize splits line into a lossless token stream using the operators
// and separators of cfg.
func Tokenize(line string, cfg Config) ([]Token, error) {
	lx := newLexer(line, cfg)
	if err := lx.run(); err != nil {
		return nil, err
	}
	return lx.tokens, nil
}

func newLexer(line string, cfg Config) *lexer {
	return &lexer{
		input:      line,
		operators:  newMatcher(cfg.Operators),
		separators: newMatcher(cfg.Separators),
		stack:      []frame{{state: StateKey}},
	}
}

func (lx *lexer) run() error {
	for lx.pos < len(lx.input) {
		lx.step()
	}
	// Key, FirstValue and Value only ever live at the bottom of the stack.
	if len(lx.stack) > 1 {
		open := lx.stack[len(lx.stack)-1]
		return &SyntaxError{Offset: open.offset, State: open.state}
	}
	return nil
}

func (lx *lexer) step() {
	switch lx.top() {
	case StateKey:
		switch {
		case lx.escape():
		case lx.delimiter(lx.operators, TokenOperator):
			lx.replace(StateFirstValue)
		case lx.open('"', TokenStartQuote, StateInQuote):
		case lx.open('\'', TokenStartSingleQuote, StateInSingleQuote):
		case lx.delimiter(lx.separators, TokenSeparator):
		default:
			lx.text(TokenKeyText)
		}

	case StateEscape:
		lx.text(TokenEscapeText)
		lx.pop()

	case StateFirstValue:
		if lx.peek() == '\\' {
			lx.replace(StateValue)
			lx.escape()
			return
		}
		switch {
		case lx.delimiter(lx.separators, TokenSeparator):
			lx.replace(StateKey)
		case lx.open('{', TokenStartObject, StateInObject):
		case lx.open('[', TokenStartArray, StateInArray):
		case lx.open('"', TokenStartQuote, StateInQuote):
		case lx.open('\'', TokenStartSingleQuote, StateInSingleQuote):
		default:
			lx.text(TokenValueText)
			lx.replace(StateValue)
		}

	case StateValue:
		switch {
		case lx.escape():
		case lx.delimiter(lx.separators, TokenSeparator):
			lx.replace(StateKey)
		default:
			lx.text(TokenValueText)
		}

	case StateInObject:
		switch {
		case lx.escape():
		case lx.open('{', TokenStartObject, StateInObject):
		case lx.close('}', TokenEndObject):
		default:
			lx.text(TokenObjectText)
		}

	case StateInArray:
		switch {
		case lx.escape():
		case lx.close(']', TokenEndArray):
		default:
			lx.text(TokenArrayText)
		}

	case StateInQuote:
		switch {
		case lx.escape():
		case lx.close('"', TokenEndQuote):
		default:
			lx.text(TokenQuotedText)
		}

	case StateInSingleQuote:
		switch {
		case lx.escape():
		case lx.close('\'', TokenEndSingleQuote):
		default:
			lx.text(TokenQuotedText)
		}
	}
}

func (lx *lexer) top() LexState {
	return lx.stack[len(lx.stack)-1].state
}

func (lx *lexer) push(s LexState, offset int) {
	lx.stack = append(lx.stack, frame{state: s, offset: offset})
}

func (lx *lexer) pop() {
	lx.stack = lx.stack[:len(lx.stack)-1]
}

// replace swaps the state on top of the stack without changing the depth.
func (lx *lexer) replace(s LexState) {
	lx.stack[len(lx.stack)-1].state = s
}

func (lx *lexer) peek() byte {
	return lx.input[lx.pos]
}

// emit appends the next n bytes of input as a token of the given kind.
func (lx *lexer) emit(kind TokenKind, n int) {
	end := lx.pos + n
	if last := len(lx.tokens) - 1; kind.isRun() && last >= 0 && lx.tokens[last].Kind == kind {
		// Runs are contiguous, so the token grows by reslicing the input.
		lx.tokens[last].Text = lx.input[lx.tokens[last].Offset:end]
	} else {
		lx.tokens = append(lx.tokens, Token{Kind: kind, Text: lx.input[lx.pos:end], Offset: lx.pos})
	}
	lx.pos += n
}

// text consumes a single rune as plain text.
func (lx *lexer) text(kind TokenKind) {
	_, size := utf8.DecodeRuneInString(lx.input[lx.pos:])
	lx.emit(kind, size)
}

func (lx *lexer) escape() bool {
	if lx.peek() != '\\' {
		return false
	}
	lx.push(StateEscape, lx.pos)
	lx.emit(TokenEscape, 1)
	return true
}

func (lx *lexer) delimiter(m matcher, kind TokenKind) bool {
	n := m.match(lx.input[lx.pos:])
	if n == 0 {
		return false
	}
	lx.emit(kind, n)
	return true
}

func (lx *lexer) open(c byte, kind TokenKind, s LexState) bool {
	if lx.peek() != c {
		return false
	}
	lx.push(s, lx.pos)
	lx.emit(kind, 1)
	return true
}

func (lx *lexer) close(c byte, kind TokenKind) bool {
	if lx.peek() != c {
		return false
	}
	lx.emit(kind, 1)
	lx.pop()
	return true
}
