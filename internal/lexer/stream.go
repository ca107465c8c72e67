package lexer

// TokenStream is a cursor over a lexed token sequence. Reads past the
// end are clamped to the terminal ENDMARKER token, never out of bounds.
type TokenStream struct {
	tokens []Token
	idx    int
}

// NewStream creates a stream positioned at the first token
func NewStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Peek returns the token at the given lookahead distance without
// consuming it. Lookahead 0 is the current token.
func (ts *TokenStream) Peek(lookahead int) Token {
	if len(ts.tokens) == 0 {
		return Token{Type: ENDMARKER}
	}
	i := ts.idx + lookahead
	if i >= len(ts.tokens) {
		return ts.tokens[len(ts.tokens)-1]
	}
	return ts.tokens[i]
}

// Next consumes and returns the current token, pinned at the end
func (ts *TokenStream) Next() Token {
	if len(ts.tokens) == 0 {
		return Token{Type: ENDMARKER}
	}
	if ts.idx >= len(ts.tokens) {
		return ts.tokens[len(ts.tokens)-1]
	}
	tok := ts.tokens[ts.idx]
	ts.idx++
	return tok
}

// EOF reports whether the cursor sits at the terminal ENDMARKER
func (ts *TokenStream) EOF() bool {
	if len(ts.tokens) == 0 {
		return true
	}
	return ts.tokens[len(ts.tokens)-1].Type == ENDMARKER && ts.idx >= len(ts.tokens)-1
}

// Rewind moves the cursor back by count tokens, clamped at the start
func (ts *TokenStream) Rewind(count int) {
	if count > ts.idx {
		ts.idx = 0
	} else {
		ts.idx -= count
	}
}
