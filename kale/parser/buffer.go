package parser

// TokenBuffer is the queue of lexed tokens the parser reads from. Tokens
// before the cursor have been consumed; Rewind moves the cursor back to an
// earlier Mark so a partially matched construct can be retried later.
type TokenBuffer struct {
	tokens []Token
	pos    int
}

// NewTokenBuffer copies tokens, dropping comments and end-of-input markers.
func NewTokenBuffer(tokens []Token) *TokenBuffer {
	b := &TokenBuffer{}
	b.Append(tokens...)
	return b
}

func (b *TokenBuffer) Append(tokens ...Token) {
	for _, tok := range tokens {
		if tok.Kind == TokenComment || tok.Kind == TokenEOF {
			continue
		}
		b.tokens = append(b.tokens, tok)
	}
}

func (b *TokenBuffer) Peek() (Token, bool) {
	if b.pos >= len(b.tokens) {
		return Token{}, false
	}
	return b.tokens[b.pos], true
}

// PeekN looks n tokens past the next one.
func (b *TokenBuffer) PeekN(n int) (Token, bool) {
	if b.pos+n >= len(b.tokens) {
		return Token{}, false
	}
	return b.tokens[b.pos+n], true
}

func (b *TokenBuffer) Next() (Token, bool) {
	tok, ok := b.Peek()
	if ok {
		b.pos++
	}
	return tok, ok
}

func (b *TokenBuffer) Mark() int {
	return b.pos
}

func (b *TokenBuffer) Rewind(mark int) {
	b.pos = mark
}

func (b *TokenBuffer) Len() int {
	return len(b.tokens) - b.pos
}

// Remaining returns a copy of the unconsumed tokens in source order, or nil
// when there are none.
func (b *TokenBuffer) Remaining() []Token {
	if b.pos >= len(b.tokens) {
		return nil
	}
	rest := make([]Token, len(b.tokens)-b.pos)
	copy(rest, b.tokens[b.pos:])
	return rest
}
