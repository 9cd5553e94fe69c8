package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	qerrors "github.com/fsq/fsq/fsq/errors"
)

// Lexer tokenizes a query string
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a new lexer for the input string
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Lex tokenizes the entire input
func Lex(input string) ([]Token, error) {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok, err := lexer.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}

	return tokens, nil
}

// Next returns the next token
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Kind: TokEOF, Pos: l.pos}, nil
	}

	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case ',':
		l.pos++
		return Token{Kind: TokComma, Text: ",", Pos: start}, nil
	case '(':
		l.pos++
		return Token{Kind: TokLParen, Text: "(", Pos: start}, nil
	case ')':
		l.pos++
		return Token{Kind: TokRParen, Text: ")", Pos: start}, nil
	case '[':
		l.pos++
		return Token{Kind: TokLBracket, Text: "[", Pos: start}, nil
	case ']':
		l.pos++
		return Token{Kind: TokRBracket, Text: "]", Pos: start}, nil
	case '*':
		l.pos++
		return Token{Kind: TokStar, Text: "*", Pos: start}, nil
	case '=':
		l.pos++
		return Token{Kind: TokEq, Text: "=", Pos: start}, nil
	case '!':
		if l.peek(1) == '=' {
			l.pos += 2
			return Token{Kind: TokNe, Text: "!=", Pos: start}, nil
		}
		return Token{}, qerrors.Lex(start, "unexpected character '!'")
	case '>':
		if l.peek(1) == '=' {
			l.pos += 2
			return Token{Kind: TokGe, Text: ">=", Pos: start}, nil
		}
		l.pos++
		return Token{Kind: TokGt, Text: ">", Pos: start}, nil
	case '<':
		if l.peek(1) == '=' {
			l.pos += 2
			return Token{Kind: TokLe, Text: "<=", Pos: start}, nil
		}
		l.pos++
		return Token{Kind: TokLt, Text: "<", Pos: start}, nil
	case '\'', '"':
		return l.scanString()
	}

	if isWordChar(ch) {
		return l.scanWord()
	}

	return Token{}, qerrors.Lex(start, fmt.Sprintf("unexpected character %q", string(ch)))
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) peek(offset int) rune {
	pos := l.pos + offset
	if pos < len(l.input) {
		return l.input[pos]
	}
	return 0
}

// scanString captures a quoted segment verbatim, whitespace included.
// No escape processing happens inside quotes so that regex patterns
// and Windows paths survive untouched.
func (l *Lexer) scanString() (Token, error) {
	start := l.pos
	quote := l.input[l.pos]
	l.pos++

	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == quote {
			l.pos++
			return Token{Kind: TokString, Text: sb.String(), Pos: start}, nil
		}
		sb.WriteRune(ch)
		l.pos++
	}

	return Token{}, qerrors.Lex(start, "unterminated string literal")
}

// scanWord consumes a run of word characters and classifies it as a
// keyword operator, an integer, a float, or a bare word. Unquoted
// paths lex as words, which is why '/', '\', '.', '-', ':' and '~'
// count as word characters.
func (l *Lexer) scanWord() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isWordChar(l.input[l.pos]) {
		l.pos++
	}
	text := string(l.input[start:l.pos])

	switch strings.ToLower(text) {
	case "and":
		return Token{Kind: TokAnd, Text: text, Pos: start}, nil
	case "or":
		return Token{Kind: TokOr, Text: text, Pos: start}, nil
	case "in":
		return Token{Kind: TokIn, Text: text, Pos: start}, nil
	case "between":
		return Token{Kind: TokBetween, Text: text, Pos: start}, nil
	case "like":
		return Token{Kind: TokLike, Text: text, Pos: start}, nil
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Token{Kind: TokInt, Text: text, Pos: start, Int: i}, nil
	}
	if isFloatLiteral(text) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, qerrors.Lex(start, fmt.Sprintf("invalid number %q", text))
		}
		return Token{Kind: TokFloat, Text: text, Pos: start, Float: f}, nil
	}

	return Token{Kind: TokWord, Text: text, Pos: start}, nil
}

// isFloatLiteral matches -?digits.digits exactly, so that words like
// "./dir" or "1.2.3" stay words.
func isFloatLiteral(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	intPart, fracPart, ok := strings.Cut(s, ".")
	if !ok || intPart == "" || fracPart == "" {
		return false
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isWordChar(ch rune) bool {
	if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
		return true
	}
	switch ch {
	case '_', '.', '/', '\\', '-', '~', ':', '@', '+':
		return true
	}
	return false
}
