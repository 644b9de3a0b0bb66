package sql

import (
	"errors"
	"fmt"
	"strings"
)

var ErrSyntax = errors.New("syntax error")

// Token is one whitespace-delimited word of a command line. Value has the
// grouping quotes removed, Raw is the text as typed. Start and End are byte
// offsets into the line.
type Token struct {
	Value string
	Raw   string
	Start int
	End   int
}

func (token Token) String() string {
	return "Token(" + token.Value + ")"
}

// Keyword reports whether the token is the given keyword, ignoring case.
func (token Token) Keyword(keyword string) bool {
	return strings.EqualFold(token.Value, keyword)
}

type Lexer struct {
	line         string
	position     int
	readPosition int
	ch           byte
}

func NewLexer(line string) *Lexer {
	lexer := &Lexer{line: line}
	lexer.readChar()
	return lexer
}

func (lexer *Lexer) readChar() {
	if lexer.readPosition >= len(lexer.line) {
		lexer.ch = 0
	} else {
		lexer.ch = lexer.line[lexer.readPosition]
	}
	lexer.position = lexer.readPosition
	lexer.readPosition++
}

func (lexer *Lexer) atEnd() bool {
	return lexer.position >= len(lexer.line)
}

// NextToken returns the next token; ok is false once the line is exhausted.
// Quoted sections may contain whitespace and join adjacent text, so
// name="Ann Lee" is a single token with Value name=Ann Lee.
func (lexer *Lexer) NextToken() (token Token, ok bool, err error) {
	lexer.skipWhitespace()
	if lexer.atEnd() {
		return Token{}, false, nil
	}

	start := lexer.position
	var value strings.Builder

	for !lexer.atEnd() && !isWhitespace(lexer.ch) {
		if lexer.ch == '"' || lexer.ch == '\'' {
			quoted, err := lexer.readQuoted()
			if err != nil {
				return Token{}, false, err
			}
			value.WriteString(quoted)
			continue
		}
		value.WriteByte(lexer.ch)
		lexer.readChar()
	}

	return Token{
		Value: value.String(),
		Raw:   lexer.line[start:lexer.position],
		Start: start,
		End:   lexer.position,
	}, true, nil
}

func (lexer *Lexer) readQuoted() (string, error) {
	quote := lexer.ch
	opened := lexer.position
	lexer.readChar() // skip opening quote
	position := lexer.position
	for !lexer.atEnd() && lexer.ch != quote {
		lexer.readChar()
	}
	if lexer.atEnd() {
		return "", fmt.Errorf("%w: unterminated quote at position %d", ErrSyntax, opened)
	}
	str := lexer.line[position:lexer.position]
	lexer.readChar() // skip closing quote
	return str, nil
}

func (lexer *Lexer) skipWhitespace() {
	for !lexer.atEnd() && isWhitespace(lexer.ch) {
		lexer.readChar()
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// Tokenize splits a whole command line into tokens.
func Tokenize(line string) ([]Token, error) {
	lexer := NewLexer(line)

	var tokens []Token

	for {
		token, ok, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, token)
	}
}

// SplitValues splits an insert value list on commas outside quotes. An
// optional surrounding pair of parentheses is removed first; quotes are kept.
func SplitValues(raw string) []string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		raw = strings.TrimSpace(raw[1 : len(raw)-1])
	}
	if raw == "" {
		return nil
	}

	var values []string
	var current strings.Builder
	var quote byte

	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ',':
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteByte(ch)
	}

	return append(values, strings.TrimSpace(current.String()))
}
