package query

import (
	"fmt"
	"regexp"
	"strings"

	qerrors "github.com/fsq/fsq/fsq/errors"
)

// Parse parses a query string into a Query. The result is purely
// syntactic: field names and aliases are kept as written and are
// canonicalized by the semantic validation pass.
func Parse(input string) (*Query, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	return p.parseQuery()
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) parseQuery() (*Query, error) {
	q := &Query{}

	if err := p.parseExport(q); err != nil {
		return nil, err
	}

	if p.matchWord("r") || p.matchWord("recursive") {
		q.Recursive = true
		p.advance()
	}

	if err := p.parseOperation(q); err != nil {
		return nil, err
	}

	if err := p.parseProjections(q); err != nil {
		return nil, err
	}

	if err := p.parsePath(q); err != nil {
		return nil, err
	}

	if p.matchWord("where") {
		p.advance()
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		q.Condition = cond
	}

	if !p.match(TokEOF) {
		return nil, p.syntaxErr("end of query")
	}

	if q.Export != nil && q.Operation == OpDelete {
		return nil, qerrors.Semantic("cannot export records with a delete operation")
	}

	return q, nil
}

// parseExport captures an optional EXPORT FILE[target] / SQL[target]
// prefix. The target is recorded opaquely and never interpreted here.
func (p *parser) parseExport(q *Query) error {
	if !p.matchWord("export") {
		return nil
	}
	p.advance()

	var kind ExportKind
	switch {
	case p.matchWord("file"):
		kind = ExportFile
	case p.matchWord("sql"):
		kind = ExportSQL
	default:
		return p.syntaxErr("FILE or SQL after EXPORT")
	}
	p.advance()

	if !p.match(TokLBracket) {
		return p.syntaxErr("'[' after export kind")
	}
	p.advance()

	if !p.match(TokWord) && !p.match(TokString) {
		return p.syntaxErr("export target")
	}
	q.Export = &ExportSpec{Kind: kind, Target: p.current().Text}
	p.advance()

	if !p.match(TokRBracket) {
		return p.syntaxErr("']' after export target")
	}
	p.advance()
	return nil
}

func (p *parser) parseOperation(q *Query) error {
	switch {
	case p.matchWord("select"), p.matchWord("search"):
		q.Operation = OpSearch
	case p.matchWord("delete"):
		q.Operation = OpDelete
	default:
		return p.syntaxErr("SELECT, SEARCH or DELETE")
	}
	p.advance()

	if !p.match(TokLBracket) {
		return nil
	}
	return p.parseParams(q)
}

// parseParams parses the bracketed KEY VALUE parameter list attached
// to the operation keyword: TYPE FILE|DIR|DATA and MODE TEXT|BYTES.
func (p *parser) parseParams(q *Query) error {
	p.advance() // consume '['

	modeSeen := false
	for {
		if !p.match(TokWord) {
			return p.syntaxErr("parameter name")
		}
		key := strings.ToLower(p.current().Text)
		p.advance()

		if !p.match(TokWord) {
			return p.syntaxErr(fmt.Sprintf("value for parameter %q", key))
		}
		val := strings.ToLower(p.current().Text)
		p.advance()

		switch key {
		case "type":
			switch val {
			case "file":
				q.Target = KindFile
			case "dir":
				q.Target = KindDir
			case "data":
				q.Target = KindData
			default:
				return qerrors.Semantic(fmt.Sprintf("invalid value %q for the TYPE parameter", val))
			}
		case "mode":
			switch val {
			case "text":
				q.Mode = ModeText
			case "bytes":
				q.Mode = ModeBytes
			default:
				return qerrors.Semantic(fmt.Sprintf("invalid value %q for the MODE parameter", val))
			}
			modeSeen = true
		default:
			return qerrors.Semantic(fmt.Sprintf("unknown operation parameter %q", key))
		}

		if p.match(TokComma) {
			p.advance()
			continue
		}
		break
	}

	if !p.match(TokRBracket) {
		return p.syntaxErr("']' after operation parameters")
	}
	p.advance()

	if modeSeen && q.Target != KindData {
		return qerrors.Semantic("the MODE parameter is only valid for TYPE DATA queries")
	}
	if q.Operation == OpDelete && q.Target == KindData {
		return qerrors.Semantic("TYPE DATA is not valid for a delete operation")
	}
	return nil
}

// parseProjections parses '*' or a comma-separated field list. A
// delete query may omit the list entirely; if present it is parsed
// and discarded, since deletion produces no output columns.
func (p *parser) parseProjections(q *Query) error {
	if q.Operation == OpDelete && p.matchWord("from") {
		q.Star = true
		return nil
	}

	if p.match(TokStar) {
		q.Star = true
		p.advance()
		return nil
	}

	for {
		if !p.match(TokWord) {
			return p.syntaxErr("projection field")
		}
		proj := Projection{Field: p.current().Text}
		p.advance()

		if p.match(TokLBracket) {
			p.advance()
			if !p.match(TokWord) {
				return p.syntaxErr("unit inside '[ ]'")
			}
			proj.Unit = p.current().Text
			p.advance()
			if !p.match(TokRBracket) {
				return p.syntaxErr("']' after unit")
			}
			p.advance()
		}

		q.Projections = append(q.Projections, proj)

		if p.match(TokComma) {
			p.advance()
			continue
		}
		break
	}

	if q.Operation == OpDelete {
		// Accepted but unused.
		q.Projections = nil
		q.Star = true
	}
	return nil
}

func (p *parser) parsePath(q *Query) error {
	if !p.matchWord("from") {
		return p.syntaxErr("FROM")
	}
	p.advance()

	if p.matchWord("relative") {
		q.PathMode = PathRelative
		p.advance()
	} else if p.matchWord("absolute") {
		q.PathMode = PathAbsolute
		p.advance()
	}

	switch p.current().Kind {
	case TokWord, TokString, TokInt, TokFloat:
		q.Root = p.current().Text
		p.advance()
	default:
		return p.syntaxErr("path after FROM")
	}
	return nil
}

// parseCondition parses a chain of comparisons and parenthesized
// groups joined by AND/OR. Both connectives share one precedence
// level and associate left to right; parentheses are the only
// grouping mechanism.
func (p *parser) parseCondition() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.match(TokAnd) || p.match(TokOr) {
		op := OpAnd
		if p.match(TokOr) {
			op = OpOr
		}
		p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = Logical{Op: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseTerm() (Expr, error) {
	if p.match(TokLParen) {
		p.advance()
		expr, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if !p.match(TokRParen) {
			return nil, p.syntaxErr("')'")
		}
		p.advance()
		return expr, nil
	}

	return p.parseComparison()
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	var op CmpOp
	switch p.current().Kind {
	case TokEq:
		op = CmpEq
	case TokNe:
		op = CmpNe
	case TokLt:
		op = CmpLt
	case TokLe:
		op = CmpLe
	case TokGt:
		op = CmpGt
	case TokGe:
		op = CmpGe
	case TokIn:
		op = CmpIn
	case TokBetween:
		op = CmpBetween
	case TokLike:
		op = CmpLike
	default:
		return nil, p.syntaxErr("comparison operator")
	}
	p.advance()

	var right Operand
	switch op {
	case CmpIn, CmpBetween:
		right, err = p.parseArray(op)
	case CmpLike:
		right, err = p.parsePattern()
	default:
		right, err = p.parseOperand()
	}
	if err != nil {
		return nil, err
	}

	return Comparison{Op: op, Left: left, Right: right}, nil
}

// parseOperand parses a scalar operand: a literal or a field
// reference. Quoted strings matching the date layouts become date
// literals, mirroring how the engine types timestamp fields.
func (p *parser) parseOperand() (Operand, error) {
	tok := p.current()
	switch tok.Kind {
	case TokInt:
		p.advance()
		return IntLit{Value: tok.Int}, nil
	case TokFloat:
		p.advance()
		return FloatLit{Value: tok.Float}, nil
	case TokString:
		p.advance()
		if t, ok := ParseDate(tok.Text); ok {
			return DateLit{Value: t, HasTime: strings.Contains(tok.Text, ":")}, nil
		}
		return StringLit{Value: tok.Text}, nil
	case TokWord:
		p.advance()
		if strings.EqualFold(tok.Text, "none") {
			return NullLit{}, nil
		}
		ref := FieldRef{Name: strings.ToLower(tok.Text)}
		if p.match(TokLBracket) {
			p.advance()
			if !p.match(TokWord) {
				return nil, p.syntaxErr("unit inside '[ ]'")
			}
			ref.Unit = p.current().Text
			p.advance()
			if !p.match(TokRBracket) {
				return nil, p.syntaxErr("']' after unit")
			}
			p.advance()
		}
		return ref, nil
	default:
		return nil, p.syntaxErr("operand")
	}
}

// parseArray parses the parenthesized operand list required on the
// right side of IN and BETWEEN.
func (p *parser) parseArray(op CmpOp) (Operand, error) {
	if !p.match(TokLParen) {
		return nil, p.syntaxErr(fmt.Sprintf("'(' after %s", op))
	}
	p.advance()

	var elems []Operand
	for {
		elem, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)

		if p.match(TokComma) {
			p.advance()
			continue
		}
		break
	}

	if !p.match(TokRParen) {
		return nil, p.syntaxErr("')' after array elements")
	}
	p.advance()

	if op == CmpBetween && len(elems) != 2 {
		return nil, qerrors.Semantic("BETWEEN requires exactly two elements")
	}

	return ArrayLit{Elems: elems}, nil
}

// parsePattern parses the LIKE right operand and compiles it.
func (p *parser) parsePattern() (Operand, error) {
	if !p.match(TokString) {
		return nil, p.syntaxErr("quoted pattern after LIKE")
	}
	pattern := p.current().Text
	p.advance()

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.ErrSemantic, fmt.Sprintf("invalid regex pattern %q", pattern), err)
	}
	return RegexLit{Pattern: pattern, Re: re}, nil
}

func (p *parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Kind: TokEOF}
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *parser) match(kind TokenKind) bool {
	return p.current().Kind == kind
}

func (p *parser) matchWord(word string) bool {
	return p.current().Kind == TokWord && strings.EqualFold(p.current().Text, word)
}

func (p *parser) syntaxErr(expected string) error {
	tok := p.current()
	found := tok.Kind.String()
	if tok.Text != "" {
		found = fmt.Sprintf("%s %q", found, tok.Text)
	}
	return qerrors.Syntax(tok.Pos, fmt.Sprintf("expected %s, found %s", expected, found))
}
