package query

// Token represents a lexical token. Pos is the byte offset of the
// token's first character in the query text.
type Token struct {
	Kind  TokenKind
	Text  string
	Pos   int
	Int   int64
	Float float64
}

// TokenKind is the type of token
type TokenKind int

const (
	TokWord TokenKind = iota // bare identifier, keyword, or unquoted path
	TokString
	TokInt
	TokFloat
	TokStar
	TokComma
	TokLParen
	TokRParen
	TokLBracket
	TokRBracket
	TokEq
	TokNe
	TokLt
	TokLe
	TokGt
	TokGe
	TokAnd
	TokOr
	TokIn
	TokBetween
	TokLike
	TokEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokWord:
		return "Word"
	case TokString:
		return "String"
	case TokInt:
		return "Int"
	case TokFloat:
		return "Float"
	case TokStar:
		return "Star"
	case TokComma:
		return "Comma"
	case TokLParen:
		return "LParen"
	case TokRParen:
		return "RParen"
	case TokLBracket:
		return "LBracket"
	case TokRBracket:
		return "RBracket"
	case TokEq:
		return "Eq"
	case TokNe:
		return "Ne"
	case TokLt:
		return "Lt"
	case TokLe:
		return "Le"
	case TokGt:
		return "Gt"
	case TokGe:
		return "Ge"
	case TokAnd:
		return "And"
	case TokOr:
		return "Or"
	case TokIn:
		return "In"
	case TokBetween:
		return "Between"
	case TokLike:
		return "Like"
	case TokEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}
