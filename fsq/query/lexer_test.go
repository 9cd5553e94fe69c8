package query

import (
	"testing"

	qerrors "github.com/fsq/fsq/fsq/errors"
)

func TestLexSimple(t *testing.T) {
	tokens, err := Lex("size > 1024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Tokens: Word("size"), Gt, Int(1024), EOF
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens (including EOF), got %d: %v", len(tokens), tokens)
	}
	if tokens[0].Kind != TokWord || tokens[0].Text != "size" {
		t.Errorf("expected Word(size), got %v", tokens[0])
	}
	if tokens[1].Kind != TokGt {
		t.Errorf("expected Gt, got %v", tokens[1])
	}
	if tokens[2].Kind != TokInt || tokens[2].Int != 1024 {
		t.Errorf("expected Int(1024), got %v", tokens[2])
	}
	if tokens[3].Kind != TokEOF {
		t.Errorf("expected EOF, got %v", tokens[3])
	}
}

func TestLexTwoCharOperators(t *testing.T) {
	tokens, err := Lex("a != b >= c <= d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[1].Kind != TokNe {
		t.Errorf("expected Ne, got %v", tokens[1])
	}
	if tokens[3].Kind != TokGe {
		t.Errorf("expected Ge, got %v", tokens[3])
	}
	if tokens[5].Kind != TokLe {
		t.Errorf("expected Le, got %v", tokens[5])
	}
}

func TestLexKeywordsCaseInsensitive(t *testing.T) {
	tokens, err := Lex("AND and Or BETWEEN like In")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenKind{TokAnd, TokAnd, TokOr, TokBetween, TokLike, TokIn, TokEOF}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, kind := range want {
		if tokens[i].Kind != kind {
			t.Errorf("token %d: expected %v, got %v", i, kind, tokens[i])
		}
	}
}

func TestLexString(t *testing.T) {
	tokens, err := Lex(`name = "hello world"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[2].Kind != TokString || tokens[2].Text != "hello world" {
		t.Errorf("expected String(hello world), got %v", tokens[2])
	}
}

func TestLexSingleQuotedString(t *testing.T) {
	tokens, err := Lex(`'with "inner" quotes'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != TokString || tokens[0].Text != `with "inner" quotes` {
		t.Errorf("expected inner quotes preserved, got %v", tokens[0])
	}
}

func TestLexStringNoEscapes(t *testing.T) {
	// Backslashes pass through untouched so regex patterns and
	// Windows paths survive.
	tokens, err := Lex(`"C:\temp\new"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Text != `C:\temp\new` {
		t.Errorf("expected backslashes preserved, got %q", tokens[0].Text)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex(`name = "oops`)
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
	if !qerrors.IsKind(err, qerrors.ErrLex) {
		t.Errorf("expected lex error, got %v", err)
	}
}

func TestLexFloat(t *testing.T) {
	tokens, err := Lex("3.14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != TokFloat || tokens[0].Float != 3.14 {
		t.Errorf("expected Float(3.14), got %v", tokens[0])
	}
}

func TestLexNegativeNumbers(t *testing.T) {
	tokens, err := Lex("-42 -1.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != TokInt || tokens[0].Int != -42 {
		t.Errorf("expected Int(-42), got %v", tokens[0])
	}
	if tokens[1].Kind != TokFloat || tokens[1].Float != -1.5 {
		t.Errorf("expected Float(-1.5), got %v", tokens[1])
	}
}

func TestLexUnquotedPath(t *testing.T) {
	tokens, err := Lex("./src/main-v2.go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Dots, slashes and dashes are word characters, so the whole
	// path is one word rather than a float.
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[0].Kind != TokWord || tokens[0].Text != "./src/main-v2.go" {
		t.Errorf("expected Word(./src/main-v2.go), got %v", tokens[0])
	}
}

func TestLexBracketsAndStar(t *testing.T) {
	tokens, err := Lex("select[type file] * from")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenKind{TokWord, TokLBracket, TokWord, TokWord, TokRBracket, TokStar, TokWord, TokEOF}
	for i, kind := range want {
		if tokens[i].Kind != kind {
			t.Errorf("token %d: expected %v, got %v", i, kind, tokens[i])
		}
	}
}

func TestLexPositions(t *testing.T) {
	tokens, err := Lex("ab  cd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Pos != 0 {
		t.Errorf("expected pos 0, got %d", tokens[0].Pos)
	}
	if tokens[1].Pos != 4 {
		t.Errorf("expected pos 4, got %d", tokens[1].Pos)
	}
}

func TestLexUnexpectedCharacter(t *testing.T) {
	_, err := Lex("size > 10 ; drop")
	if err == nil {
		t.Fatal("expected error for unexpected character")
	}
	if !qerrors.IsKind(err, qerrors.ErrLex) {
		t.Errorf("expected lex error, got %v", err)
	}
}

func TestLexBareExclamation(t *testing.T) {
	_, err := Lex("a ! b")
	if err == nil {
		t.Fatal("expected error for bare '!'")
	}
}
