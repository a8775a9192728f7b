package lexer

import "testing"

func TestLexer_Keywords(t *testing.T) {
	source := "class extends abstract static var new this instanceof fun if else while for break return void int bool string"
	l := New(source, "test.decaf")

	expected := []TokenType{
		TokenClass, TokenExtends, TokenAbstract, TokenStatic, TokenVar, TokenNew,
		TokenThis, TokenInstanceof, TokenFun, TokenIf, TokenElse, TokenWhile,
		TokenFor, TokenBreak, TokenReturn, TokenVoid, TokenIntType, TokenBoolType,
		TokenStringType, TokenEOF,
	}
	for i, want := range expected {
		tok := l.Next()
		if tok.Type != want {
			t.Errorf("token %d: got %v, want %v", i, tok.Type, want)
		}
	}
}

func TestLexer_Identifiers(t *testing.T) {
	source := "foo Bar _temp myVar123 Print"
	l := New(source, "test.decaf")

	// Print is a keyword, not an ordinary identifier.
	expected := []struct {
		typ    TokenType
		lexeme string
	}{
		{TokenIdentifier, "foo"},
		{TokenIdentifier, "Bar"},
		{TokenIdentifier, "_temp"},
		{TokenIdentifier, "myVar123"},
		{TokenPrint, "Print"},
	}
	for i, want := range expected {
		tok := l.Next()
		if tok.Type != want.typ || tok.Lexeme != want.lexeme {
			t.Errorf("token %d: got %v(%q), want %v(%q)", i, tok.Type, tok.Lexeme, want.typ, want.lexeme)
		}
	}
}

func TestLexer_ReadIntegerAndReadLineAreOrdinaryIdentifiers(t *testing.T) {
	l := New("ReadInteger ReadLine", "test.decaf")
	for _, name := range []string{"ReadInteger", "ReadLine"} {
		tok := l.Next()
		if tok.Type != TokenIdentifier || tok.Lexeme != name {
			t.Errorf("got %v(%q), want IDENTIFIER(%q); the lexer has no dedicated token for it", tok.Type, tok.Lexeme, name)
		}
	}
}

func TestLexer_IntLiterals(t *testing.T) {
	l := New("0 42 1000000", "test.decaf")
	expected := []struct {
		lexeme string
		value  int64
	}{
		{"0", 0},
		{"42", 42},
		{"1000000", 1000000},
	}
	for i, want := range expected {
		tok := l.Next()
		if tok.Type != TokenIntLit {
			t.Fatalf("token %d: got %v, want TokenIntLit", i, tok.Type)
		}
		if tok.Lexeme != want.lexeme {
			t.Errorf("token %d: lexeme = %q, want %q", i, tok.Lexeme, want.lexeme)
		}
		if tok.IntValue != want.value {
			t.Errorf("token %d: IntValue = %d, want %d", i, tok.IntValue, want.value)
		}
	}
}

func TestLexer_StringLiteral(t *testing.T) {
	l := New(`"hello, world"`, "test.decaf")
	tok := l.Next()
	if tok.Type != TokenStringLit {
		t.Fatalf("got %v, want TokenStringLit", tok.Type)
	}
	if tok.Lexeme != "hello, world" {
		t.Errorf("Lexeme = %q, want the string content with quotes stripped", tok.Lexeme)
	}
}

func TestLexer_UnterminatedStringIsAnError(t *testing.T) {
	l := New(`"unterminated`, "test.decaf")
	tok := l.Next()
	if tok.Type != TokenInvalid {
		t.Fatalf("got %v, want TokenInvalid for an unterminated string", tok.Type)
	}
	if len(l.Errors) != 1 {
		t.Fatalf("got %d lexer errors, want 1", len(l.Errors))
	}
}

func TestLexer_StringCannotSpanLines(t *testing.T) {
	l := New("\"broken\nstill going\"", "test.decaf")
	tok := l.Next()
	if tok.Type != TokenInvalid {
		t.Fatalf("got %v, want TokenInvalid for a string broken by a newline", tok.Type)
	}
}

func TestLexer_Operators(t *testing.T) {
	source := "+ - * / % = == != < <= > >= && || ! =>"
	l := New(source, "test.decaf")

	expected := []TokenType{
		TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent,
		TokenAssign, TokenEqual, TokenNotEqual, TokenLess, TokenLessEqual,
		TokenGreater, TokenGreaterEqual, TokenAnd, TokenOr, TokenNot, TokenArrow,
		TokenEOF,
	}
	for i, want := range expected {
		tok := l.Next()
		if tok.Type != want {
			t.Errorf("token %d: got %v, want %v", i, tok.Type, want)
		}
	}
}

func TestLexer_Punctuation(t *testing.T) {
	source := "( ) { } [ ] , . ;"
	l := New(source, "test.decaf")
	expected := []TokenType{
		TokenLeftParen, TokenRightParen, TokenLeftBrace, TokenRightBrace,
		TokenLeftBracket, TokenRightBracket, TokenComma, TokenDot, TokenSemicolon,
		TokenEOF,
	}
	for i, want := range expected {
		tok := l.Next()
		if tok.Type != want {
			t.Errorf("token %d: got %v, want %v", i, tok.Type, want)
		}
	}
}

func TestLexer_LineComment(t *testing.T) {
	source := "x // this whole line is a comment\ny"
	l := New(source, "test.decaf")

	first := l.Next()
	if first.Type != TokenIdentifier || first.Lexeme != "x" {
		t.Fatalf("first token = %v(%q), want IDENTIFIER(x)", first.Type, first.Lexeme)
	}
	second := l.Next()
	if second.Type != TokenIdentifier || second.Lexeme != "y" {
		t.Fatalf("second token = %v(%q), want IDENTIFIER(y), comment should be skipped entirely", second.Type, second.Lexeme)
	}
}

func TestLexer_SingleSlashIsDivision(t *testing.T) {
	l := New("a / b", "test.decaf")
	l.Next() // a
	tok := l.Next()
	if tok.Type != TokenSlash {
		t.Fatalf("got %v, want TokenSlash for a lone '/' not followed by another '/'", tok.Type)
	}
}

func TestLexer_UnexpectedCharacterIsRecordedAsAnError(t *testing.T) {
	l := New("x @ y", "test.decaf")
	l.Next() // x
	tok := l.Next()
	if tok.Type != TokenInvalid {
		t.Fatalf("got %v, want TokenInvalid for '@'", tok.Type)
	}
	if len(l.Errors) != 1 {
		t.Fatalf("got %d lexer errors, want 1", len(l.Errors))
	}
	// The lexer keeps going after an error rather than stopping the scan.
	tok = l.Next()
	if tok.Type != TokenIdentifier || tok.Lexeme != "y" {
		t.Errorf("got %v(%q), want IDENTIFIER(y) after recovering from the bad character", tok.Type, tok.Lexeme)
	}
}

func TestLexer_PositionTracking(t *testing.T) {
	source := "foo\nbar"
	l := New(source, "test.decaf")

	first := l.Next()
	if first.Position.Line != 1 || first.Position.Column != 1 {
		t.Errorf("first token position = %d:%d, want 1:1", first.Position.Line, first.Position.Column)
	}

	second := l.Next()
	if second.Position.Line != 2 || second.Position.Column != 1 {
		t.Errorf("second token position = %d:%d, want 2:1", second.Position.Line, second.Position.Column)
	}
}

func TestLexer_Tokenize_EndsInEOF(t *testing.T) {
	tokens := New("int x;", "test.decaf").Tokenize()
	if len(tokens) != 4 {
		t.Fatalf("got %d tokens, want 4 (int, x, ;, EOF)", len(tokens))
	}
	last := tokens[len(tokens)-1]
	if last.Type != TokenEOF {
		t.Errorf("last token = %v, want TokenEOF", last.Type)
	}
}
