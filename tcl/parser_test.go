/*
 * TCL  lexer tests.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package tcl

import "testing"

type tokenCase struct {
	name   string
	src    string
	tokens []int
	texts  []string
}

func TestTokenizer(t *testing.T) {
	cases := []tokenCase{
		{
			name:   "simple_command",
			src:    "set x 1",
			tokens: []int{tokEsc, tokSep, tokEsc, tokSep, tokEsc, tokEol, tokEof},
			texts:  []string{"set", " ", "x", " ", "1", "", ""},
		},
		{
			name:   "var_sub",
			src:    "$x",
			tokens: []int{tokVar, tokEol, tokEof},
			texts:  []string{"x", "", ""},
		},
		{
			name:   "brace_literal",
			src:    "{a b}",
			tokens: []int{tokStr, tokEol, tokEof},
			texts:  []string{"a b", "", ""},
		},
		{
			name:   "nested_command",
			src:    "[+ 1 2]",
			tokens: []int{tokCmd, tokEol, tokEof},
			texts:  []string{"+ 1 2", "", ""},
		},
		{
			name:   "comment_at_statement_start",
			src:    "# a comment\nset x 1",
			tokens: []int{tokEol, tokEsc, tokSep, tokEsc, tokSep, tokEsc, tokEol, tokEof},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newParser(c.src)
			var got []int
			var texts []string
			for {
				if !p.getToken() {
					t.Fatalf("getToken failed mid-parse")
				}
				got = append(got, p.token)
				texts = append(texts, p.text())
				if p.token == tokEof {
					break
				}
			}
			if len(got) != len(c.tokens) {
				t.Fatalf("token count = %d, want %d (%v)", len(got), len(c.tokens), got)
			}
			for i, want := range c.tokens {
				if got[i] != want {
					t.Errorf("token[%d] = %d, want %d", i, got[i], want)
				}
			}
			if c.texts != nil {
				for i, want := range c.texts {
					if texts[i] != want {
						t.Errorf("text[%d] = %q, want %q", i, texts[i], want)
					}
				}
			}
		})
	}
}

func TestUnterminatedBraceFails(t *testing.T) {
	p := newParser("{unterminated")
	if p.getToken() {
		t.Fatalf("expected getToken to fail on unterminated brace")
	}
}

func TestUnterminatedQuoteFails(t *testing.T) {
	p := newParser(`"unterminated`)
	if p.getToken() {
		t.Fatalf("expected getToken to fail on unterminated quote")
	}
}
