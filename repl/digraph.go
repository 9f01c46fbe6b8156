/*
 * repl  interactive front end helpers for the tcl interpreter.
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

// Package repl holds the REPL-only pieces that must never leak into
// the tcl core: the keyboard-digraph preprocessor. It is imported by
// cmd/ncl and nothing else.
package repl

import "strings"

// digraphs maps restricted-keyboard digraphs to the bracket/brace/
// backslash byte they stand in for. Longer digraphs are tried first
// by Rewrite so "(((" does not get eaten as "((" followed by "(".
var digraphs = []struct {
	from string
	to   string
}{
	{"(((", "{"},
	{")))", "}"},
	{"((", "["},
	{"))", "]"},
	{"@@", `\`},
}

// Rewrite replaces keyboard digraphs with the bracket/brace/backslash
// byte they stand in for, so a terminal that cannot type those bytes
// directly can still drive the interpreter. It is applied to raw input
// lines before they reach EvalString; the core evaluator never sees
// undigraphed input and never calls this itself.
func Rewrite(line string) string {
	for _, d := range digraphs {
		line = strings.ReplaceAll(line, d.from, d.to)
	}
	return line
}
