/*
 * TCL Parser
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

// Token types. ESC carries pending $/[ interpolation inside it, STR is
// a literal (brace-quoted, or a lone '$' with no name after it) that
// needs no further substitution, CMD is the interior of a [...] substitution,
// VAR is a bare variable name following $, SEP is a run of intraline
// whitespace, EOL ends a command and EOF ends the input.
const (
	tokCmd = 1 + iota
	tokEsc
	tokVar
	tokStr
	tokEol
	tokSep
	tokEof
)

type parser struct {
	str     string // Text being parsed.
	pos     int    // Position of the current character.
	nextPos int    // Position of the next character.
	char    byte   // Current character, 0 at end of input.
	start   int    // Start of the pending token.
	end     int    // End of the pending token.
	inQuote bool   // Inside a "..." word.
	token   int    // Type of the last token returned.
}

// newParser creates a parser positioned before the first character of str.
func newParser(str string) *parser {
	p := &parser{str: str, token: tokEol}
	if len(str) > 0 {
		p.char = str[0]
		p.nextPos = 1
	}
	return p
}

// text returns the bytes of the last matched token.
func (p *parser) text() string {
	if p.start >= p.end {
		return ""
	}
	return p.str[p.start:p.end]
}

// next advances to the following character.
func (p *parser) next() {
	if p.nextPos < len(p.str) {
		p.pos = p.nextPos
		p.char = p.str[p.pos]
		p.nextPos++
	} else {
		p.pos = len(p.str)
		p.char = 0
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

func isVarChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_'
}

// getToken collects exactly one token and advances the cursor.
func (p *parser) getToken() bool {
	for p.char != 0 {
		switch {
		case isSpace(p.char) && !p.inQuote:
			return p.parseSep()

		case (p.char == '\n' || p.char == ';') && !p.inQuote:
			return p.parseEol()

		case p.char == '[':
			return p.parseCommand()

		case p.char == '$':
			return p.parseVar()

		case p.char == '#' && p.token == tokEol:
			p.parseComment()
			continue

		default:
			return p.parseWord()
		}
	}

	p.start = p.pos
	p.end = p.pos
	if p.token != tokEol && p.token != tokEof {
		p.token = tokEol
	} else {
		p.token = tokEof
	}
	return true
}

// parseSep consumes a run of intraline whitespace.
func (p *parser) parseSep() bool {
	p.start = p.pos
	for isSpace(p.char) {
		p.next()
	}
	p.end = p.pos
	p.token = tokSep
	return true
}

// parseEol consumes a run of newlines and/or semicolons.
func (p *parser) parseEol() bool {
	p.start = p.pos
	for isSpace(p.char) || p.char == '\n' || p.char == ';' {
		p.next()
	}
	p.end = p.pos
	p.token = tokEol
	return true
}

// parseComment discards everything up to (not including) the next newline.
func (p *parser) parseComment() {
	for p.char != '\n' && p.char != 0 {
		p.next()
	}
}

// parseCommand collects the interior of a [...] nested command,
// tracking brace nesting so an embedded {...} can hide a literal ']',
// and treating "\X" as an opaque two-byte unit so an escaped bracket
// inside the command text does not end it early.
func (p *parser) parseCommand() bool {
	p.next() // Skip '['.
	p.start = p.pos
	braces := 0
	depth := 1
	for p.char != 0 {
		switch p.char {
		case '[':
			if braces == 0 {
				depth++
			}
		case ']':
			if braces == 0 {
				depth--
				if depth == 0 {
					p.end = p.pos
					p.token = tokCmd
					p.next()
					return true
				}
			}
		case '{':
			braces++
		case '}':
			if braces > 0 {
				braces--
			}
		case '\\':
			p.next()
		}
		p.next()
	}
	return false // Ran off the end without a matching ']'.
}

// parseVar collects $name; a bare '$' with no identifier following it
// is returned as a one-byte literal string instead.
func (p *parser) parseVar() bool {
	p.next() // Skip '$'.
	p.start = p.pos
	for isVarChar(p.char) {
		p.next()
	}
	p.end = p.pos
	if p.start == p.end {
		p.start--
		p.end = p.start + 1
		p.token = tokStr
		return true
	}
	p.token = tokVar
	return true
}

// parseWord dispatches to a brace-quoted literal, a double-quoted
// interpolated string, or a bare run of characters, depending on what
// starts the word. newWord is true when the previous token ended a word
// (SEP, EOL, or the leading edge of a fresh parse).
func (p *parser) parseWord() bool {
	newWord := p.token == tokSep || p.token == tokEol

	if newWord && p.char == '{' {
		return p.parseBrace()
	}
	if newWord && p.char == '"' {
		p.inQuote = true
		p.next()
	}
	return p.parseEscaped()
}

// parseBrace collects a {...} literal. Braces nest; "\X" is copied
// through as a literal two-byte unit so an escaped brace does not
// perturb the nesting count. The closing '}' is consumed but not
// included in the token.
func (p *parser) parseBrace() bool {
	p.next() // Skip '{'.
	p.start = p.pos
	depth := 1
	for {
		switch p.char {
		case 0:
			return false
		case '\\':
			if p.nextPos >= len(p.str) {
				return false
			}
			p.next()
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.end = p.pos
				p.token = tokStr
				p.next()
				return true
			}
		}
		p.next()
	}
}

// parseEscaped scans an ESC token: literal bytes up to the next '$',
// '[', an unescaped delimiter outside quotes, or the closing '"'. No
// backslash decoding happens here or in the evaluator: the token always
// carries the untouched source bytes. UnEscape in helpers.go is available
// to callers that want decoding, but no built-in command calls it.
func (p *parser) parseEscaped() bool {
	p.start = p.pos
	for p.char != 0 {
		switch p.char {
		case '\\':
			if p.nextPos < len(p.str) {
				p.next()
			} else {
				return false
			}

		case '$', '[':
			p.end = p.pos
			p.token = tokEsc
			return true

		case ' ', '\t', '\r', ';', '\n':
			if !p.inQuote {
				p.end = p.pos
				p.token = tokEsc
				return true
			}

		case '"':
			if p.inQuote {
				p.end = p.pos
				p.token = tokEsc
				p.inQuote = false
				p.next()
				return true
			}
		}
		p.next()
	}

	if p.inQuote {
		return false // Unterminated quoted string.
	}
	p.end = p.pos
	p.token = tokEsc
	return true
}
