/*
 * TCL internal helpers: numbers, variables/frames, glob matching.
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

import (
	"strconv"
	"strings"
)

// AtoiLax parses a leading optional sign followed by decimal digits the
// way this dialect's arithmetic commands do: a non-numeric prefix
// yields 0 rather than an error.
func AtoiLax(s string) int {
	s = strings.TrimSpace(s)
	i := 0
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	n, _ := strconv.Atoi(s[start:i])
	if neg {
		n = -n
	}
	return n
}

// GetVarValue retrieves a simple variable from the current frame.
// Only the current frame is consulted; there is no lexical or
// dynamic traversal to outer frames.
func (t *Interpreter) GetVarValue(name string) (string, bool) {
	v, ok := t.frame.vars[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return v.value, true
}

// SetVarValue creates or overwrites a simple variable in the current frame.
func (t *Interpreter) SetVarValue(name, value string) {
	key := strings.ToLower(name)
	if v, ok := t.frame.vars[key]; ok {
		v.value = value
		return
	}
	t.frame.vars[key] = &variable{value: value}
}

// UnsetVar removes a variable from the current frame.
func (t *Interpreter) UnsetVar(name string) {
	key := strings.ToLower(name)
	delete(t.frame.vars, key)
	delete(t.frame.local, key)
}

// newFrame allocates an empty call frame, not yet linked to a parent.
func (t *Interpreter) newFrame() *frame {
	return &frame{vars: make(map[string]*variable), local: make(map[string]bool)}
}

// pushFrame makes f the current frame, chained under the old current frame.
func (t *Interpreter) pushFrame(f *frame) {
	f.parent = t.frame
	t.frame = f
	t.level++
}

// popFrame returns to the parent of the current frame. Every exit path
// out of a procedure call (OK, RETURN, ERR, BREAK, CONTINUE) reaches
// this, because userProc in basic.go defers the pop right after the
// push, so it runs on whichever return path the status leads to.
func (t *Interpreter) popFrame() {
	t.frame = t.frame.parent
	t.level--
}

// getArray looks up (and optionally creates) the process-global array
// named name.
func (t *Interpreter) getArray(name string, create bool) *array {
	key := strings.ToLower(name)
	a, ok := t.arrays[key]
	if !ok {
		if !create {
			return nil
		}
		a = &array{name: name, vars: make(map[string]*variable)}
		t.arrays[key] = a
	}
	return a
}

// quoteElement renders s the way the list codec requires: empty, or
// containing whitespace/braces, gets wrapped in {...}; anything else is
// written bare. This is the encoding half of the list codec in list.go.
func quoteElement(s string) string {
	if s == "" {
		return "{}"
	}
	needsQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '{', '}':
			needsQuote = true
		}
	}
	if !needsQuote {
		return s
	}
	return "{" + s + "}"
}

func toLowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Match implements glob matching with '*' (any run), '?' (any single
// character) and '[...]' (character class) wildcards, used by "smatch".
// It returns 1 on a full match, 0 on no match, and -1 if the recursion
// budget (depth) is exhausted, bounding pathological patterns like
// "********".
func Match(pattern, target string, ignoreCase bool, depth int) int {
	if pattern == "" {
		if target == "" {
			return 1
		}
		return 0
	}
	if depth <= 0 {
		return -1
	}

	i, k := 0, 0
	for i < len(pattern) {
		switch pattern[i] {
		case '*':
			for k <= len(target) {
				r := Match(pattern[i+1:], target[k:], ignoreCase, depth-1)
				if r != 0 {
					return r
				}
				k++
			}
			return 0

		case '?':
			if k >= len(target) {
				return 0
			}
			i++
			k++

		case '[':
			if k >= len(target) {
				return 0
			}
			i++
			matched := false
			for i < len(pattern) && pattern[i] != ']' {
				first := pattern[i]
				if first == '\\' && i+1 < len(pattern) {
					i++
					first = pattern[i]
				}
				last := first
				i++
				if i < len(pattern) && pattern[i] == '-' && i+1 < len(pattern) && pattern[i+1] != ']' {
					i++
					last = pattern[i]
					i++
				}
				lo, hi, ch := first, last, target[k]
				if ignoreCase {
					lo, hi, ch = toLowerByte(lo), toLowerByte(hi), toLowerByte(ch)
				}
				if ch >= lo && ch <= hi {
					matched = true
				}
			}
			if i < len(pattern) {
				i++ // Skip ']'.
			}
			if !matched {
				return 0
			}
			k++

		case '\\':
			i++
			if i >= len(pattern) || k >= len(target) {
				return 0
			}
			fallthrough

		default:
			if k >= len(target) {
				return 0
			}
			a, b := pattern[i], target[k]
			if ignoreCase {
				a, b = toLowerByte(a), toLowerByte(b)
			}
			if a != b {
				return 0
			}
			i++
			k++
		}
	}
	if k == len(target) {
		return 1
	}
	return 0
}

// UnEscape decodes the standard backslash escapes (\n \t \r \\ \" \[ \]
// \$ and \xHH) in str. It is exposed as a utility for hosts/extensions
// that opt in to escape processing; the core evaluator never calls it
// automatically. ESC tokens always carry their raw source bytes.
func UnEscape(str string) string {
	var b strings.Builder
	for i := 0; i < len(str); i++ {
		c := str[i]
		if c != '\\' || i+1 >= len(str) {
			b.WriteByte(c)
			continue
		}
		i++
		switch str[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '[':
			b.WriteByte('[')
		case ']':
			b.WriteByte(']')
		case '$':
			b.WriteByte('$')
		case 'x':
			if i+2 < len(str) {
				if v, err := strconv.ParseUint(str[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		default:
			b.WriteByte(str[i])
		}
	}
	return b.String()
}
