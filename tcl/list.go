/*
 * TCL  list codec and list-related commands.
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

// splitList parses the canonical list representation: elements
// separated by runs of whitespace, each element either brace-quoted
// (taken literally, braces nest, "\X" copied through as a literal pair)
// or bare. This is a standalone codec, independent of the command
// tokenizer in parser.go: lists are a data format, not a sub-language.
// SplitList is the exported form of splitList, for host packages that
// need to pull apart a list result without re-implementing the codec.
func SplitList(s string) []string {
	return splitList(s)
}

func splitList(s string) []string {
	var out []string
	i := 0
	n := len(s)
	for i < n {
		for i < n && (isSpace(s[i]) || s[i] == '\n') {
			i++
		}
		if i >= n {
			break
		}
		if s[i] == '{' {
			depth := 1
			i++
			start := i
			for i < n && depth > 0 {
				switch s[i] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						out = append(out, s[start:i])
						i++
					}
				case '\\':
					if i+1 < n {
						i++
					}
				}
				if depth > 0 {
					i++
				}
			}
			continue
		}
		start := i
		for i < n && !isSpace(s[i]) && s[i] != '\n' {
			i++
		}
		out = append(out, s[start:i])
	}
	return out
}

// joinList renders elems as a canonical list: single-space separated,
// each element quoted by quoteElement as needed. This is the exact
// inverse splitList expects back.
func joinList(elems []string) string {
	quoted := make([]string, len(elems))
	for i, e := range elems {
		quoted[i] = quoteElement(e)
	}
	return strings.Join(quoted, " ")
}

func cmdList(t *Interpreter, args []string, _ []string) int {
	return t.SetResult(RetOk, joinList(args[1:]))
}

func cmdLLength(t *Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return arityError(t, args[0])
	}
	return t.SetResult(RetOk, strconv.Itoa(len(splitList(args[1]))))
}

func cmdLIndex(t *Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return arityError(t, args[0])
	}
	elems := splitList(args[1])
	idx := AtoiLax(args[2])
	if idx < 0 || idx >= len(elems) {
		return t.SetResult(RetError, "list index out of range")
	}
	return t.SetResult(RetOk, elems[idx])
}

func cmdLRange(t *Interpreter, args []string, _ []string) int {
	if len(args) != 4 {
		return arityError(t, args[0])
	}
	elems := splitList(args[1])
	a, b := AtoiLax(args[2]), AtoiLax(args[3])
	if a < 0 {
		a = 0
	}
	if b >= len(elems) {
		b = len(elems) - 1
	}
	if a > b || a >= len(elems) {
		return t.SetResult(RetOk, "")
	}
	return t.SetResult(RetOk, joinList(elems[a:b+1]))
}

// cmdLAppend appends args[2:] as elements onto the list-valued variable
// args[1], creating the variable if it does not yet exist.
func cmdLAppend(t *Interpreter, args []string, _ []string) int {
	if len(args) < 2 {
		return arityError(t, args[0])
	}
	cur, _ := t.GetVarValue(args[1])
	elems := splitList(cur)
	elems = append(elems, args[2:]...)
	result := joinList(elems)
	t.SetVarValue(args[1], result)
	return t.SetResult(RetOk, result)
}

// cmdSplit implements "split string ?delim?". With no delimiter,
// splits on whitespace and drops empty elements. With a one-byte
// delimiter, splits on exactly that byte and preserves empties,
// producing a trailing empty element if the input ends with delim.
func cmdSplit(t *Interpreter, args []string, _ []string) int {
	if len(args) != 2 && len(args) != 3 {
		return arityError(t, args[0])
	}
	str := args[1]
	if len(args) == 2 {
		fields := strings.FieldsFunc(str, func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		return t.SetResult(RetOk, joinList(fields))
	}
	delim := args[2]
	if delim == "" {
		return t.SetResult(RetOk, joinList([]string{str}))
	}
	parts := strings.Split(str, delim[:1])
	return t.SetResult(RetOk, joinList(parts))
}

// cmdJoin implements "join list ?delim?". With no delimiter the
// elements are concatenated directly; with one, elements are separated
// by it (delim is used literally, not interpreted as a list).
func cmdJoin(t *Interpreter, args []string, _ []string) int {
	if len(args) != 2 && len(args) != 3 {
		return arityError(t, args[0])
	}
	elems := splitList(args[1])
	delim := ""
	if len(args) == 3 {
		delim = args[2]
	}
	return t.SetResult(RetOk, strings.Join(elems, delim))
}

// cmdForEach implements "foreach var listexpr body": a single loop
// variable bound to each successive element in turn. CONTINUE advances
// to the next element; BREAK ends the loop successfully; any other
// non-OK status propagates.
func cmdForEach(t *Interpreter, args []string, _ []string) int {
	if len(args) != 4 {
		return arityError(t, args[0])
	}
	varName, listExpr, body := args[1], args[2], args[3]
	elems := splitList(listExpr)
	for _, e := range elems {
		t.SetVarValue(varName, e)
		ret := t.eval(body, "foreach body")
		switch ret {
		case RetOk, RetContinue:
			continue
		case RetBreak:
			return t.SetResult(RetOk, "")
		default:
			return ret
		}
	}
	return t.SetResult(RetOk, "")
}
