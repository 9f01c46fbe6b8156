/*
 * TCL string, codec and introspection commands.
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
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// cmdSLength implements "slength s".
func cmdSLength(t *Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return arityError(t, args[0])
	}
	return t.SetResult(RetOk, strconv.Itoa(len(args[1])))
}

// cmdSIndex implements "sindex s i", equivalent to srange with a == b.
func cmdSIndex(t *Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return arityError(t, args[0])
	}
	i := AtoiLax(args[2])
	return t.SetResult(RetOk, clampRange(args[1], i, i))
}

// cmdSRange implements "srange s a b", clamping a >= 0 and b <= len-1.
func cmdSRange(t *Interpreter, args []string, _ []string) int {
	if len(args) != 4 {
		return arityError(t, args[0])
	}
	a, b := AtoiLax(args[2]), AtoiLax(args[3])
	return t.SetResult(RetOk, clampRange(args[1], a, b))
}

func clampRange(s string, a, b int) string {
	if a < 0 {
		a = 0
	}
	if b > len(s)-1 {
		b = len(s) - 1
	}
	if a > b || a >= len(s) || len(s) == 0 {
		return ""
	}
	return s[a : b+1]
}

// cmdSUpper and cmdSLower each back exactly one registration; srange,
// supper and slower are distinct commands with distinct functions.
func cmdSUpper(t *Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return arityError(t, args[0])
	}
	return t.SetResult(RetOk, strings.ToUpper(args[1]))
}

func cmdSLower(t *Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return arityError(t, args[0])
	}
	return t.SetResult(RetOk, strings.ToLower(args[1]))
}

// cmdSMatch implements "smatch pattern s": glob matching, case-insensitive.
func cmdSMatch(t *Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return arityError(t, args[0])
	}
	r := Match(args[1], args[2], true, len(args[2])+1)
	if r < 0 {
		return t.SetResult(RetError, "pattern too complex")
	}
	return t.SetResult(RetOk, strconv.Itoa(r))
}

// cmdRegexp implements "regexp pattern s": case-insensitive regex
// matching via the standard regexp package, returning a boolean result
// with no submatch capture.
func cmdRegexp(t *Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return arityError(t, args[0])
	}
	re, err := regexp.Compile("(?i)" + args[1])
	if err != nil {
		return t.SetResult(RetError, "bad pattern: "+err.Error())
	}
	if re.MatchString(args[2]) {
		return t.SetResult(RetOk, "1")
	}
	return t.SetResult(RetOk, "0")
}

// cmdExplode implements "explode s" -> list of decimal byte values.
func cmdExplode(t *Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return arityError(t, args[0])
	}
	s := args[1]
	elems := make([]string, len(s))
	for i := 0; i < len(s); i++ {
		elems[i] = strconv.Itoa(int(s[i]))
	}
	return t.SetResult(RetOk, joinList(elems))
}

// cmdImplode implements "implode list" -> string of bytes with the
// values given by the list, the exact inverse of explode.
func cmdImplode(t *Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return arityError(t, args[0])
	}
	elems := splitList(args[1])
	b := make([]byte, 0, len(elems))
	for _, e := range elems {
		n := AtoiLax(e)
		b = append(b, byte(n))
	}
	return t.SetResult(RetOk, string(b))
}

// cmdInfo implements introspection. Each subcommand returns a
// canonical list of results rather than only printing them.
func cmdInfo(t *Interpreter, args []string, _ []string) int {
	if len(args) < 2 {
		return arityError(t, args[0])
	}
	switch strings.ToLower(args[1]) {
	case "commands":
		return t.SetResult(RetOk, joinList(namesWhere(t, func(c *command) bool { return !c.proc })))

	case "procs":
		return t.SetResult(RetOk, joinList(namesWhere(t, func(c *command) bool { return c.proc })))

	case "vars":
		return t.SetResult(RetOk, joinList(frameVarNames(t.frame)))

	case "locals":
		var names []string
		for name, local := range t.frame.local {
			if local {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		return t.SetResult(RetOk, joinList(names))

	case "globals":
		root := t.frame
		for root.parent != nil {
			root = root.parent
		}
		return t.SetResult(RetOk, joinList(frameVarNames(root)))

	case "exists":
		if len(args) != 3 {
			return arityError(t, args[0])
		}
		_, ok := t.GetVarValue(args[2])
		if ok {
			return t.SetResult(RetOk, "1")
		}
		return t.SetResult(RetOk, "0")

	case "level":
		return t.SetResult(RetOk, strconv.Itoa(t.level))

	case "args":
		if len(args) != 3 {
			return arityError(t, args[0])
		}
		cmd, ok := t.cmds[strings.ToLower(args[2])]
		if !ok || !cmd.proc {
			return t.SetResult(RetError, "not found")
		}
		return t.SetResult(RetOk, cmd.arg[0])

	case "body":
		if len(args) != 3 {
			return arityError(t, args[0])
		}
		cmd, ok := t.cmds[strings.ToLower(args[2])]
		if !ok || !cmd.proc {
			return t.SetResult(RetError, "not found")
		}
		return t.SetResult(RetOk, cmd.arg[1])

	default:
		return t.SetResult(RetError, "unknown info option '"+args[1]+"'")
	}
}

func namesWhere(t *Interpreter, pred func(*command) bool) []string {
	var names []string
	for name, c := range t.cmds {
		if pred(c) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func frameVarNames(f *frame) []string {
	names := make([]string, 0, len(f.vars))
	for name := range f.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
