/*
 * TCL  basic TCL Commands
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

// registerCoreCommands installs every built-in command the core
// interpreter provides. Host-facing commands (9open, 9chain, file ...,
// and so on) are registered separately by the host/process packages.
func (t *Interpreter) registerCoreCommands() {
	// Arithmetic: + and * take any arity, the rest are strictly binary.
	t.Register("+", nil, false, cmdAdd)
	t.Register("*", nil, false, cmdMul)
	t.Register("-", nil, false, cmdSub)
	t.Register("/", nil, false, cmdDiv)
	t.Register("%", nil, false, cmdMod)
	t.Register(">", nil, false, cmdCompareNum)
	t.Register(">=", nil, false, cmdCompareNum)
	t.Register("<", nil, false, cmdCompareNum)
	t.Register("<=", nil, false, cmdCompareNum)
	t.Register("==", nil, false, cmdCompareNum)
	t.Register("!=", nil, false, cmdCompareNum)
	t.Register("bitand", nil, false, cmdBitwise)
	t.Register("bitor", nil, false, cmdBitwise)
	t.Register("bitxor", nil, false, cmdBitwise)

	// String comparisons.
	t.Register("eq", nil, false, cmdCompareStr)
	t.Register("ne", nil, false, cmdCompareStr)
	t.Register("lt", nil, false, cmdCompareStr)
	t.Register("le", nil, false, cmdCompareStr)
	t.Register("gt", nil, false, cmdCompareStr)
	t.Register("ge", nil, false, cmdCompareStr)

	// Variables and arrays.
	t.Register("set", nil, false, cmdSet)
	t.Register("array", nil, false, cmdArray)
	t.Register("incr", nil, false, cmdIncr)
	t.Register("decr", nil, false, cmdIncr)

	// Control flow.
	t.Register("if", nil, false, cmdIf)
	t.Register("while", nil, false, cmdWhile)
	t.Register("foreach", nil, false, cmdForEach)
	t.Register("break", nil, false, cmdFlow)
	t.Register("continue", nil, false, cmdFlow)
	t.Register("return", nil, false, cmdFlow)
	t.Register("catch", nil, false, cmdCatch)
	t.Register("eval", nil, false, cmdEval)
	t.Register("and", nil, false, cmdAnd)
	t.Register("or", nil, false, cmdOr)

	// Procedures and command table maintenance.
	t.Register("proc", nil, false, cmdProc)
	t.Register("rename", nil, false, cmdRename)

	// Lists.
	t.Register("list", nil, false, cmdList)
	t.Register("llength", nil, false, cmdLLength)
	t.Register("lindex", nil, false, cmdLIndex)
	t.Register("lrange", nil, false, cmdLRange)
	t.Register("lappend", nil, false, cmdLAppend)
	t.Register("split", nil, false, cmdSplit)
	t.Register("join", nil, false, cmdJoin)

	// Strings, codec, pattern match.
	t.Register("slength", nil, false, cmdSLength)
	t.Register("sindex", nil, false, cmdSIndex)
	t.Register("srange", nil, false, cmdSRange)
	t.Register("supper", nil, false, cmdSUpper)
	t.Register("slower", nil, false, cmdSLower)
	t.Register("smatch", nil, false, cmdSMatch)
	t.Register("regexp", nil, false, cmdRegexp)
	t.Register("explode", nil, false, cmdExplode)
	t.Register("implode", nil, false, cmdImplode)

	// Output and introspection.
	t.Register("puts", nil, false, cmdPuts)
	t.Register("info", nil, false, cmdInfo)
	t.Register("exit", nil, false, cmdExit)
	t.Register("9exit", nil, false, cmdExit)
}

// numArgs converts args[1:] to ints; the caller has already validated arity.
func numArgs(args []string) []int {
	n := make([]int, len(args)-1)
	for i, a := range args[1:] {
		n[i] = AtoiLax(a)
	}
	return n
}

// cmdAdd implements "+": any arity, identity 0, left-fold sum.
func cmdAdd(t *Interpreter, args []string, _ []string) int {
	sum := 0
	for _, n := range numArgs(args) {
		sum += n
	}
	return t.SetResult(RetOk, strconv.Itoa(sum))
}

// cmdMul implements "*": any arity, identity 1, left-fold product.
func cmdMul(t *Interpreter, args []string, _ []string) int {
	prod := 1
	for _, n := range numArgs(args) {
		prod *= n
	}
	return t.SetResult(RetOk, strconv.Itoa(prod))
}

// cmdSub implements "-": exactly two operands.
func cmdSub(t *Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return arityError(t, args[0])
	}
	n := numArgs(args)
	return t.SetResult(RetOk, strconv.Itoa(n[0]-n[1]))
}

// cmdDiv implements "/": exactly two operands, truncating toward zero.
func cmdDiv(t *Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return arityError(t, args[0])
	}
	n := numArgs(args)
	if n[1] == 0 {
		return t.SetResult(RetError, "division by zero")
	}
	return t.SetResult(RetOk, strconv.Itoa(n[0]/n[1]))
}

// cmdMod implements "%": exactly two operands, truncating toward zero.
func cmdMod(t *Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return arityError(t, args[0])
	}
	n := numArgs(args)
	if n[1] == 0 {
		return t.SetResult(RetError, "division by zero")
	}
	return t.SetResult(RetOk, strconv.Itoa(n[0]%n[1]))
}

// cmdCompareNum implements > >= < <= == != : exactly two operands,
// result "0" or "1".
func cmdCompareNum(t *Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return arityError(t, args[0])
	}
	n := numArgs(args)
	a, b := n[0], n[1]
	var r bool
	switch args[0] {
	case ">":
		r = a > b
	case ">=":
		r = a >= b
	case "<":
		r = a < b
	case "<=":
		r = a <= b
	case "==":
		r = a == b
	case "!=":
		r = a != b
	}
	return t.SetResult(RetOk, boolStr(r))
}

// cmdBitwise implements bitand/bitor/bitxor: exactly two operands.
func cmdBitwise(t *Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return arityError(t, args[0])
	}
	n := numArgs(args)
	var r int
	switch args[0] {
	case "bitand":
		r = n[0] & n[1]
	case "bitor":
		r = n[0] | n[1]
	case "bitxor":
		r = n[0] ^ n[1]
	}
	return t.SetResult(RetOk, strconv.Itoa(r))
}

// cmdCompareStr implements eq/ne/lt/le/gt/ge: case-insensitive
// lexicographic string comparison, exactly two operands.
func cmdCompareStr(t *Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return arityError(t, args[0])
	}
	a, b := strings.ToLower(args[1]), strings.ToLower(args[2])
	c := strings.Compare(a, b)
	var r bool
	switch args[0] {
	case "eq":
		r = c == 0
	case "ne":
		r = c != 0
	case "lt":
		r = c < 0
	case "le":
		r = c <= 0
	case "gt":
		r = c > 0
	case "ge":
		r = c >= 0
	}
	return t.SetResult(RetOk, boolStr(r))
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// cmdSet implements "set name ?value?": one-arg form reads (ERR if
// absent), two-arg form writes and returns the new value.
func cmdSet(t *Interpreter, args []string, _ []string) int {
	switch len(args) {
	case 2:
		v, ok := t.GetVarValue(args[1])
		if !ok {
			return t.SetResult(RetError, "no such var")
		}
		return t.SetResult(RetOk, v)
	case 3:
		t.SetVarValue(args[1], args[2])
		return t.SetResult(RetOk, args[2])
	default:
		return arityError(t, args[0])
	}
}

// cmdIncr implements "incr name ?amount?" and "decr name ?amount?":
// amount defaults to 1, decr subtracts instead of adding.
func cmdIncr(t *Interpreter, args []string, _ []string) int {
	if len(args) != 2 && len(args) != 3 {
		return arityError(t, args[0])
	}
	amount := 1
	if len(args) == 3 {
		amount = AtoiLax(args[2])
	}
	if strings.ToLower(args[0]) == "decr" {
		amount = -amount
	}
	cur, _ := t.GetVarValue(args[1])
	v := AtoiLax(cur) + amount
	result := strconv.Itoa(v)
	t.SetVarValue(args[1], result)
	return t.SetResult(RetOk, result)
}

// cmdArray implements "array": 1-arg lists array names, 2-arg lists an
// array's keys, 3-arg reads a key, 4-arg writes a key (creating the
// array lazily).
func cmdArray(t *Interpreter, args []string, _ []string) int {
	switch len(args) {
	case 1:
		names := make([]string, 0, len(t.arrays))
		for _, a := range t.arrays {
			names = append(names, a.name)
		}
		return t.SetResult(RetOk, joinList(names))

	case 2:
		a := t.getArray(args[1], false)
		if a == nil {
			return t.SetResult(RetOk, "")
		}
		keys := make([]string, 0, len(a.vars))
		for k := range a.vars {
			keys = append(keys, k)
		}
		return t.SetResult(RetOk, joinList(keys))

	case 3:
		a := t.getArray(args[1], false)
		if a == nil {
			return t.SetResult(RetError, "not found")
		}
		v, ok := a.vars[strings.ToLower(args[2])]
		if !ok {
			return t.SetResult(RetError, "not found")
		}
		return t.SetResult(RetOk, v.value)

	case 4:
		a := t.getArray(args[1], true)
		key := strings.ToLower(args[2])
		if v, ok := a.vars[key]; ok {
			v.value = args[3]
		} else {
			a.vars[key] = &variable{value: args[3]}
		}
		return t.SetResult(RetOk, args[3])

	default:
		return arityError(t, args[0])
	}
}

// truthy reports whether a condition result counts as true: non-zero
// integer, or the literal words "true"/"yes".
func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes":
		return true
	case "false", "no", "":
		return false
	}
	return AtoiLax(s) != 0
}

// cmdIf implements "if cond then ?else? ?elseIfCond elseIfThen…? ?else?"
// via a simple condition/body pair walk: "if c1 b1 else b2" and the
// bare two-arg "if c1 b1" are both accepted, plus chained
// "if c1 b1 elseif c2 b2 else b3" sequences.
func cmdIf(t *Interpreter, args []string, _ []string) int {
	if len(args) < 3 {
		return arityError(t, args[0])
	}
	i := 1
	for {
		cond := args[i]
		ret := t.eval(cond, "if condition")
		if ret != RetOk {
			return ret
		}
		result := t.GetResult()
		if i+1 >= len(args) {
			return arityError(t, args[0])
		}
		body := args[i+1]
		if truthy(result) {
			return t.eval(body, "if body")
		}
		i += 2
		if i >= len(args) {
			return t.SetResult(RetOk, "")
		}
		switch strings.ToLower(args[i]) {
		case "elseif":
			i++
			continue
		case "else":
			if i+1 >= len(args) {
				return arityError(t, args[0])
			}
			return t.eval(args[i+1], "else body")
		default:
			return arityError(t, args[0])
		}
	}
}

// cmdWhile implements "while cond body": CONTINUE advances to the next
// test, BREAK ends the loop successfully.
func cmdWhile(t *Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return arityError(t, args[0])
	}
	cond, body := args[1], args[2]
	for {
		ret := t.eval(cond, "while condition")
		if ret != RetOk {
			return ret
		}
		if !truthy(t.GetResult()) {
			return t.SetResult(RetOk, "")
		}
		ret = t.eval(body, "while body")
		switch ret {
		case RetOk, RetContinue:
			continue
		case RetBreak:
			return t.SetResult(RetOk, "")
		default:
			return ret
		}
	}
}

// cmdFlow backs break/continue/return, dispatched on args[0]. All
// three share the trait of setting a terminal status code that
// unwinds the enclosing eval frames until a loop or procedure
// dispatcher consumes it.
func cmdFlow(t *Interpreter, args []string, _ []string) int {
	switch strings.ToLower(args[0]) {
	case "break":
		return t.SetResult(RetBreak, "")
	case "continue":
		return t.SetResult(RetContinue, "")
	case "return":
		val := ""
		if len(args) == 2 {
			val = args[1]
		} else if len(args) > 2 {
			return arityError(t, args[0])
		}
		return t.SetResult(RetReturn, val)
	}
	return t.SetResult(RetError, "bad flow command")
}

// cmdCatch implements "catch body ?varname?": always returns OK with
// Result = the numeric status code the body produced; if varname is
// given, that variable receives the body's own Result text.
func cmdCatch(t *Interpreter, args []string, _ []string) int {
	if len(args) != 2 && len(args) != 3 {
		return arityError(t, args[0])
	}
	status := t.eval(args[1], "catch body")
	bodyResult := t.GetResult()
	if len(args) == 3 {
		t.SetVarValue(args[2], bodyResult)
	}
	return t.SetResult(RetOk, strconv.Itoa(status))
}

// cmdEval implements "eval args...": concatenates args with a single
// space between them and evaluates the result, with no leading space
// before the first argument.
func cmdEval(t *Interpreter, args []string, _ []string) int {
	if len(args) < 2 {
		return arityError(t, args[0])
	}
	return t.eval(strings.Join(args[1:], " "), "eval")
}

// cmdAnd/cmdOr implement short-circuit boolean "and"/"or" over
// sub-expressions: each argument is evaluated as a nested command only
// as needed.
func cmdAnd(t *Interpreter, args []string, _ []string) int {
	if len(args) < 2 {
		return arityError(t, args[0])
	}
	for _, a := range args[1:] {
		ret := t.eval(a, "and")
		if ret != RetOk {
			return ret
		}
		if !truthy(t.GetResult()) {
			return t.SetResult(RetOk, "0")
		}
	}
	return t.SetResult(RetOk, "1")
}

func cmdOr(t *Interpreter, args []string, _ []string) int {
	if len(args) < 2 {
		return arityError(t, args[0])
	}
	for _, a := range args[1:] {
		ret := t.eval(a, "or")
		if ret != RetOk {
			return ret
		}
		if truthy(t.GetResult()) {
			return t.SetResult(RetOk, "1")
		}
	}
	return t.SetResult(RetOk, "0")
}

// cmdProc implements "proc name formals body": stores (formals, body)
// as the command's private data.
func cmdProc(t *Interpreter, args []string, _ []string) int {
	if len(args) != 4 {
		return arityError(t, args[0])
	}
	name, formals, body := args[1], args[2], args[3]
	t.Register(name, []string{formals, body}, true, userProc)
	return t.SetResult(RetOk, "")
}

// userProc invokes a user procedure: pushes a new frame, binds formals
// positionally (the last formal named "args" collects all remaining
// actuals as a list), evaluates the body, and pops the frame on every
// exit path. RETURN collapses to OK at this boundary.
func userProc(t *Interpreter, args []string, priv []string) int {
	formals := splitList(priv[0])
	body := priv[1]
	actuals := args[1:]

	hasVarArgs := len(formals) > 0 && formals[len(formals)-1] == "args"
	fixed := formals
	if hasVarArgs {
		fixed = formals[:len(formals)-1]
	}
	if hasVarArgs {
		if len(actuals) < len(fixed) {
			return arityError(t, args[0])
		}
	} else if len(actuals) != len(fixed) {
		return arityError(t, args[0])
	}

	f := t.newFrame()
	f.args = joinList(actuals)
	t.pushFrame(f)
	defer t.popFrame()

	for i, formal := range fixed {
		t.SetVarValue(formal, actuals[i])
		f.local[strings.ToLower(formal)] = true
	}
	if hasVarArgs {
		t.SetVarValue("args", joinList(actuals[len(fixed):]))
		f.local["args"] = true
	}

	ret := t.eval(body, "proc "+args[0])
	if ret == RetReturn {
		return t.SetResult(RetOk, t.GetResult())
	}
	return ret
}

// cmdRename implements "rename oldName ?newName?": with newName given,
// the command is renamed; with it omitted, the command is deleted.
func cmdRename(t *Interpreter, args []string, _ []string) int {
	if len(args) != 2 && len(args) != 3 {
		return arityError(t, args[0])
	}
	oldName := strings.ToLower(args[1])
	cmd, ok := t.cmds[oldName]
	if !ok {
		return t.SetResult(RetError, "no such command '"+args[1]+"'")
	}
	delete(t.cmds, oldName)
	if len(args) == 3 {
		t.cmds[strings.ToLower(args[2])] = cmd
	}
	return t.SetResult(RetOk, "")
}

// cmdPuts implements "puts ?-nonewline? string…": writes to t.Stdout.
func cmdPuts(t *Interpreter, args []string, _ []string) int {
	if len(args) < 2 {
		return arityError(t, args[0])
	}
	nl := true
	words := args[1:]
	if words[0] == "-nonewline" {
		nl = false
		words = words[1:]
		if len(words) == 0 {
			return arityError(t, args[0])
		}
	}
	out := strings.Join(words, " ")
	if nl {
		out += "\n"
	}
	t.Stdout.Write([]byte(out))
	return t.SetResult(RetOk, "")
}

// cmdExit implements "exit ?code?": terminates the interpreter with
// RetExit; the code (default 0) is carried in Result for the host to
// parse as an OS exit status.
func cmdExit(t *Interpreter, args []string, _ []string) int {
	code := "0"
	if len(args) == 2 {
		code = args[1]
	} else if len(args) > 2 {
		return arityError(t, args[0])
	}
	return t.SetResult(RetExit, code)
}
