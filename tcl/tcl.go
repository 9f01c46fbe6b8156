/*
 * TCL  basic TCL interpreter.
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

// Package tcl implements the core of a small Tcl-like command interpreter:
// tokenizer, evaluator, variable/array/command environment and the built-in
// command set. Host operating-system services (file, process) are supplied
// by adapters that call Register; the core never touches the OS directly.
package tcl

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Status codes returned by command functions and eval.
const (
	RetOk       = iota // All ok.
	RetError           // Error, message in result.
	RetReturn          // Return result in result.
	RetBreak           // Break statement.
	RetContinue        // Continue statement.
	RetExit            // Terminate the interpreter.
)

var (
	// ErrExit is returned by EvalString when the script ran "exit"/"9exit".
	ErrExit = errors.New("exit")
	// ErrError is returned by EvalString when the script errored out.
	ErrError = errors.New("error")
)

// Interpreter holds the state of one running session: the call frame
// stack, the command table, the global array table and the shared
// Result slot. There is no process-wide singleton; callers create as
// many Interpreters as they like.
type Interpreter struct {
	frame  *frame               // Current call frame.
	level  int                  // Current nesting level (0 == global).
	cmds   map[string]*command  // Commands, keyed by lower-cased name.
	arrays map[string]*array    // Global arrays, keyed by lower-cased name.
	result string               // Result of the most recently run command.
	Stdout io.Writer            // Destination for "puts"; defaults to os.Stdout.
	Data   map[string]any       // Extension-owned storage (host bridges use this).
	Log    zerolog.Logger       // Debug-level dispatch/frame tracing.
}

// command is a registered name: either a builtin function or a user
// procedure (proc == true). For procedures, arg is {formals, body}
// as produced by cmdProc; re-registering a name simply replaces this
// struct, so there is nothing to free and nothing can leak.
type command struct {
	fn   func(*Interpreter, []string, []string) int
	proc bool
	arg  []string
}

// variable is a single (name, value) cell owned by exactly one frame.
type variable struct {
	value string
}

// frame is a call frame: a flat chain of simple variables plus a
// pointer to its parent. The root frame has parent == nil.
type frame struct {
	vars   map[string]*variable
	local  map[string]bool // true if the binding is private to this frame.
	parent *frame
	args   string // Joined argv text the frame was invoked with.
}

// array is a process-global, never-scoped value table.
type array struct {
	name string
	vars map[string]*variable
}

// NewInterpreter creates an interpreter with the root frame pushed and
// every core built-in command registered.
func NewInterpreter() *Interpreter {
	t := &Interpreter{}
	t.frame = t.newFrame()
	t.cmds = make(map[string]*command)
	t.arrays = make(map[string]*array)
	t.Data = make(map[string]any)
	t.Stdout = os.Stdout
	t.Log = zerolog.New(io.Discard)
	t.registerCoreCommands()
	return t
}

// SetResult records the result of the most recent command and returns
// the status code unchanged, so commands can write `return t.SetResult(...)`.
func (t *Interpreter) SetResult(status int, result string) int {
	t.result = result
	return status
}

// GetResult returns the current contents of the Result slot.
func (t *Interpreter) GetResult() string {
	return t.result
}

// EvalString evaluates a whole script and reduces the status code down
// to the three outcomes a host cares about: clean completion, a request
// to terminate, or an error (whose message is in GetResult()).
func (t *Interpreter) EvalString(str string) error {
	switch t.eval(str, "top level") {
	case RetOk, RetReturn, RetBreak, RetContinue:
		return nil
	case RetExit:
		return ErrExit
	default:
		return ErrError
	}
}

// eval tokenizes str, resolves each token (literal / variable / nested
// command) into a string, assembles it into the current command's argv,
// and dispatches at each end-of-line. where labels this evaluation for
// error decoration: every error exit appends "; in <where>".
func (t *Interpreter) eval(str string, where string) int {
	t.result = ""
	if str == "" {
		return RetOk
	}

	args := []string{}
	prevToken := tokEol
	p := newParser(str)

	for {
		if !p.getToken() {
			t.result = "error parsing: " + str
			return decorate(RetError, t, where)
		}
		if p.token == tokEof {
			break
		}
		val := p.text()

		switch p.token {
		case tokVar:
			value, ok := t.GetVarValue(val)
			if !ok {
				t.result = "No such variable '" + val + "'"
				return decorate(RetError, t, where)
			}
			val = value

		case tokCmd:
			ret := t.eval(val, "[...]")
			if ret != RetOk {
				return decorate(ret, t, where)
			}
			val = t.result

		case tokSep:
			prevToken = p.token
			continue
		}

		if p.token == tokEol {
			prevToken = p.token
			if len(args) > 0 {
				ret := t.doCommand(args)
				if ret != RetOk {
					return decorate(ret, t, where)
				}
			}
			args = args[:0]
			continue
		}

		if prevToken == tokSep || prevToken == tokEol {
			args = append(args, val)
		} else {
			args[len(args)-1] += val
		}
		prevToken = p.token
	}
	return RetOk
}

// decorate appends "; in <where>" to the Result exactly once per
// unwinding eval frame, but only for RetError. RETURN/BREAK/CONTINUE
// must reach their consumer undecorated so they keep carrying the
// value set by "return"/loop bodies.
func decorate(status int, t *Interpreter, where string) int {
	if status == RetError {
		t.result += "; in " + where
	}
	return status
}

// doCommand looks up argv[0] (case-insensitively) and invokes it. If
// argv[0] is not a registered command and is not itself "unknown", the
// "unknown" handler (if any) is invoked with "unknown" prepended to argv.
func (t *Interpreter) doCommand(args []string) int {
	t.result = ""
	name := strings.ToLower(args[0])
	cmd, ok := t.cmds[name]
	if !ok {
		if name != "unknown" {
			if uh, uok := t.cmds["unknown"]; uok {
				shifted := make([]string, 0, len(args)+1)
				shifted = append(shifted, "unknown")
				shifted = append(shifted, args...)
				t.Log.Debug().Str("command", args[0]).Msg("dispatching to unknown handler")
				return uh.fn(t, shifted, uh.arg)
			}
		}
		t.result = "No such command '" + args[0] + "'"
		return RetError
	}
	t.Log.Debug().Str("command", name).Int("argc", len(args)).Msg("dispatch")
	return cmd.fn(t, args, cmd.arg)
}

// Register installs a command under name, overwriting any previous
// registration (including a user procedure's formals/body). There is
// no separate free step because private data is plain Go data owned
// by the command struct itself.
func (t *Interpreter) Register(name string, arg []string, proc bool, fn func(*Interpreter, []string, []string) int) {
	t.cmds[strings.ToLower(name)] = &command{fn: fn, arg: arg, proc: proc}
}

// arityError is the single message format every built-in uses for a
// wrong argument count.
func arityError(t *Interpreter, name string) int {
	return t.SetResult(RetError, "Wrong number of args for "+name)
}
