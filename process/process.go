/*
 * process  subprocess spawn/wait/sleep bridge for the tcl interpreter.
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

// Package process adapts the interpreter's "9chain"/"9fork"/"9wait"/
// "9sleep"/"9recv" commands onto real child processes, spawning them
// under a pty and draining their output in the background. Pattern
// matching, telnet and interactive scripting are out of scope for
// this bridge (see DESIGN.md).
package process

import (
	"bytes"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/muesli/cancelreader"

	"github.com/rcornwell/ncl/tcl"
)

// child tracks one spawned process: its pty master and a background
// reader draining output into buf. The exited and code fields are not
// set anywhere; 9wait returns the exit status directly and then forgets
// the child.
type child struct {
	cmd    *exec.Cmd
	pty    *os.File
	rdr    cancelreader.CancelReader
	mu     sync.Mutex
	buf    bytes.Buffer
	exited bool
	code   int
}

type data struct {
	children map[string]*child
	nextID   int
	lastID   string
}

// Init registers the process-control commands against t.
func Init(t *tcl.Interpreter) {
	d := &data{children: make(map[string]*child)}
	t.Data["process"] = d

	t.Register("9fork", nil, false, cmdFork)
	t.Register("9chain", nil, false, cmdChain)
	t.Register("9wait", nil, false, cmdWait)
	t.Register("9sleep", nil, false, cmdSleep)
	t.Register("9recv", nil, false, cmdRecv)
}

func getData(t *tcl.Interpreter) *data {
	d, ok := t.Data["process"].(*data)
	if !ok {
		panic("process.Init was not called on this interpreter")
	}
	return d
}

// spawn starts prog with args under a pty and begins draining its
// output into a background buffer via an interruptible cancelreader.
func spawn(d *data, prog string, args []string) (*child, error) {
	cmd := exec.Command(prog, args...)
	f, err := pty.Start(cmd)
	if err != nil {
		return nil, err
	}
	rdr, err := cancelreader.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	c := &child{cmd: cmd, pty: f, rdr: rdr}
	go drain(c)
	return c, nil
}

// drain runs in its own goroutine for the lifetime of the child,
// copying pty output into c.buf; the interpreter's own goroutine only
// ever touches c.buf under c.mu, from 9recv, so command
// evaluation itself stays single-threaded.
func drain(c *child) {
	buf := make([]byte, 4096)
	for {
		n, err := c.rdr.Read(buf)
		if n > 0 {
			c.mu.Lock()
			c.buf.Write(buf[:n])
			c.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// cmdFork implements "9fork prog ?arg..." -> child id, returning
// immediately while the child runs in the background.
func cmdFork(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) < 2 {
		return t.SetResult(tcl.RetError, "9fork prog ?arg...")
	}
	d := getData(t)
	c, err := spawn(d, args[1], args[2:])
	if err != nil {
		return t.SetResult(tcl.RetError, "9fork: ERROR "+err.Error())
	}
	d.nextID++
	id := "proc" + strconv.Itoa(d.nextID)
	d.children[id] = c
	d.lastID = id
	return t.SetResult(tcl.RetOk, id)
}

// cmdChain implements "9chain prog ?arg...": runs prog to completion
// (Go has no true exec-replace) and then terminates the interpreter
// with prog's exit code via RetExit, the closest equivalent available
// to a hosted Go process.
func cmdChain(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) < 2 {
		return t.SetResult(tcl.RetError, "9chain prog ?arg...")
	}
	cmd := exec.Command(args[1], args[2:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			return t.SetResult(tcl.RetError, "9chain: ERROR "+err.Error())
		}
	}
	return t.SetResult(tcl.RetExit, strconv.Itoa(code))
}

// cmdWait implements "9wait ?id": blocks until the named child (or the
// most recently forked one, if id is omitted) exits, then returns its
// exit code and forgets it.
func cmdWait(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) > 2 {
		return t.SetResult(tcl.RetError, "9wait ?id")
	}
	d := getData(t)
	id := d.lastID
	if len(args) == 2 {
		id = args[1]
	}
	c, ok := d.children[id]
	if !ok {
		return t.SetResult(tcl.RetError, "9wait: no such child "+id)
	}
	err := c.cmd.Wait()
	c.rdr.Cancel()
	c.pty.Close()
	delete(d.children, id)
	code := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			return t.SetResult(tcl.RetError, "9wait: ERROR "+err.Error())
		}
	}
	return t.SetResult(tcl.RetOk, strconv.Itoa(code))
}

// cmdRecv implements "9recv id": returns (and clears) the output a
// forked child has produced since the last 9recv. Distinct from the
// host package's "9read", which reads from an opened file channel
// rather than a spawned child's output buffer.
func cmdRecv(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return t.SetResult(tcl.RetError, "9recv id")
	}
	d := getData(t)
	c, ok := d.children[args[1]]
	if !ok {
		return t.SetResult(tcl.RetError, "9recv: no such child "+args[1])
	}
	c.mu.Lock()
	out := c.buf.String()
	c.buf.Reset()
	c.mu.Unlock()
	return t.SetResult(tcl.RetOk, out)
}

// cmdSleep implements "9sleep seconds", a cooperative blocking point
// alongside host I/O.
func cmdSleep(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return t.SetResult(tcl.RetError, "9sleep seconds")
	}
	n := tcl.AtoiLax(args[1])
	time.Sleep(time.Duration(n) * time.Second)
	return t.SetResult(tcl.RetOk, "")
}
