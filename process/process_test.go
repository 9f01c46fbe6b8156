/*
 * process  subprocess spawn/wait/sleep tests.
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

package process

import (
	"strings"
	"testing"
	"time"

	"github.com/rcornwell/ncl/tcl"
)

func newTestInterp() *tcl.Interpreter {
	t := tcl.NewInterpreter()
	Init(t)
	return t
}

func TestForkWaitExitCode(t *testing.T) {
	it := newTestInterp()
	if err := it.EvalString(`9fork /bin/true`); err != nil {
		t.Fatalf("9fork failed: %s", it.GetResult())
	}
	id := it.GetResult()
	if err := it.EvalString(`9wait {` + id + `}`); err != nil {
		t.Fatalf("9wait failed: %s", it.GetResult())
	}
	if it.GetResult() != "0" {
		t.Errorf("9wait exit code = %q, want 0", it.GetResult())
	}
}

func TestForkWaitNonZeroExit(t *testing.T) {
	it := newTestInterp()
	if err := it.EvalString(`9fork /bin/false`); err != nil {
		t.Fatalf("9fork failed: %s", it.GetResult())
	}
	id := it.GetResult()
	if err := it.EvalString(`9wait {` + id + `}`); err != nil {
		t.Fatalf("9wait failed: %s", it.GetResult())
	}
	if it.GetResult() == "0" {
		t.Errorf("9wait exit code for /bin/false = %q, want nonzero", it.GetResult())
	}
}

func TestForkReadCapturesOutput(t *testing.T) {
	it := newTestInterp()
	if err := it.EvalString(`9fork /bin/echo hello-from-child`); err != nil {
		t.Fatalf("9fork failed: %s", it.GetResult())
	}
	id := it.GetResult()

	// Give the background drain goroutine a moment to copy the child's
	// pty output before reading it, then reap the child.
	time.Sleep(100 * time.Millisecond)
	if err := it.EvalString(`9recv {` + id + `}`); err != nil {
		t.Fatalf("9recv failed: %s", it.GetResult())
	}
	if !strings.Contains(it.GetResult(), "hello-from-child") {
		t.Errorf("9recv output = %q, want it to contain %q", it.GetResult(), "hello-from-child")
	}
	if err := it.EvalString(`9wait {` + id + `}`); err != nil {
		t.Fatalf("9wait failed: %s", it.GetResult())
	}
}

func TestWaitUnknownChild(t *testing.T) {
	it := newTestInterp()
	if err := it.EvalString(`9wait nosuchchild`); err == nil {
		t.Fatalf("expected 9wait on an unknown child to fail")
	}
}

func TestSleepReturnsAfterDuration(t *testing.T) {
	it := newTestInterp()
	start := time.Now()
	if err := it.EvalString(`9sleep 0`); err != nil {
		t.Fatalf("9sleep failed: %s", it.GetResult())
	}
	if time.Since(start) > time.Second {
		t.Errorf("9sleep 0 took too long: %s", time.Since(start))
	}
}

func TestChainExitsInterpreter(t *testing.T) {
	it := newTestInterp()
	err := it.EvalString(`9chain /bin/true`)
	if err != tcl.ErrExit {
		t.Fatalf("9chain should terminate the interpreter via ErrExit, got %v", err)
	}
	if it.GetResult() != "0" {
		t.Errorf("9chain exit code = %q, want 0", it.GetResult())
	}
}
