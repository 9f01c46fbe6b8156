/*
 * TCL  evaluator tests.
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
	"strings"
	"testing"
)

type evalCase struct {
	name   string
	script string
	result string
	isErr  bool
}

func runCases(t *testing.T, cases []evalCase) {
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			it := NewInterpreter()
			err := it.EvalString(c.script)
			if c.isErr && err == nil {
				t.Fatalf("script %q: expected error, got result %q", c.script, it.GetResult())
			}
			if !c.isErr && err != nil {
				t.Fatalf("script %q: unexpected error %v: %s", c.script, err, it.GetResult())
			}
			if !c.isErr && it.GetResult() != c.result {
				t.Errorf("script %q: got %q, want %q", c.script, it.GetResult(), c.result)
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	runCases(t, []evalCase{
		{name: "add", script: "+ 1 2 3", result: "6"},
		{name: "add_zero_args", script: "+", result: "0"},
		{name: "mul_zero_args", script: "*", result: "1"},
		{name: "sub", script: "- 10 3", result: "7"},
		{name: "div_trunc", script: "/ 7 2", result: "3"},
		{name: "div_trunc_neg", script: "/ -7 2", result: "-3"},
		{name: "mod", script: "% 7 2", result: "1"},
		{name: "lt_true", script: "< 0 1", result: "1"},
		{name: "lt_false", script: "< 1 0", result: "0"},
		{name: "bitand", script: "bitand 6 3", result: "2"},
	})
}

func TestStringCompare(t *testing.T) {
	runCases(t, []evalCase{
		{name: "eq_case_insensitive", script: "eq ABC abc", result: "1"},
		{name: "ne", script: "ne abc abd", result: "1"},
		{name: "lt", script: "lt abc abd", result: "1"},
	})
}

func TestSetAndVariables(t *testing.T) {
	runCases(t, []evalCase{
		{name: "set_write", script: "set x 5", result: "5"},
		{name: "set_read", script: "set x 5; set x", result: "5"},
		{name: "set_unset_read_errors", script: "set z", isErr: true},
		{name: "nested_var_sub", script: "set x 5; set y $x; set y", result: "5"},
		{name: "command_sub", script: "set x [+ 1 2]; set x", result: "3"},
	})
}

func TestControlFlow(t *testing.T) {
	runCases(t, []evalCase{
		{name: "if_true", script: "if {< 0 1} {set r yes} else {set r no}; set r", result: "yes"},
		{name: "if_false", script: "if {< 1 0} {set r yes} else {set r no}; set r", result: "no"},
		{name: "while_break", script: "set i 0; while {< $i 3} {set i [+ $i 1]; if {== $i 2} break}; set i", result: "2"},
		{name: "foreach_accum", script: "set xs {}; foreach i [list 1 2 3 4 5] {lappend xs [* $i $i]}; set xs", result: "1 4 9 16 25"},
		{name: "catch_missing_var", script: "catch {set z} err", result: "1"},
	})
}

func TestCatchSetsVar(t *testing.T) {
	it := NewInterpreter()
	if err := it.EvalString("catch {set z} err"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	errVal, ok := it.GetVarValue("err")
	if !ok {
		t.Fatalf("err variable was not set")
	}
	if errVal == "" {
		t.Errorf("expected err to carry the failed body's result, got empty string")
	}
}

func TestProcedures(t *testing.T) {
	runCases(t, []evalCase{
		{
			name:   "fib",
			script: "proc fib x {if {< $x 2} {return $x}; + [fib [- $x 1]] [fib [- $x 2]]}; fib 10",
			result: "55",
		},
		{
			name:   "varargs",
			script: "proc run args {list got $args}; run a b c",
			result: "got {a b c}",
		},
	})
}

func TestArrays(t *testing.T) {
	it := NewInterpreter()
	for _, script := range []string{"array a x 1", "array a y 2"} {
		if err := it.EvalString(script); err != nil {
			t.Fatalf("script %q failed: %s", script, it.GetResult())
		}
	}
	if err := it.EvalString("array a x"); err != nil || it.GetResult() != "1" {
		t.Fatalf("array a x = %q, err %v", it.GetResult(), err)
	}
	if err := it.EvalString("array a"); err != nil {
		t.Fatalf("array a failed: %v", err)
	}
	keys := splitList(it.GetResult())
	if len(keys) != 2 {
		t.Errorf("expected 2 keys, got %v", keys)
	}
}

func TestUnknownCommand(t *testing.T) {
	it := NewInterpreter()
	err := it.EvalString("nosuchcommand")
	if err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestErrorDecoration(t *testing.T) {
	it := NewInterpreter()
	err := it.EvalString("nosuchcommand")
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := it.GetResult(); !strings.HasSuffix(got, "; in top level") {
		t.Fatalf("expected result decorated with \"; in top level\", got %q", got)
	}
}

func TestAndOr(t *testing.T) {
	runCases(t, []evalCase{
		{name: "and_true", script: "and {== 1 1} {== 2 2}", result: "1"},
		{name: "and_short_circuit", script: "and {== 1 2} {nosuchcommand}", result: "0"},
		{name: "or_true", script: "or {== 1 2} {== 2 2}", result: "1"},
		{name: "or_false", script: "or {== 1 2} {== 3 2}", result: "0"},
	})
}

func TestIncrDecr(t *testing.T) {
	runCases(t, []evalCase{
		{name: "incr_default", script: "set i 1; incr i; set i", result: "2"},
		{name: "incr_amount", script: "set i 1; incr i 5; set i", result: "6"},
		{name: "decr_default", script: "set i 5; decr i; set i", result: "4"},
	})
}

func TestRename(t *testing.T) {
	it := NewInterpreter()
	if err := it.EvalString("rename + plus"); err != nil {
		t.Fatalf("rename failed: %s", it.GetResult())
	}
	if err := it.EvalString("plus 2 3"); err != nil || it.GetResult() != "5" {
		t.Fatalf("plus 2 3 = %q, err %v", it.GetResult(), err)
	}
}

func TestExit(t *testing.T) {
	it := NewInterpreter()
	err := it.EvalString("exit 3")
	if err != ErrExit {
		t.Fatalf("expected ErrExit, got %v", err)
	}
	if it.GetResult() != "3" {
		t.Errorf("exit code = %q, want 3", it.GetResult())
	}
}
