/*
 * TCL  list codec tests.
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
	"reflect"
	"testing"
)

func TestSplitListRoundTrip(t *testing.T) {
	cases := [][]string{
		{"a", "b", "c"},
		{},
		{""},
		{"a b", "c"},
		{"{braced}"},
	}
	for _, elems := range cases {
		joined := joinList(elems)
		got := splitList(joined)
		if len(elems) == 0 {
			elems = nil
		}
		if !reflect.DeepEqual(got, elems) {
			t.Errorf("round trip %v -> %q -> %v", elems, joined, got)
		}
	}
}

func TestListCommands(t *testing.T) {
	runCases(t, []evalCase{
		{name: "list_index", script: "lindex [list a b c] 0", result: "a"},
		{name: "list_length", script: "llength [list a b c]", result: "3"},
		{name: "list_range", script: "lrange [list a b c d] 1 2", result: "b c"},
		{name: "lappend_new", script: "lappend xs a b; set xs", result: "a b"},
	})
}

func TestSplitKeepsTrailingEmpty(t *testing.T) {
	it := NewInterpreter()
	if err := it.EvalString(`split "a,b,," ","`); err != nil {
		t.Fatalf("split failed: %s", it.GetResult())
	}
	elems := splitList(it.GetResult())
	if len(elems) != 4 || elems[3] != "" {
		t.Errorf("split a,b,, , = %v, want 4 elements ending empty", elems)
	}
}

func TestSplitWhitespaceDropsEmpties(t *testing.T) {
	it := NewInterpreter()
	if err := it.EvalString(`split "  a  b "`); err != nil {
		t.Fatalf("split failed: %s", it.GetResult())
	}
	if it.GetResult() != "a b" {
		t.Errorf("whitespace split = %q, want %q", it.GetResult(), "a b")
	}
}

func TestJoinNoDelim(t *testing.T) {
	it := NewInterpreter()
	if err := it.EvalString("join [list a b c]"); err != nil {
		t.Fatalf("join failed: %s", it.GetResult())
	}
	if it.GetResult() != "abc" {
		t.Errorf("join without delim = %q, want %q", it.GetResult(), "abc")
	}
}
