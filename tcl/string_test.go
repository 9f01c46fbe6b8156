/*
 * TCL  string, codec and pattern-match tests.
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

import "testing"

func TestStringCommands(t *testing.T) {
	runCases(t, []evalCase{
		{name: "slength", script: "slength abcdef", result: "6"},
		{name: "sindex", script: "sindex abcdef 2", result: "c"},
		{name: "srange_clamped_low", script: "srange abc -5 100", result: "abc"},
		{name: "srange", script: "srange abcdef 1 3", result: "bcd"},
		{name: "supper", script: "supper abc", result: "ABC"},
		{name: "slower", script: "slower ABC", result: "abc"},
		{name: "smatch_glob", script: "smatch a*c abc", result: "1"},
		{name: "smatch_no_match", script: "smatch a*d abc", result: "0"},
		{name: "regexp_match", script: `regexp {^a.c$} abc`, result: "1"},
	})
}

func TestExplodeImplodeRoundTrip(t *testing.T) {
	it := NewInterpreter()
	if err := it.EvalString("explode hello"); err != nil {
		t.Fatalf("explode failed: %s", it.GetResult())
	}
	exploded := it.GetResult()
	if err := it.EvalString("implode {" + exploded + "}"); err != nil {
		t.Fatalf("implode failed: %s", it.GetResult())
	}
	if it.GetResult() != "hello" {
		t.Errorf("implode [explode hello] = %q, want %q", it.GetResult(), "hello")
	}
}

func TestMatchGlob(t *testing.T) {
	cases := []struct {
		pattern, target string
		want            int
	}{
		{"*", "anything", 1},
		{"a?c", "abc", 1},
		{"a?c", "ac", 0},
		{"[abc]x", "bx", 1},
		{"[a-c]x", "bx", 1},
		{"[a-c]x", "dx", 0},
	}
	for _, c := range cases {
		got := Match(c.pattern, c.target, false, len(c.target)+1)
		if got != c.want {
			t.Errorf("Match(%q, %q) = %d, want %d", c.pattern, c.target, got, c.want)
		}
	}
}

func TestInfoCommands(t *testing.T) {
	it := NewInterpreter()
	if err := it.EvalString("proc greet name {return hi}"); err != nil {
		t.Fatalf("proc failed: %s", it.GetResult())
	}
	if err := it.EvalString("info procs"); err != nil {
		t.Fatalf("info procs failed: %s", it.GetResult())
	}
	procs := splitList(it.GetResult())
	found := false
	for _, p := range procs {
		if p == "greet" {
			found = true
		}
	}
	if !found {
		t.Errorf("info procs = %v, expected to contain greet", procs)
	}

	if err := it.EvalString("info exists nosuchvar"); err != nil || it.GetResult() != "0" {
		t.Fatalf("info exists nosuchvar = %q, err %v", it.GetResult(), err)
	}
}
