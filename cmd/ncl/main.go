/*
 * ncl  interactive/script runner for the tcl interpreter.
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

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"

	"github.com/rcornwell/ncl/host"
	"github.com/rcornwell/ncl/process"
	"github.com/rcornwell/ncl/repl"
	"github.com/rcornwell/ncl/tcl"
)

func main() {
	level := zerolog.WarnLevel
	if os.Getenv("NCL_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Str("component", "ncl").Timestamp().Logger()

	interp := tcl.NewInterpreter()
	interp.Log = logger
	interp.SetVarValue("argv0", os.Args[0])
	interp.SetVarValue("argc", "0")
	interp.SetVarValue("argv", "")

	host.Init(interp)
	process.Init(interp)

	// A script file argument runs non-interactively.
	if len(os.Args) > 1 {
		runScript(interp, os.Args[1], os.Args[2:])
		return
	}

	runRepl(interp)
}

func runScript(interp *tcl.Interpreter, path string, rest []string) {
	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	interp.SetVarValue("argv0", path)
	interp.SetVarValue("argv", strings.Join(rest, " "))
	interp.SetVarValue("argc", strconv.Itoa(len(rest)))

	err = interp.EvalString(string(text))
	switch {
	case errors.Is(err, tcl.ErrExit):
		code, _ := strconv.Atoi(interp.GetResult())
		os.Exit(code)
	case errors.Is(err, tcl.ErrError):
		fmt.Fprintln(os.Stderr, "Error: "+interp.GetResult())
		os.Exit(1)
	}
}

func runRepl(interp *tcl.Interpreter) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(false)
	line.SetMultiLineMode(true)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt)
	go func() {
		<-done
		line.Close()
		fmt.Println("^C abort")
		os.Exit(0)
	}()

outer:
	for {
		multi := true
		command := ""
		for multi {
			prompt := "ncl> "
			if command != "" {
				prompt = "ncl# "
			}
			raw, err := line.Prompt(prompt)
			if err != nil {
				if errors.Is(err, liner.ErrPromptAborted) {
					fmt.Println("^C")
				} else {
					fmt.Println(err.Error())
				}
				break outer
			}
			raw = repl.Rewrite(raw)
			if raw == "" {
				continue
			}
			if strings.HasSuffix(raw, `\`) {
				command += raw[:len(raw)-1] + "\n"
			} else {
				command += raw
				multi = false
			}
		}

		line.AppendHistory(command)
		err := interp.EvalString(command)
		switch {
		case errors.Is(err, tcl.ErrExit):
			code, _ := strconv.Atoi(interp.GetResult())
			line.Close()
			os.Exit(code)
		case err != nil:
			fmt.Println(" ERROR: " + interp.GetResult())
		case interp.GetResult() != "":
			fmt.Println("=> " + interp.GetResult())
		}
	}
}
