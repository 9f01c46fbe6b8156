/*
 * host  file and path services bridge for the tcl interpreter.
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

// Package host adapts the interpreter's numbered "9*" host-service
// commands and the Tcl-flavored "file" dispatcher onto the real
// filesystem. The core package uses "os" only for its default Stdout;
// all file and path access lives here, keeping the host-services
// boundary concrete.
package host

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rcornwell/ncl/tcl"
)

// data is the extension-owned state stashed in Interpreter.Data["host"]:
// the table of channels opened by 9open/9create, keyed by the channel
// name returned to the script, plus a lazily-created buffered reader
// per channel so 9read and 9readln can share one read position.
type data struct {
	channels map[string]*os.File
	readers  map[string]*bufio.Reader
	nextID   int
}

// reader returns the cached buffered reader for name, creating one the
// first time a channel is read from.
func (d *data) reader(name string) *bufio.Reader {
	if r, ok := d.readers[name]; ok {
		return r
	}
	r := bufio.NewReader(d.channels[name])
	d.readers[name] = r
	return r
}

// Init registers every host-bridge command against t. Call it once per
// Interpreter that needs filesystem access; an Interpreter used purely
// as an embedded expression evaluator need not call it at all.
func Init(t *tcl.Interpreter) {
	d := &data{channels: make(map[string]*os.File), readers: make(map[string]*bufio.Reader)}
	d.channels["stdin"] = os.Stdin
	d.channels["stdout"] = os.Stdout
	d.channels["stderr"] = os.Stderr
	t.Data["host"] = d

	t.Register("9open", nil, false, cmdOpen)
	t.Register("9create", nil, false, cmdCreate)
	t.Register("9close", nil, false, cmdClose)
	t.Register("9delete", nil, false, cmdDelete)
	t.Register("9chgdir", nil, false, cmdChgdir)
	t.Register("9dup", nil, false, cmdDup)
	t.Register("9read", nil, false, cmdRead)
	t.Register("9readln", nil, false, cmdReadLn)
	t.Register("9writln", nil, false, cmdWritLn)
	t.Register("file", nil, false, cmdFile)
}

func getData(t *tcl.Interpreter) *data {
	d, ok := t.Data["host"].(*data)
	if !ok {
		panic("host.Init was not called on this interpreter")
	}
	return d
}

// hostError maps a Go error from an os/path call to a small integer
// code: 0 success is never reached here (callers only call this on a
// non-nil error). 2 is "not found", 13 is "permission denied"
// (matching the familiar Unix errno values), 17 is "already exists",
// and anything else collapses to 1, a generic failure.
func hostError(err error) int {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return 2
	case errors.Is(err, fs.ErrPermission):
		return 13
	case errors.Is(err, fs.ErrExist):
		return 17
	default:
		return 1
	}
}

// fail translates a host error into the "<cmdname>: ERROR <code>"
// message the core's error-decoration rule expects.
func fail(t *tcl.Interpreter, name string, err error) int {
	return t.SetResult(tcl.RetError, name+": ERROR "+strconv.Itoa(hostError(err)))
}

var openModes = map[string]int{
	"r":  os.O_RDONLY,
	"r+": os.O_RDWR,
	"w":  os.O_WRONLY | os.O_TRUNC,
	"w+": os.O_RDWR | os.O_TRUNC,
	"a":  os.O_WRONLY | os.O_APPEND,
	"a+": os.O_RDWR | os.O_APPEND,
}

// cmdOpen implements "9open name ?mode" -> channel id, opening an
// existing file (mode defaults to "r").
func cmdOpen(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) != 2 && len(args) != 3 {
		return t.SetResult(tcl.RetError, "9open name ?mode")
	}
	mode := "r"
	if len(args) == 3 {
		mode = args[2]
	}
	flag, ok := openModes[mode]
	if !ok {
		return t.SetResult(tcl.RetError, "9open: invalid mode "+mode)
	}
	f, err := os.OpenFile(args[1], flag, 0o644)
	if err != nil {
		return fail(t, "9open", err)
	}
	return registerChannel(t, f)
}

// cmdCreate implements "9create name ?perm" -> channel id, creating or
// truncating the named file.
func cmdCreate(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) != 2 && len(args) != 3 {
		return t.SetResult(tcl.RetError, "9create name ?perm")
	}
	perm := os.FileMode(0o644)
	if len(args) == 3 {
		perm = os.FileMode(tcl.AtoiLax(args[2]))
	}
	f, err := os.OpenFile(args[1], os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fail(t, "9create", err)
	}
	return registerChannel(t, f)
}

func registerChannel(t *tcl.Interpreter, f *os.File) int {
	d := getData(t)
	d.nextID++
	name := "chan" + strconv.Itoa(d.nextID)
	d.channels[name] = f
	return t.SetResult(tcl.RetOk, name)
}

// cmdClose implements "9close channel".
func cmdClose(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return t.SetResult(tcl.RetError, "9close channel")
	}
	d := getData(t)
	f, ok := d.channels[args[1]]
	if !ok {
		return t.SetResult(tcl.RetError, "9close: no such channel "+args[1])
	}
	if err := f.Close(); err != nil {
		return fail(t, "9close", err)
	}
	delete(d.channels, args[1])
	delete(d.readers, args[1])
	return t.SetResult(tcl.RetOk, "")
}

// cmdDelete implements "9delete name".
func cmdDelete(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return t.SetResult(tcl.RetError, "9delete name")
	}
	if err := os.Remove(args[1]); err != nil {
		return fail(t, "9delete", err)
	}
	return t.SetResult(tcl.RetOk, "")
}

// cmdChgdir implements "9chgdir dir".
func cmdChgdir(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return t.SetResult(tcl.RetError, "9chgdir dir")
	}
	if err := os.Chdir(args[1]); err != nil {
		return fail(t, "9chgdir", err)
	}
	return t.SetResult(tcl.RetOk, "")
}

// cmdDup implements "9dup channel" -> a second channel id sharing the
// same underlying OS file descriptor, via Fd()+NewFile (os.File has no
// portable dup, so this wraps the same descriptor in a second *os.File
// rather than duplicating it).
func cmdDup(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) != 2 {
		return t.SetResult(tcl.RetError, "9dup channel")
	}
	d := getData(t)
	f, ok := d.channels[args[1]]
	if !ok {
		return t.SetResult(tcl.RetError, "9dup: no such channel "+args[1])
	}
	dupped := os.NewFile(f.Fd(), f.Name())
	return registerChannel(t, dupped)
}

// cmdRead implements "9read channel n": reads up to n bytes from the
// channel and returns them as a space-separated list of decimal byte
// values, the same byte-as-list convention "explode" uses.
func cmdRead(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return t.SetResult(tcl.RetError, "9read channel n")
	}
	d := getData(t)
	if _, ok := d.channels[args[1]]; !ok {
		return t.SetResult(tcl.RetError, "9read: no such channel "+args[1])
	}
	n := tcl.AtoiLax(args[2])
	if n <= 0 {
		return t.SetResult(tcl.RetOk, "")
	}
	buf := make([]byte, n)
	got, err := d.reader(args[1]).Read(buf)
	if err != nil && err != io.EOF {
		return fail(t, "9read", err)
	}
	words := make([]string, got)
	for i, b := range buf[:got] {
		words[i] = strconv.Itoa(int(b))
	}
	return t.SetResult(tcl.RetOk, strings.Join(words, " "))
}

// cmdReadLn implements "9readln channel var": reads one line (up to
// and including the trailing newline, which is stripped) from the
// channel into var, and returns the number of bytes read.
func cmdReadLn(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return t.SetResult(tcl.RetError, "9readln channel var")
	}
	d := getData(t)
	if _, ok := d.channels[args[1]]; !ok {
		return t.SetResult(tcl.RetError, "9readln: no such channel "+args[1])
	}
	line, err := d.reader(args[1]).ReadString('\n')
	if err != nil && err != io.EOF {
		return fail(t, "9readln", err)
	}
	n := len(line)
	line = strings.TrimRight(line, "\r\n")
	t.SetVarValue(args[2], line)
	return t.SetResult(tcl.RetOk, strconv.Itoa(n))
}

// cmdWritLn implements "9writln channel string": writes string
// followed by a newline to the channel.
func cmdWritLn(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) != 3 {
		return t.SetResult(tcl.RetError, "9writln channel string")
	}
	d := getData(t)
	f, ok := d.channels[args[1]]
	if !ok {
		return t.SetResult(tcl.RetError, "9writln: no such channel "+args[1])
	}
	if _, err := f.WriteString(args[2] + "\n"); err != nil {
		return fail(t, "9writln", err)
	}
	return t.SetResult(tcl.RetOk, "")
}

// fileFuncs dispatches "file <subcommand> ..." fanning out to one
// function per subcommand rather than one mega-switch.
var fileFuncs = map[string]func(*tcl.Interpreter, []string) int{
	"atime":       fileStat,
	"cwd":         fileCwd,
	"delete":      fileDeleteSub,
	"dir":         fileDir,
	"dirname":     filePath,
	"executable":  fileStat,
	"exists":      fileStat,
	"extension":   filePath,
	"isdirectory": fileStat,
	"isfile":      fileStat,
	"join":        fileJoin,
	"mkdir":       fileMkdir,
	"pwd":         filePwd,
	"readable":    fileAccess,
	"rename":      fileRename,
	"rootname":    filePath,
	"separator":   fileSeparator,
	"size":        fileStat,
	"split":       filePath,
	"tail":        filePath,
	"type":        fileStat,
	"writable":    fileAccess,
}

// cmdFile implements the "file <subcommand> ..." dispatcher.
func cmdFile(t *tcl.Interpreter, args []string, _ []string) int {
	if len(args) < 2 {
		return t.SetResult(tcl.RetError, "file subcommand ?args")
	}
	fn, ok := fileFuncs[args[1]]
	if !ok {
		return t.SetResult(tcl.RetError, "file: unknown subcommand "+args[1])
	}
	return fn(t, args)
}

// fileStat backs the subcommands that report a boolean/numeric fact
// about a single path: atime, executable, exists, isdirectory, isfile,
// size, type.
func fileStat(t *tcl.Interpreter, args []string) int {
	if len(args) != 3 {
		return t.SetResult(tcl.RetError, "file "+args[1]+" name")
	}
	info, err := os.Lstat(args[2])
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fail(t, "file "+args[1], err)
	}
	switch args[1] {
	case "atime":
		if !exists {
			return t.SetResult(tcl.RetOk, "0")
		}
		return t.SetResult(tcl.RetOk, strconv.FormatInt(info.ModTime().Unix(), 10))
	case "exists":
		return t.SetResult(tcl.RetOk, boolStr(exists))
	case "isdirectory":
		return t.SetResult(tcl.RetOk, boolStr(exists && info.IsDir()))
	case "isfile":
		return t.SetResult(tcl.RetOk, boolStr(exists && info.Mode().IsRegular()))
	case "size":
		if !exists {
			return t.SetResult(tcl.RetOk, "0")
		}
		return t.SetResult(tcl.RetOk, strconv.FormatInt(info.Size(), 10))
	case "executable":
		return t.SetResult(tcl.RetOk, boolStr(exists && info.Mode().IsRegular() && info.Mode()&0o111 != 0))
	case "type":
		if !exists {
			return t.SetResult(tcl.RetOk, "")
		}
		return t.SetResult(tcl.RetOk, fileTypeName(info.Mode()))
	}
	return t.SetResult(tcl.RetError, "file: unreachable subcommand "+args[1])
}

func fileTypeName(mode fs.FileMode) string {
	switch {
	case mode.IsDir():
		return "directory"
	case mode&fs.ModeSymlink != 0:
		return "link"
	case mode&fs.ModeNamedPipe != 0:
		return "fifo"
	case mode&fs.ModeDevice != 0:
		return "blockSpecial"
	case mode.IsRegular():
		return "file"
	default:
		return "unknown"
	}
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// filePath backs dirname/extension/rootname/split/tail.
func filePath(t *tcl.Interpreter, args []string) int {
	if len(args) != 3 {
		return t.SetResult(tcl.RetError, "file "+args[1]+" name")
	}
	name := args[2]
	switch args[1] {
	case "dirname":
		return t.SetResult(tcl.RetOk, filepath.Dir(name))
	case "extension":
		return t.SetResult(tcl.RetOk, filepath.Ext(name))
	case "rootname":
		ext := filepath.Ext(name)
		return t.SetResult(tcl.RetOk, strings.TrimSuffix(name, ext))
	case "split":
		parts := strings.Split(filepath.Clean(name), string(filepath.Separator))
		return t.SetResult(tcl.RetOk, strings.Join(parts, " "))
	case "tail":
		return t.SetResult(tcl.RetOk, filepath.Base(name))
	}
	return t.SetResult(tcl.RetError, "file: unreachable subcommand "+args[1])
}

// fileJoin implements "file join name ?name...".
func fileJoin(t *tcl.Interpreter, args []string) int {
	if len(args) < 3 {
		return t.SetResult(tcl.RetError, "file join name ?name...")
	}
	return t.SetResult(tcl.RetOk, filepath.Join(args[2:]...))
}

// fileCwd implements "file cwd dir" (change directory).
func fileCwd(t *tcl.Interpreter, args []string) int {
	if len(args) != 3 {
		return t.SetResult(tcl.RetError, "file cwd dir")
	}
	if err := os.Chdir(args[2]); err != nil {
		return fail(t, "file cwd", err)
	}
	return t.SetResult(tcl.RetOk, "")
}

// filePwd implements "file pwd".
func filePwd(t *tcl.Interpreter, args []string) int {
	if len(args) != 2 {
		return t.SetResult(tcl.RetError, "file pwd")
	}
	dir, err := os.Getwd()
	if err != nil {
		return fail(t, "file pwd", err)
	}
	return t.SetResult(tcl.RetOk, dir)
}

// fileMkdir implements "file mkdir dir ?dir...".
func fileMkdir(t *tcl.Interpreter, args []string) int {
	if len(args) < 3 {
		return t.SetResult(tcl.RetError, "file mkdir dir ?dir...")
	}
	for _, d := range args[2:] {
		if err := os.MkdirAll(d, 0o750); err != nil {
			return fail(t, "file mkdir", err)
		}
	}
	return t.SetResult(tcl.RetOk, "")
}

// fileDir implements "file dir ?-all ?dir" -> list of entry names.
func fileDir(t *tcl.Interpreter, args []string) int {
	i := 2
	all := false
	if i < len(args) && args[i] == "-all" {
		all = true
		i++
	}
	dir := "."
	if i < len(args) {
		dir = args[i]
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fail(t, "file dir", err)
	}
	var names []string
	for _, e := range entries {
		if all || e.Name()[0] != '.' {
			names = append(names, e.Name())
		}
	}
	return t.SetResult(tcl.RetOk, strings.Join(names, " "))
}

// fileRename implements "file rename ?-force source target".
func fileRename(t *tcl.Interpreter, args []string) int {
	i := 2
	force := false
	if i < len(args) && args[i] == "-force" {
		force = true
		i++
	}
	if len(args) != i+2 {
		return t.SetResult(tcl.RetError, "file rename ?-force source target")
	}
	source, target := args[i], args[i+1]
	if _, err := os.Stat(target); err == nil && !force {
		return t.SetResult(tcl.RetError, "file rename: target exists")
	}
	if err := os.Rename(source, target); err != nil {
		return fail(t, "file rename", err)
	}
	return t.SetResult(tcl.RetOk, "")
}

// fileDeleteSub implements "file delete ?-force name ?name...".
func fileDeleteSub(t *tcl.Interpreter, args []string) int {
	i := 2
	if i < len(args) && args[i] == "-force" {
		i++
	}
	if i >= len(args) {
		return t.SetResult(tcl.RetError, "file delete ?-force name ?name...")
	}
	for _, name := range args[i:] {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fail(t, "file delete", err)
		}
	}
	return t.SetResult(tcl.RetOk, "")
}

// fileSeparator implements "file separator".
func fileSeparator(t *tcl.Interpreter, args []string) int {
	if len(args) != 2 {
		return t.SetResult(tcl.RetError, "file separator")
	}
	return t.SetResult(tcl.RetOk, string(filepath.Separator))
}

// fileAccess implements "file readable name" / "file writable name".
func fileAccess(t *tcl.Interpreter, args []string) int {
	if len(args) != 3 {
		return t.SetResult(tcl.RetError, "file "+args[1]+" name")
	}
	flag := os.O_RDONLY
	if args[1] == "writable" {
		flag = os.O_WRONLY
	}
	f, err := os.OpenFile(args[2], flag, 0o666)
	if err != nil {
		return t.SetResult(tcl.RetOk, "0")
	}
	f.Close()
	return t.SetResult(tcl.RetOk, "1")
}
