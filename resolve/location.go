package resolve

import (
	"fmt"
	"strings"

	"github.com/gogpu/spvfront/spirv"
)

// Location is a materialized source position for diagnostics. File is
// empty and HasLine false when the module carries no line information
// for the instruction.
type Location struct {
	Module  string
	File    string
	Line    uint32
	Column  uint32
	HasLine bool
	Index   spirv.InstructionIndex
}

// String formats the location as "module: file:line:col: word N",
// omitting absent parts.
func (l Location) String() string {
	parts := make([]string, 0, 3)
	if l.Module != "" {
		parts = append(parts, l.Module)
	}
	if l.File != "" {
		if l.HasLine {
			parts = append(parts, fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column))
		} else {
			parts = append(parts, l.File)
		}
	}
	if l.Index != 0 {
		parts = append(parts, l.Index.String())
	}
	return strings.Join(parts, ": ")
}

// locationTracker is the current OpLine state of a stage.
type locationTracker struct {
	file    ID // zero when no OpLine is in effect
	line    uint32
	column  uint32
	hasLine bool
}

func (lt *locationTracker) setLine(file ID, line, column uint32) {
	*lt = locationTracker{file: file, line: line, column: column, hasLine: true}
}

// noLine drops line and column but keeps the file.
func (lt *locationTracker) noLine() {
	lt.line, lt.column, lt.hasLine = 0, 0, false
}

// reset forgets everything; used at block boundaries.
func (lt *locationTracker) reset() {
	*lt = locationTracker{}
}

// Location materializes the current source position for the instruction
// at index. It never fails: a file id that does not name a string is
// simply left out.
func (s *Stage) Location(index spirv.InstructionIndex) Location {
	loc := Location{Module: s.moduleName, Index: index}
	if s.loc.file != 0 {
		if str, ok, err := Lookup[*String](s.ids, s.loc.file); err == nil && ok {
			loc.File = str.Value
		}
	}
	if s.loc.hasLine {
		loc.Line, loc.Column, loc.HasLine = s.loc.line, s.loc.column, true
	}
	return loc
}

// CurrentFile returns the id of the file named by the last OpLine, or
// zero.
func (s *Stage) CurrentFile() ID {
	return s.loc.file
}
