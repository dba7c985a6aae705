package spirv

import (
	"fmt"

	spvlib "github.com/vs-ude/spirv"
)

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// String formats the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// versionToWord converts Version to SPIR-V word format.
func versionToWord(v Version) uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}

// versionFromWord is the inverse of versionToWord.
func versionFromWord(w uint32) Version {
	return Version{Major: uint8(w >> 16), Minor: uint8(w >> 8)}
}

// ID is a result identifier. Valid identifiers are in [1, bound).
type ID = spvlib.Id

// InstructionIndex is the word offset of an instruction's first word,
// counted from the start of the module (the header occupies words 0-4).
type InstructionIndex uint32

// String formats the index the way diagnostics print it.
func (i InstructionIndex) String() string {
	return fmt.Sprintf("word %d", uint32(i))
}

// SPIR-V magic number and constants
const (
	MagicNumber = 0x07230203
	GeneratorID = 0x00000000 // Unregistered generator

	// HeaderWords is the number of words in the module header.
	HeaderWords = 5
)
