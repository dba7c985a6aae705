package spirv

import (
	"bytes"
	"fmt"

	spvlib "github.com/vs-ude/spirv"
)

// FromLibrary encodes a module assembled with github.com/vs-ude/spirv and
// parses the result, so code generators built on that package can feed
// the front end without writing a file.
func FromLibrary(name string, lm *spvlib.Module) (*Module, error) {
	var buf bytes.Buffer
	if err := lm.Save(&buf); err != nil {
		return nil, fmt.Errorf("%s: encode: %w", name, err)
	}
	return Parse(name, buf.Bytes())
}
