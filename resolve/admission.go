package resolve

import (
	"fmt"
	"slices"

	"github.com/gogpu/spvfront/spirv"
)

// implementedCapabilities is the allowlist every enabled capability must
// belong to. Tessellation, geometry, kernels and most optional features
// are absent.
var implementedCapabilities = map[spirv.Capability]bool{
	spirv.CapabilityMatrix:                      true,
	spirv.CapabilityShader:                      true,
	spirv.CapabilityFloat64:                     true,
	spirv.CapabilityInt64:                       true,
	spirv.CapabilityInt16:                       true,
	spirv.CapabilityInt8:                        true,
	spirv.CapabilityClipDistance:                true,
	spirv.CapabilityCullDistance:                true,
	spirv.CapabilityImageGatherExtended:         true,
	spirv.CapabilityStorageImageExtendedFormats: true,
	spirv.CapabilityImageQuery:                  true,
	spirv.CapabilityDerivativeControl:           true,
	spirv.CapabilityInputAttachment:             true,
	spirv.CapabilitySampled1D:                   true,
	spirv.CapabilityImage1D:                     true,
	spirv.CapabilitySampledBuffer:               true,
	spirv.CapabilityImageBuffer:                 true,
	spirv.CapabilitySampledCubeArray:            true,
	spirv.CapabilityImageCubeArray:              true,
	spirv.CapabilityMinLod:                      true,
	spirv.CapabilityDrawParameters:              true,
}

// Implemented reports whether c is on the allowlist.
func Implemented(c spirv.Capability) bool {
	return implementedCapabilities[c]
}

// CapabilityClosure returns seed plus everything it transitively
// requires, sorted. The result does not depend on seed order.
func CapabilityClosure(seed ...spirv.Capability) []spirv.Capability {
	set := NewCapabilitySet(func(spirv.Capability) bool { return true })
	for _, c := range seed {
		set.add(c)
	}
	return set.List()
}

// CapabilitySet is the closed set of enabled capabilities of a stage.
type CapabilitySet struct {
	enabled     map[spirv.Capability]bool
	order       []spirv.Capability // insertion order
	implemented func(spirv.Capability) bool
}

// NewCapabilitySet creates an empty set checked against implemented.
// A nil implemented uses the package allowlist.
func NewCapabilitySet(implemented func(spirv.Capability) bool) *CapabilitySet {
	if implemented == nil {
		implemented = Implemented
	}
	return &CapabilitySet{
		enabled:     make(map[spirv.Capability]bool),
		implemented: implemented,
	}
}

// add runs the work-list closure from c.
func (cs *CapabilitySet) add(c spirv.Capability) {
	work := []spirv.Capability{c}
	for len(work) > 0 {
		next := work[len(work)-1]
		work = work[:len(work)-1]
		if cs.enabled[next] {
			continue
		}
		cs.enabled[next] = true
		cs.order = append(cs.order, next)
		work = append(work, next.Requires()...)
	}
}

// Enable adds c and its dependencies, then checks the whole set against
// the allowlist. The first capability outside it, in the order the
// capabilities were enabled, is reported.
func (cs *CapabilitySet) Enable(c spirv.Capability) error {
	cs.add(c)
	for _, e := range cs.order {
		if !cs.implemented(e) {
			return fmt.Errorf("%w: %s", ErrCapabilityNotImplemented, e)
		}
	}
	return nil
}

// Has reports whether c is enabled.
func (cs *CapabilitySet) Has(c spirv.Capability) bool {
	return cs.enabled[c]
}

// Len returns the number of enabled capabilities.
func (cs *CapabilitySet) Len() int {
	return len(cs.order)
}

// List returns the enabled capabilities sorted by value.
func (cs *CapabilitySet) List() []spirv.Capability {
	list := slices.Clone(cs.order)
	slices.Sort(list)
	return list
}

// extInstSets is scanned in order by OpExtInstImport. The Unknown entry
// is a sentinel and never matches.
var extInstSets = []struct {
	kind ExtInstSetKind
	name string
}{
	{ExtInstSetUnknown, ""},
	{ExtInstSetGLSLStd450, spirv.ExtInstSetGLSLStd450},
	{ExtInstSetOpenCLStd, spirv.ExtInstSetOpenCLStd},
}

// lookupExtInstSet matches an import name against the known sets.
func lookupExtInstSet(name string) (ExtInstSetKind, bool) {
	for _, s := range extInstSets {
		if s.kind == ExtInstSetUnknown {
			continue
		}
		if s.name == name {
			return s.kind, true
		}
	}
	return ExtInstSetUnknown, false
}
