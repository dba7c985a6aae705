package resolve

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/spvfront/spirv"
)

func TestCapabilityClosure(t *testing.T) {
	tests := []struct {
		name string
		seed []spirv.Capability
		want []spirv.Capability
	}{
		{"empty", nil, nil},
		{"matrix", []spirv.Capability{spirv.CapabilityMatrix}, []spirv.Capability{spirv.CapabilityMatrix}},
		{
			"shader",
			[]spirv.Capability{spirv.CapabilityShader},
			[]spirv.Capability{spirv.CapabilityMatrix, spirv.CapabilityShader},
		},
		{
			"image cube array",
			[]spirv.Capability{spirv.CapabilityImageCubeArray},
			[]spirv.Capability{
				spirv.CapabilityMatrix, spirv.CapabilityShader,
				spirv.CapabilityImageCubeArray, spirv.CapabilitySampledCubeArray,
			},
		},
		{
			"image 1D",
			[]spirv.Capability{spirv.CapabilityImage1D},
			[]spirv.Capability{spirv.CapabilitySampled1D, spirv.CapabilityImage1D},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CapabilityClosure(tt.seed...)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapabilityClosure_OrderIndependent(t *testing.T) {
	seeds := [][]spirv.Capability{
		{spirv.CapabilityImageCubeArray, spirv.CapabilityShader, spirv.CapabilityInt64},
		{spirv.CapabilityInt64, spirv.CapabilityImageCubeArray, spirv.CapabilityShader},
		{spirv.CapabilityShader, spirv.CapabilityInt64, spirv.CapabilityImageCubeArray},
		{spirv.CapabilityInt64, spirv.CapabilitySampledCubeArray, spirv.CapabilityImageCubeArray, spirv.CapabilityMatrix},
	}
	want := CapabilityClosure(seeds[0]...)
	for _, seed := range seeds[1:] {
		if got := CapabilityClosure(seed...); !slices.Equal(got, want) {
			t.Errorf("CapabilityClosure(%v) = %v, want %v", seed, got, want)
		}
	}
}

func TestCapabilityClosure_Transitive(t *testing.T) {
	for _, c := range []spirv.Capability{
		spirv.CapabilityImageCubeArray,
		spirv.CapabilityTessellationPointSize,
		spirv.CapabilityImageBuffer,
		spirv.CapabilityInt64Atomics,
	} {
		closure := CapabilityClosure(c)
		for _, member := range closure {
			for _, dep := range member.Requires() {
				if !slices.Contains(closure, dep) {
					t.Errorf("closure of %s has %s but not its dependency %s", c, member, dep)
				}
			}
		}
	}
}

func TestCapabilitySet_Enable(t *testing.T) {
	cs := NewCapabilitySet(nil)
	if err := cs.Enable(spirv.CapabilityImageCubeArray); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	for _, c := range []spirv.Capability{
		spirv.CapabilityImageCubeArray, spirv.CapabilitySampledCubeArray,
		spirv.CapabilityShader, spirv.CapabilityMatrix,
	} {
		if !cs.Has(c) {
			t.Errorf("%s not enabled", c)
		}
	}
	if cs.Len() != 4 {
		t.Errorf("Len: got %d, want 4", cs.Len())
	}

	// Enabling again changes nothing.
	if err := cs.Enable(spirv.CapabilityShader); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if cs.Len() != 4 {
		t.Errorf("Len after re-enable: got %d, want 4", cs.Len())
	}
}

func TestCapabilitySet_RejectsDirect(t *testing.T) {
	tests := []spirv.Capability{
		spirv.CapabilityTessellation,
		spirv.CapabilityGeometry,
		spirv.CapabilityKernel,
		spirv.CapabilityAddresses,
	}
	for _, c := range tests {
		t.Run(c.String(), func(t *testing.T) {
			err := NewCapabilitySet(nil).Enable(c)
			if !errors.Is(err, ErrCapabilityNotImplemented) {
				t.Fatalf("got %v, want ErrCapabilityNotImplemented", err)
			}
			if want := "capability not implemented: " + c.String(); err.Error() != want {
				t.Errorf("message: got %q, want %q", err, want)
			}
		})
	}
}

func TestCapabilitySet_RejectsTransitive(t *testing.T) {
	// ImageCubeArray is allowed on its own but requires SampledCubeArray,
	// which is not.
	allow := func(c spirv.Capability) bool {
		switch c {
		case spirv.CapabilityImageCubeArray, spirv.CapabilityShader, spirv.CapabilityMatrix:
			return true
		}
		return false
	}

	cs := NewCapabilitySet(allow)
	if err := cs.Enable(spirv.CapabilityShader); err != nil {
		t.Fatalf("Enable(Shader): %v", err)
	}
	err := cs.Enable(spirv.CapabilityImageCubeArray)
	if !errors.Is(err, ErrCapabilityNotImplemented) {
		t.Fatalf("got %v, want ErrCapabilityNotImplemented", err)
	}
	if want := "capability not implemented: SampledCubeArray"; err.Error() != want {
		t.Errorf("message: got %q, want %q", err, want)
	}
}

func TestImplemented(t *testing.T) {
	for _, c := range CapabilityClosure(spirv.CapabilityImageCubeArray, spirv.CapabilityImageBuffer, spirv.CapabilityImage1D) {
		if !Implemented(c) {
			t.Errorf("%s should be implemented", c)
		}
	}
	if Implemented(spirv.CapabilityTessellation) {
		t.Error("Tessellation should not be implemented")
	}
}

func TestLookupExtInstSet(t *testing.T) {
	tests := []struct {
		name string
		want ExtInstSetKind
		ok   bool
	}{
		{"GLSL.std.450", ExtInstSetGLSLStd450, true},
		{"OpenCL.std", ExtInstSetOpenCLStd, true},
		{"", ExtInstSetUnknown, false},
		{"glsl.std.450", ExtInstSetUnknown, false},
		{"NonSemantic.DebugPrintf", ExtInstSetUnknown, false},
	}
	for _, tt := range tests {
		got, ok := lookupExtInstSet(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("lookupExtInstSet(%q) = (%d, %v), want (%d, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
