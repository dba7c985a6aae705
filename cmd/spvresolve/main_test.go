package main

import (
	"slices"
	"testing"

	"github.com/gogpu/spvfront/spirv"
)

func TestParseStages(t *testing.T) {
	got, err := parseStages("vertex, Fragment,GLCompute")
	if err != nil {
		t.Fatalf("parseStages: %v", err)
	}
	want := []spirv.ExecutionModel{
		spirv.ExecutionModelVertex, spirv.ExecutionModelFragment, spirv.ExecutionModelGLCompute,
	}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got, err := parseStages(""); err != nil || got != nil {
		t.Errorf("empty list: got %v, %v", got, err)
	}
	if _, err := parseStages("pixel"); err == nil {
		t.Error("expected error for an unknown model")
	}
}
