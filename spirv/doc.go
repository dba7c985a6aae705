// Package spirv is the wire-level view of SPIR-V modules.
//
// # Decoding
//
// Parse validates the header and converts the byte stream to words,
// swapping big-endian input. A Decoder then walks the instructions:
//
//	m, err := spirv.Parse("shader.spv", data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	dec := spirv.NewDecoder(m)
//	for dec.More() {
//		inst, index, err := dec.Next()
//		if err != nil {
//			log.Fatal(err)
//		}
//		ops := inst.Operands()
//		...
//	}
//
// Operands reads typed operands and records the first truncation, so a
// handler reads every operand and checks Err once.
//
// # Binary Writer
//
// ModuleBuilder constructs modules programmatically. Tooling and tests
// use it to produce input for the decoder:
//
//	builder := spirv.NewModuleBuilder(spirv.Version1_3)
//	builder.AddCapability(spirv.CapabilityShader)
//	builder.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//
//	floatType := builder.AddTypeFloat(32)
//	vec4Type := builder.AddTypeVector(floatType, 4)
//
//	binary := builder.Build()
//
// # Layout
//
// The decoder does not enforce the logical section order; it yields
// instructions in stream order and numbers each one by the word offset
// of its first word. The header occupies words 0 through 4, so the first
// instruction is "word 5". Builder output follows the canonical order:
// capabilities, extensions, extended instruction imports, the memory
// model, entry points and execution modes, debug instructions,
// annotations, types with constants and global variables, then
// function bodies.
//
// # References
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv
