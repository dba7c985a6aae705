// Package resolve turns a decoded SPIR-V module into a per-stage symbol
// table for code generation.
//
// A Dispatcher routes every instruction to the handler registered by one
// of its HandlerGroups. Handlers define entities in the stage's IDTable,
// record decorations and names, admit capabilities and extensions, and
// keep the current OpLine position for diagnostics:
//
//	stage, err := resolve.Translate(module, spirv.ExecutionModelFragment)
//	if err != nil {
//		var diag *resolve.Error
//		if errors.As(err, &diag) {
//			fmt.Println(diag.Start, diag.Message)
//		}
//		return err
//	}
//	fn, err := resolve.Get[*resolve.Function](stage, id)
//
// Each stage is translated on its own and never shares mutable state
// with another. A stage whose translation failed is discarded; a stage
// that is returned is frozen and read-only.
//
// # Decoration groups
//
// OpDecorationGroup captures the decorations recorded for its result id
// at the point the group is created. Decorations applied to the group id
// later are not propagated by OpGroupDecorate.
package resolve
