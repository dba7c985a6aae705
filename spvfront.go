// Package spvfront is the decode-and-resolve front end for SPIR-V shader
// modules.
//
// It validates a module's header, admits its capabilities and
// extensions, and resolves every identifier into a per-stage symbol table
// that a code generator can query:
//
//	result, err := spvfront.Resolve(data, spvfront.DefaultOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//	stage, ok := result.Stage(spirv.ExecutionModelFragment)
//
// Stages are independent, so Resolve translates them in parallel. For
// lower-level access use the spirv and resolve packages directly.
package spvfront

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/gogpu/spvfront/resolve"
	"github.com/gogpu/spvfront/spirv"
)

// Options configures resolution.
type Options struct {
	// Name identifies the module in diagnostics (default: "shader").
	Name string

	// Stages lists the execution models to translate. Empty means every
	// model that has an OpEntryPoint.
	Stages []spirv.ExecutionModel

	// Workers bounds how many stages are translated at once (default:
	// number of CPUs). Values below 2 translate sequentially; the shared
	// pool never runs more than one stage per CPU.
	Workers int

	// CollectAll reports every failed stage as resolve.Errors instead of
	// stopping at the first.
	CollectAll bool

	// Logf, if set, receives one line per translated stage.
	Logf func(format string, args ...any)
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Name:    "shader",
		Workers: runtime.NumCPU(),
	}
}

// Result holds the frozen stages of a resolved module.
type Result struct {
	Module *spirv.Module

	stages map[spirv.ExecutionModel]*resolve.Stage
	models []spirv.ExecutionModel
}

// Stage returns the stage translated for model.
func (r *Result) Stage(model spirv.ExecutionModel) (*resolve.Stage, bool) {
	s, ok := r.stages[model]
	return s, ok
}

// Models returns the translated execution models in request order.
func (r *Result) Models() []spirv.ExecutionModel {
	return slices.Clone(r.models)
}

// Resolve decodes a SPIR-V binary and translates its stages.
func Resolve(data []byte, opts Options) (*Result, error) {
	opts = withDefaults(opts)
	m, err := spirv.Parse(opts.Name, data)
	if err != nil {
		return nil, resolve.HeaderError(opts.Name, err)
	}
	return ResolveModule(m, opts)
}

// ResolveWords is Resolve for a module that is already word aligned.
func ResolveWords(words []uint32, opts Options) (*Result, error) {
	opts = withDefaults(opts)
	m, err := spirv.ParseWords(opts.Name, words)
	if err != nil {
		return nil, resolve.HeaderError(opts.Name, err)
	}
	return ResolveModule(m, opts)
}

// ResolveModule translates the stages of a parsed module. No Result is
// returned if any stage fails.
func ResolveModule(m *spirv.Module, opts Options) (*Result, error) {
	opts = withDefaults(opts)

	models := opts.Stages
	if len(models) == 0 {
		found, err := resolve.EntryPointModels(m)
		if err != nil {
			return nil, err
		}
		models = found
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("%s: %w", m.Name, resolve.ErrNoStages)
	}

	stages, errs := translateAll(m, models, opts.Workers)

	var diags resolve.Errors
	for i, err := range errs {
		if err == nil {
			opts.Logf("%s: %s stage: %d ids defined", m.Name, models[i], stages[i].IDs().Len())
			continue
		}
		var diag *resolve.Error
		if !errors.As(err, &diag) {
			return nil, err
		}
		if !opts.CollectAll {
			return nil, diag
		}
		diags = append(diags, diag)
	}
	if len(diags) > 0 {
		return nil, diags
	}

	r := &Result{
		Module: m,
		stages: make(map[spirv.ExecutionModel]*resolve.Stage, len(models)),
		models: slices.Clone(models),
	}
	for i, model := range models {
		r.stages[model] = stages[i]
	}
	return r, nil
}

// stagePool is shared by every Resolve call. Its workers live for the
// life of the process.
var stagePool = sync.OnceValue(func() worker.DynamicWorkerPool {
	return worker.NewDynamicWorkerPool(runtime.NumCPU(), 256, 1*time.Second)
})

// translateAll runs one translation per model. Stages share only the
// immutable module, so at most workers of them run at once on the shared
// pool, with a WaitGroup barrier.
func translateAll(m *spirv.Module, models []spirv.ExecutionModel, workers int) ([]*resolve.Stage, []error) {
	d := resolve.DefaultDispatcher()
	stages := make([]*resolve.Stage, len(models))
	errs := make([]error, len(models))

	if workers < 2 || len(models) < 2 {
		for i, model := range models {
			stages[i], errs[i] = d.Translate(m, model)
		}
		return stages, errs
	}

	// Each task drains the shared index until every model is claimed.
	var next atomic.Int64
	var wg sync.WaitGroup
	pool := stagePool()
	for id := range min(workers, len(models)) {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for {
					i := int(next.Add(1)) - 1
					if i >= len(models) {
						return nil, nil
					}
					stages[i], errs[i] = d.Translate(m, models[i])
				}
			},
		})
	}
	wg.Wait()
	return stages, errs
}

func withDefaults(opts Options) Options {
	if opts.Name == "" {
		opts.Name = "shader"
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	return opts
}
