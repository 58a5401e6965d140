package engine

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/sbf-stubs/abi"
	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/harness"
)

// DefaultModuleName is the namespace SBF toolchains import syscalls from.
const DefaultModuleName = "env"

// Config holds configuration for engine creation
type Config struct {
	// Stdout and Stderr receive WASI output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	// ModuleName is the import namespace of the syscall host module.
	// Empty means DefaultModuleName.
	ModuleName string

	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// EnableWASI allows guests to import wasi_snapshot_preview1.
	EnableWASI bool
}

// Engine runs guest programs whose syscalls cross into a harness router.
//
// The syscall host module is shared by every program loaded into the engine.
// Each guest instance gets its own v2 table bound to its own memory.
type Engine struct {
	runtime  wazero.Runtime
	router   *harness.Router
	bindings map[api.Module]*binding
	cfg      Config
	mu       sync.Mutex
	wasiMu   sync.Mutex
	wasiDone atomic.Bool
}

// binding is the table serving one guest instance and the last fatal fault
// raised while serving it.
type binding struct {
	table *abi.TableV2
	fault *errors.Error
}

// New creates an engine with its own wazero runtime. Nil cfg uses defaults.
func New(ctx context.Context, cfg *Config) (*Engine, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.ModuleName == "" {
		c.ModuleName = DefaultModuleName
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if c.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(c.MemoryLimitPages)
	}

	e := &Engine{
		runtime:  wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		bindings: make(map[api.Module]*binding),
		cfg:      c,
	}
	if c.EnableWASI {
		if err := e.InitWASI(ctx); err != nil {
			_ = e.runtime.Close(ctx)
			return nil, err
		}
	}
	return e, nil
}

// Install exports every v2 syscall under its real name, all parameters and
// results i64, and routes them through router. Nil router means
// harness.Global(). An engine installs exactly once.
func (e *Engine) Install(ctx context.Context, router *harness.Router) error {
	if router == nil {
		router = harness.Global()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.router != nil {
		return errors.Registration(e.cfg.ModuleName, "*", fmt.Errorf("host module already installed"))
	}

	builder := e.runtime.NewHostModuleBuilder(e.cfg.ModuleName)
	for _, entry := range abi.V2Entries {
		builder = builder.NewFunctionBuilder().
			WithGoModuleFunction(e.hostFunc(entry), i64s(entry.Params), i64s(entry.Results)).
			WithName(entry.Name).
			Export(entry.Name)
	}
	if _, err := builder.Instantiate(ctx); err != nil {
		return errors.Registration(e.cfg.ModuleName, "*", err)
	}
	e.router = router
	Logger().Debug("syscall host module installed",
		zap.String("module", e.cfg.ModuleName),
		zap.Int("functions", len(abi.V2Entries)))
	return nil
}

// InitWASI instantiates WASI preview1 for this engine's runtime.
// Safe for concurrent calls.
func (e *Engine) InitWASI(ctx context.Context) error {
	if e.wasiDone.Load() {
		return nil
	}

	e.wasiMu.Lock()
	defer e.wasiMu.Unlock()

	if e.wasiDone.Load() {
		return nil
	}
	if e.runtime.Module(wasiModule) == nil {
		if _, err := instantiateWASI(ctx, e.runtime); err != nil {
			return errors.Registration(wasiModule, "*", err)
		}
	}
	e.wasiDone.Store(true)
	return nil
}

// Close releases the runtime and every instance created from it.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

func i64s(n int) []api.ValueType {
	if n == 0 {
		return nil
	}
	types := make([]api.ValueType, n)
	for i := range types {
		types[i] = api.ValueTypeI64
	}
	return types
}

func (e *Engine) hostFunc(entry abi.Entry) api.GoModuleFunc {
	return func(_ context.Context, mod api.Module, stack []uint64) {
		b := e.bind(mod, entry.Name)
		defer func() {
			if r := recover(); r != nil {
				if fault, ok := r.(*errors.Error); ok {
					b.fault = fault
				}
				panic(r)
			}
		}()
		entry.Invoke(b.table, stack)
	}
}

// bind returns the binding for a calling guest, creating it on first use.
// Start functions run before Instantiate returns, so it cannot be eager.
func (e *Engine) bind(mod api.Module, syscall string) *binding {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.bindings[mod]; ok {
		return b
	}
	mem := mod.Memory()
	if mem == nil {
		panic(errors.Invariant(syscall, "guest %q exports no memory", mod.Name()))
	}
	b := &binding{table: e.router.TableV2(&guestMemory{mem: mem})}
	e.bindings[mod] = b
	return b
}

func (e *Engine) lookup(mod api.Module) *binding {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bindings[mod]
}

func (e *Engine) forget(mod api.Module) {
	e.mu.Lock()
	delete(e.bindings, mod)
	e.mu.Unlock()
}

func (e *Engine) installed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.router != nil
}

// Load compiles a guest and checks its imports. Every import must be a
// known syscall with the i64 signature, or WASI when enabled.
func (e *Engine) Load(ctx context.Context, wasm []byte) (*Program, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile failed", err)
	}

	var (
		missing []string
		imports []string
		usesEnv bool
	)
	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		imports = append(imports, module+"#"+name)
		switch module {
		case e.cfg.ModuleName:
			entry, ok := abi.Lookup(name)
			if !ok {
				missing = append(missing, module+"#"+name)
				continue
			}
			if !signature(def, entry) {
				_ = compiled.Close(ctx)
				return nil, errors.Load(fmt.Sprintf("import %s#%s: want %d i64 params and %d i64 results",
					module, name, entry.Params, entry.Results), nil)
			}
			usesEnv = true
		case wasiModule:
			if !e.cfg.EnableWASI {
				missing = append(missing, module+"#"+name)
			}
		default:
			missing = append(missing, module+"#"+name)
		}
	}
	if len(missing) > 0 {
		_ = compiled.Close(ctx)
		Logger().Warn("guest imports unknown functions", zap.Strings("imports", missing))
		return nil, errors.NewMissingImportsError(missing)
	}

	exports := make([]Export, 0, len(compiled.ExportedFunctions()))
	for name, def := range compiled.ExportedFunctions() {
		exports = append(exports, Export{
			Name:    name,
			Params:  len(def.ParamTypes()),
			Results: len(def.ResultTypes()),
		})
	}
	sort.Slice(exports, func(i, j int) bool { return exports[i].Name < exports[j].Name })

	Logger().Debug("guest loaded",
		zap.Int("imports", len(imports)),
		zap.Int("exports", len(exports)))
	return &Program{
		engine:   e,
		compiled: compiled,
		imports:  imports,
		exports:  exports,
		usesEnv:  usesEnv,
	}, nil
}

func signature(def api.FunctionDefinition, entry abi.Entry) bool {
	params, results := def.ParamTypes(), def.ResultTypes()
	if len(params) != entry.Params || len(results) != entry.Results {
		return false
	}
	for _, t := range params {
		if t != api.ValueTypeI64 {
			return false
		}
	}
	for _, t := range results {
		if t != api.ValueTypeI64 {
			return false
		}
	}
	return true
}
