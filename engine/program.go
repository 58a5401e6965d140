package engine

import (
	"context"
	"crypto/rand"
	stderrors "errors"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"

	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/errors"
)

// Export describes an exported function by arity.
type Export struct {
	Name    string
	Params  int
	Results int
}

// Program is a compiled guest. It can be instantiated any number of times.
type Program struct {
	engine   *Engine
	compiled wazero.CompiledModule
	imports  []string
	exports  []Export
	usesEnv  bool
}

// Imports lists the guest's function imports as "module#name".
func (p *Program) Imports() []string {
	return p.imports
}

// Exports lists the guest's exported functions sorted by name.
func (p *Program) Exports() []Export {
	return p.exports
}

// Instantiate creates a fresh instance. Reactor guests run _initialize;
// _start is never run implicitly.
func (p *Program) Instantiate(ctx context.Context) (*Instance, error) {
	if p.usesEnv && !p.engine.installed() {
		return nil, errors.New(errors.PhaseLoad, errors.KindInstantiation).
			Detail("host module %q not installed", p.engine.cfg.ModuleName).
			Build()
	}

	cfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions("_initialize")
	if p.engine.cfg.EnableWASI {
		cfg = cfg.WithSysWalltime().WithSysNanotime().WithRandSource(rand.Reader)
		if p.engine.cfg.Stdout != nil {
			cfg = cfg.WithStdout(p.engine.cfg.Stdout)
		}
		if p.engine.cfg.Stderr != nil {
			cfg = cfg.WithStderr(p.engine.cfg.Stderr)
		}
	}

	mod, err := p.engine.runtime.InstantiateModule(ctx, p.compiled, cfg)
	if err != nil {
		return nil, errors.Instantiation(err)
	}
	return &Instance{engine: p.engine, mod: mod}, nil
}

// Call instantiates the program, calls one export and closes the instance.
func (p *Program) Call(ctx context.Context, name string, args ...uint64) ([]uint64, error) {
	inst, err := p.Instantiate(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = inst.Close(ctx) }()
	return inst.Call(ctx, name, args...)
}

// Close releases the compiled code.
func (p *Program) Close(ctx context.Context) error {
	return p.compiled.Close(ctx)
}

// Instance is a running guest. It is not safe for concurrent use.
type Instance struct {
	engine *Engine
	mod    api.Module
}

// Memory returns the guest's linear memory as an address space, or nil when
// the guest exports none.
func (i *Instance) Memory() sbfstubs.Memory {
	mem := i.mod.Memory()
	if mem == nil {
		return nil
	}
	return &guestMemory{mem: mem}
}

// Call calls an exported function. A fatal fault raised by a syscall aborts
// the guest and is returned as the *errors.Error that caused it.
func (i *Instance) Call(ctx context.Context, name string, args ...uint64) ([]uint64, error) {
	fn := i.mod.ExportedFunction(name)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseInvoke, "export", name)
	}
	if b := i.engine.lookup(i.mod); b != nil {
		b.fault = nil
	}

	results, err := fn.Call(ctx, args...)
	if err == nil {
		return results, nil
	}
	if b := i.engine.lookup(i.mod); b != nil && b.fault != nil {
		Logger().Error("guest aborted by syscall fault",
			zap.String("export", name),
			zap.Error(b.fault))
		return nil, b.fault
	}
	var exit *sys.ExitError
	if stderrors.As(err, &exit) && exit.ExitCode() == 0 {
		return results, nil
	}
	return nil, errors.Wrap(errors.PhaseInvoke, errors.KindInvocationFailed, err, "call "+name)
}

// Close closes the instance and drops its syscall table.
func (i *Instance) Close(ctx context.Context) error {
	i.engine.forget(i.mod)
	return i.mod.Close(ctx)
}
