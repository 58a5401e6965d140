package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// wasiModule is the preview1 namespace guests built for wasip1 import.
const wasiModule = wasi_snapshot_preview1.ModuleName

// instantiateWASI instantiates WASI preview1. Go's wasip1 port needs it for
// clocks, random and stdout even when the program never touches a file.
func instantiateWASI(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(wasiModule)
	wasi_snapshot_preview1.NewFunctionExporter().ExportFunctions(builder)
	return builder.Instantiate(ctx)
}
