// Command stubrun runs a WebAssembly build of an on-chain program against an
// in-memory bank, serving its syscalls through the stub router.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/sbf-stubs/engine"
	"github.com/wippyai/sbf-stubs/harness"
)

func main() {
	var (
		wasmFile     = flag.String("wasm", "", "Path to program wasm file")
		scenarioFile = flag.String("scenario", "", "YAML scenario describing the bank and calls")
		funcName     = flag.String("func", "", "Function to call (overrides scenario calls)")
		argList      = flag.String("args", "", "Comma-separated i64 arguments for -func")
		list         = flag.Bool("list", false, "List imports and exported functions and exit")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
		schema       = flag.Bool("schema", false, "Print the scenario JSON schema and exit")
		verbose      = flag.Bool("v", false, "Log every syscall crossing")
	)
	flag.Parse()

	if *schema {
		out, err := Schema()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: stubrun -wasm <file.wasm> [-scenario s.yaml] [-func name] [-args 1,2]")
		fmt.Fprintln(os.Stderr, "       stubrun -wasm <file.wasm> -list")
		fmt.Fprintln(os.Stderr, "       stubrun -wasm <file.wasm> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       stubrun -schema")
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			log = l
		}
	}
	defer func() { _ = log.Sync() }()
	harness.SetLogger(log)
	engine.SetLogger(log)

	sc, err := scenario(*scenarioFile, *funcName, *argList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*wasmFile, sc, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, sc, log, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// scenario loads the scenario file, or the default, and applies -func.
func scenario(path, funcName, argList string) (*Scenario, error) {
	sc := DefaultScenario()
	if path != "" {
		var err error
		if sc, err = LoadScenario(path); err != nil {
			return nil, err
		}
	}
	if funcName == "" {
		return sc, nil
	}

	call := Call{Func: funcName}
	if argList != "" {
		for _, s := range strings.Split(argList, ",") {
			v, err := parseArg(s)
			if err != nil {
				return nil, fmt.Errorf("parse -args: %w", err)
			}
			call.Args = append(call.Args, v)
		}
	}
	sc.Calls = []Call{call}
	return sc, nil
}

func run(wasmFile string, sc *Scenario, log *zap.Logger, listOnly bool) error {
	ctx := context.Background()
	p := newPrinter(os.Stdout)

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	sess, err := openSession(ctx, data, sc, log, os.Stdout)
	if err != nil {
		return err
	}
	defer sess.close(ctx)

	p.exports(wasmFile, sess.program.Imports(), sess.program.Exports())
	if listOnly {
		return nil
	}

	calls := sc.Calls
	if len(calls) == 0 {
		name := sess.entrypoint()
		if name == "" {
			p.printf("\nNo function specified and no common entry point found.\n")
			p.printf("Use -func or scenario calls to specify a function to call.\n")
			return nil
		}
		calls = []Call{{Func: name}}
	}

	var failed int
	for _, c := range calls {
		out := sess.call(ctx, c.Func, c.Args)
		p.outcome(c.Func, c.Args, out)
		if out.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d calls failed", failed, len(calls))
	}
	return nil
}
