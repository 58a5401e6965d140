package harness

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
)

// Convention labels used in logs and metrics.
const (
	ConventionV1 = "v1"
	ConventionV2 = "v2"
)

// Router holds the one active syscall implementation and forwards every
// crossing to it. Until something is registered every operation fails loudly.
//
// The read lock is held for the full duration of a crossing, so Register
// waits for in-flight calls and never tears one in half.
type Router struct {
	impl    solana.Syscalls
	metrics *Metrics
	logger  *zap.Logger
	mu      sync.RWMutex
}

// Option configures a Router.
type Option func(*Router)

// WithMetrics attaches prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithLogger overrides the package logger for this router.
func WithLogger(l *zap.Logger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// NewRouter creates a router with the fail-loud default installed.
func NewRouter(opts ...Option) *Router {
	r := &Router{impl: solana.Unimplemented{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) log() *zap.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// Register replaces the active implementation and returns the previous one.
// A nil implementation restores the fail-loud default.
func (r *Router) Register(impl solana.Syscalls) solana.Syscalls {
	if impl == nil {
		impl = solana.Unimplemented{}
	}
	r.mu.Lock()
	prev := r.impl
	r.impl = impl
	r.mu.Unlock()

	r.log().Debug("syscall implementation registered", zap.String("type", typeName(impl)))
	return prev
}

// Implementation returns the active implementation.
func (r *Router) Implementation() solana.Syscalls {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.impl
}

// call runs fn against the active implementation under the read lock.
func (r *Router) call(convention, syscall string, fn func(impl solana.Syscalls)) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.metrics.crossing(convention, syscall)
	if ce := r.log().Check(zap.DebugLevel, "syscall"); ce != nil {
		ce.Write(zap.String("convention", convention), zap.String("name", syscall))
	}
	fn(r.impl)
}

// fatal aborts a crossing. Memory faults, unimplemented operations and
// invariant violations all end here.
func (r *Router) fatal(convention, syscall string, err error) {
	r.metrics.aborted(convention, syscall)
	r.log().Error("syscall aborted",
		zap.String("convention", convention),
		zap.String("name", syscall),
		zap.Error(err))

	if e, ok := err.(*errors.Error); ok {
		if e.Syscall == "" {
			e.Syscall = syscall
		}
		panic(e)
	}
	panic(errors.New(errors.PhaseInvoke, errors.KindInvariant).Syscall(syscall).Cause(err).Build())
}

func (r *Router) failed(convention, syscall string, err error) {
	r.metrics.failure(convention, syscall)
	r.log().Debug("syscall failed",
		zap.String("convention", convention),
		zap.String("name", syscall),
		zap.Error(err))
}

var global = NewRouter()

// Global returns the process-wide router.
func Global() *Router {
	return global
}

// Register installs impl on the process-wide router.
func Register(impl solana.Syscalls) solana.Syscalls {
	return global.Register(impl)
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
