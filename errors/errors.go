package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which side of a crossing the error occurred on
type Phase string

const (
	PhaseEncode   Phase = "encode"   // native to wire
	PhaseDecode   Phase = "decode"   // wire to native
	PhaseQuery    Phase = "query"    // first phase of a two-phase read
	PhaseFill     Phase = "fill"     // second phase of a two-phase read
	PhaseInvoke   Phase = "invoke"   // calling into the active implementation
	PhaseRegister Phase = "register" // installing an implementation
	PhaseMemory   Phase = "memory"   // address space operations
	PhaseLoad     Phase = "load"     // guest module loading
	PhaseConfig   Phase = "config"   // scenario and option handling
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBounds      Kind = "out_of_bounds"
	KindNullPointer      Kind = "null_pointer"
	KindAllocation       Kind = "allocation"
	KindDoubleFree       Kind = "double_free"
	KindForeignBuffer    Kind = "foreign_buffer"
	KindSizeMismatch     Kind = "size_mismatch"
	KindIdentityMismatch Kind = "identity_mismatch"
	KindUnimplemented    Kind = "unimplemented"
	KindInvariant        Kind = "invariant"
	KindInvocationFailed Kind = "invocation_failed"
	KindInvalidUTF8      Kind = "invalid_utf8"
	KindInvalidInput     Kind = "invalid_input"
	KindNotFound         Kind = "not_found"
	KindMissingImport    Kind = "missing_import"
	KindInstantiation    Kind = "instantiation"
	KindRegistration     Kind = "registration"
	KindOverflow         Kind = "overflow"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Syscall string
	Detail  string
	Path    []string
	Addr    uint64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Syscall != "" {
		b.WriteString(" in ")
		b.WriteString(e.Syscall)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Addr != 0 {
		fmt.Fprintf(&b, " (addr 0x%x)", e.Addr)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Fatal reports whether the error belongs to a class that must abort the process
// rather than be returned to program logic.
func (e *Error) Fatal() bool {
	return e.Kind == KindUnimplemented || e.Kind == KindInvariant
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Syscall sets the name of the crossing that failed
func (b *Builder) Syscall(name string) *Builder {
	b.err.Syscall = name
	return b
}

// Addr sets the wire address involved
func (b *Builder) Addr(addr uint64) *Builder {
	b.err.Addr = addr
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfBounds creates an error for an access outside the address space
func OutOfBounds(phase Phase, addr, length, size uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Addr:   addr,
		Detail: fmt.Sprintf("range [0x%x, +%d) exceeds space of %d bytes", addr, length, size),
	}
}

// NullPointer creates an error for a dereference of address 0
func NullPointer(phase Phase, path ...string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullPointer,
		Path:   path,
		Detail: "null address",
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
	}
}

// DoubleFree creates an error for releasing memory that is not live
func DoubleFree(phase Phase, addr uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDoubleFree,
		Addr:   addr,
		Detail: "allocation is not live",
	}
}

// ForeignBuffer creates an error for a native buffer that does not live in the address space
func ForeignBuffer(phase Phase, path ...string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindForeignBuffer,
		Path:   path,
		Detail: "buffer is not resident in the address space",
	}
}

// SizeMismatch creates an error for a second-phase read whose sizes no longer match
func SizeMismatch(syscall string, want, got uint64) *Error {
	return &Error{
		Phase:   PhaseFill,
		Kind:    KindSizeMismatch,
		Syscall: syscall,
		Detail:  fmt.Sprintf("reported size %d, current size %d", want, got),
	}
}

// Unimplemented creates the error raised when no implementation is registered
func Unimplemented(syscall string) *Error {
	return &Error{
		Phase:   PhaseInvoke,
		Kind:    KindUnimplemented,
		Syscall: syscall,
		Detail:  "no syscall implementation registered",
	}
}

// Invariant creates an invariant violation error
func Invariant(syscall, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:   PhaseInvoke,
		Kind:    KindInvariant,
		Syscall: syscall,
		Detail:  detail,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, syscall string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:   phase,
		Kind:    KindInvalidUTF8,
		Syscall: syscall,
		Detail:  fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a registration error
func Registration(namespace, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s#%s", namespace, name),
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingImport represents a single unresolved import
type MissingImport struct {
	Namespace string // e.g., "env"
	Function  string // e.g., "sol_log_64_"
}

// MissingImportsError is returned when a guest imports functions the host does not provide
type MissingImportsError struct {
	Imports []MissingImport
}

// NewMissingImportsError creates an error from a list of "namespace#function" strings
func NewMissingImportsError(imports []string) *MissingImportsError {
	result := &MissingImportsError{
		Imports: make([]MissingImport, 0, len(imports)),
	}
	for _, imp := range imports {
		ns, fn := parseImportKey(imp)
		result.Imports = append(result.Imports, MissingImport{
			Namespace: ns,
			Function:  fn,
		})
	}
	return result
}

func parseImportKey(key string) (namespace, function string) {
	ns, fn, found := strings.Cut(key, "#")
	if found {
		return ns, fn
	}
	return key, ""
}

// demangleRust extracts a readable path from a legacy-mangled Rust symbol
func demangleRust(name string) string {
	if !strings.HasPrefix(name, "_ZN") {
		return name
	}

	// _ZN<len><name><len><name>...E
	s := name[3:]
	var parts []string

	for len(s) > 0 && s[0] != 'E' {
		lenEnd := 0
		for lenEnd < len(s) && s[lenEnd] >= '0' && s[lenEnd] <= '9' {
			lenEnd++
		}
		if lenEnd == 0 {
			break
		}

		length := 0
		for i := 0; i < lenEnd; i++ {
			length = length*10 + int(s[i]-'0')
		}
		s = s[lenEnd:]

		if length > len(s) {
			break
		}

		part := s[:length]
		s = s[length:]

		// 17 char hash suffix
		if len(part) == 17 && part[0] == 'h' && isHex(part[1:]) {
			continue
		}
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		return name
	}

	return strings.Join(parts, "::")
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func (e *MissingImportsError) Error() string {
	if len(e.Imports) == 0 {
		return "[load] missing_import: no imports specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "missing %d host function(s):\n", len(e.Imports))

	byNS := make(map[string][]string)
	var nsOrder []string
	for _, imp := range e.Imports {
		if _, exists := byNS[imp.Namespace]; !exists {
			nsOrder = append(nsOrder, imp.Namespace)
		}
		byNS[imp.Namespace] = append(byNS[imp.Namespace], demangleRust(imp.Function))
	}

	for _, ns := range nsOrder {
		b.WriteString("\n  ")
		b.WriteString(ns)
		b.WriteString(":\n")
		for _, fn := range byNS[ns] {
			b.WriteString("    - ")
			b.WriteString(fn)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *MissingImportsError) Is(target error) bool {
	_, ok := target.(*MissingImportsError)
	return ok
}
