package reporter

import (
	"sync"

	"github.com/pngdsl/pngc/ast"
)

// ErrorReporter is responsible for reporting the given error. If it returns
// a non-nil error, the operation aborts with that error. If it returns nil,
// the operation continues, collecting more errors as it finds them.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting a non-fatal diagnostic.
type WarningReporter func(ErrorWithPos)

// Reporter handles both errors and warnings encountered during compilation.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter builds a Reporter from plain functions.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler accumulates fatal errors for a single compilation. Unlike the
// analyzer's own AnalysisError list (which is allowed to grow unbounded
// while semantic analysis keeps going), a Handler aborts the moment its
// configured Reporter returns a non-nil error for a fatal-class error
// (spec §7 class 1): ParseError, EmitError, OutOfMemory, and resolver
// errors.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler builds a Handler that reports through rep. A nil rep reports
// nothing and simply aborts on the first error.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf reports a formatted fatal error at pos. If the handler has
// already aborted, the prior error is returned unchanged and this error is
// not reported.
func (h *Handler) HandleErrorf(pos ast.Pos, format string, args ...any) error {
	return h.HandleError(Errorf(pos, format, args...))
}

// HandleError reports a fatal error. If err is an ErrorWithPos, it is
// passed to the Reporter and this returns whatever the Reporter returns.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarning reports a non-fatal warning.
func (h *Handler) HandleWarning(err ErrorWithPos) {
	h.reporter.Warning(err)
}

// Error returns the handler's terminal result: nil if nothing was ever
// reported, ErrInvalidSource if errors were reported but the Reporter never
// returned one of its own, or the Reporter's own error otherwise.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}
