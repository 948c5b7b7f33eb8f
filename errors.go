package pngc

import "errors"

// Sentinel errors from the import resolver and emitter, per spec §6's error
// taxonomy. Resolver errors carry additional context via the *ResolveError
// wrapper in resolver.go, and emitter errors are wrapped around ErrEmit
// with fmt.Errorf; callers should use
// errors.Is against these sentinels rather than comparing error values
// directly.
var (
	ErrImportCycle         = errors.New("import cycle detected")
	ErrImportNotFound      = errors.New("import not found")
	ErrInvalidImportPath   = errors.New("invalid import path")
	ErrFileRead            = errors.New("file read error")
	ErrOutOfMemory         = errors.New("out of memory")
	ErrEmit                = errors.New("emit error")
	ErrDataSectionOverflow = errors.New("data section overflow")
	ErrTooManyDataEntries  = errors.New("too many data entries")
	ErrStringTableOverflow = errors.New("string table overflow")
)
