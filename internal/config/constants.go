// Package config holds module-wide constants, in the same plain const/var
// style the teacher uses for its own build-time settings.
package config

// Version is the current ilc version.
// Set at build time via -ldflags or by writing to this file.
var Version = "0.1.0"

// SourceFileExt is the canonical extension for a component namespace file.
const SourceFileExt = ".ilc"

// LibraryFileExt is the canonical extension for a primitive library file.
const LibraryFileExt = ".ilib"

// SourceFileExtensions are all recognized namespace-file extensions.
var SourceFileExtensions = []string{".ilc", ".hdl"}

// DefaultPassOrder is the pass pipeline run when the CLI driver is not given
// an explicit --pass list. Order matters: barrier lowering must run before
// group splitting so the freshly introduced barrier/clear groups are
// themselves candidates for splitting.
var DefaultPassOrder = []string{"compile-sync", "group-to-seq"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// HasLibraryExt returns true if the path ends with the library-file
// extension.
func HasLibraryExt(path string) bool {
	return len(path) >= len(LibraryFileExt) && path[len(path)-len(LibraryFileExt):] == LibraryFileExt
}

// IsTestMode indicates whether the program is running under the test
// harness; nothing in this module sets it, so it stays false.
var IsTestMode = false
