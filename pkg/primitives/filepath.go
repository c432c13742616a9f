package primitives

import (
	"os"
	"path/filepath"
)

// Filepath is a type-safe wrapper around file paths used throughout the
// record store. It provides convenient methods for path manipulation and
// file operations while reducing the need for string conversions.
//
// The Filepath type is used for:
//   - Data file paths (one per record type)
//   - The system catalog file path
//   - Operation log and search output paths
//
// Example usage:
//
//	dataDir := primitives.Filepath("/data")
//	typePath := dataDir.Join("planet.dat")
//	if typePath.Exists() {
//	    // file already on disk
//	}
type Filepath string

// String converts the Filepath to a standard string.
// This implements the Stringer interface and provides cleaner conversion
// than explicit type casting.
func (f Filepath) String() string {
	return string(f)
}

// Join concatenates path elements to this path and returns a new Filepath.
// This is a type-safe wrapper around filepath.Join that maintains the
// Filepath type.
//
// Example:
//
//	dataDir := primitives.Filepath("/data")
//	typePath := dataDir.Join("planet.dat")
//	// Returns Filepath("/data/planet.dat")
func (f Filepath) Join(elem ...string) Filepath {
	parts := append([]string{string(f)}, elem...)
	return Filepath(filepath.Join(parts...))
}

// Dir returns the directory portion of the file path.
func (f Filepath) Dir() string {
	return filepath.Dir(string(f))
}

// Base returns the last element of the path (the filename).
func (f Filepath) Base() string {
	return filepath.Base(string(f))
}

// Exists checks whether the file exists on the filesystem.
// This provides a cleaner interface than checking os.Stat errors.
func (f Filepath) Exists() bool {
	_, err := os.Stat(string(f))
	return err == nil
}

// Remove deletes the file from the filesystem.
// This operation is idempotent - it succeeds if the file doesn't exist.
func (f Filepath) Remove() error {
	if !f.Exists() {
		return nil // Idempotent operation
	}
	return os.Remove(string(f))
}

// IsEmpty checks whether the filepath is an empty string.
// This is useful for validation before file operations.
func (f Filepath) IsEmpty() bool {
	return string(f) == ""
}

// MkdirAll creates the parent directory and any necessary parents.
//
// Parameters:
//   - perm: File permissions for created directories (e.g., 0755)
func (f Filepath) MkdirAll(perm os.FileMode) error {
	return os.MkdirAll(f.Dir(), perm)
}

// Clean returns the shortest path name equivalent to the path by purely
// lexical processing.
func (f Filepath) Clean() Filepath {
	return Filepath(filepath.Clean(string(f)))
}

// Stat returns file information from the filesystem.
//
// Returns:
//   - os.FileInfo: File metadata including size, permissions, modification time
//   - error: nil on success, error if file doesn't exist or stat fails
func (f Filepath) Stat() (os.FileInfo, error) {
	return os.Stat(string(f))
}
