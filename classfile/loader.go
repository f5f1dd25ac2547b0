package classfile

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Open maps path into memory and parses it as a class file, mirroring the
// pe.New file-path convenience constructor: the file is opened read-only,
// mmap'd, copied into a heap buffer, and unmapped again before that buffer
// is parsed, so the caller never has to manage the mapping's lifetime.
func Open(path string, opts *Options) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("classfile: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("classfile: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("classfile: %s: %w", path, ErrTruncatedInput)
	}

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("classfile: mmap %s: %w", path, err)
	}
	// Parse's result retains slices (Code, raw attribute payloads, ...)
	// that alias its input; copy out of the mapping before unmapping so
	// the returned ClassFile stays valid once this function returns.
	data := make([]byte, len(mapped))
	copy(data, mapped)
	if err := mapped.Unmap(); err != nil {
		return nil, fmt.Errorf("classfile: munmap %s: %w", path, err)
	}

	cf, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("classfile: %s: %w", path, err)
	}
	return cf, nil
}
