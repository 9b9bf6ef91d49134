package output

import (
	"io"
	"os"
	"path/filepath"

	apperrors "github.com/evmtools/evm-deployment-info/pkg/errors"
)

// Write renders through fn into the sink at path, creating parent
// directories as needed. An empty path renders to standard output.
func Write(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.NewSinkWriteError(path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewSinkWriteError(path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return apperrors.NewSinkWriteError(path, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewSinkWriteError(path, err)
	}
	return nil
}
