package linker

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mrmm/internal/domain"

	"github.com/spf13/afero"
)

// CopyLinker deploys mods by copying their bytes
type CopyLinker struct {
	fs afero.Fs
}

// NewCopy creates a new copy linker on fs
func NewCopy(fs afero.Fs) *CopyLinker {
	return &CopyLinker{fs: fs}
}

// Deploy writes src to dst, replacing any file already there
func (l *CopyLinker) Deploy(src io.Reader, dst string) (err error) {
	if err := l.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return domain.NewIOError("mkdir", filepath.Dir(dst), err)
	}

	dstFile, err := l.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return domain.NewIOError("create", dst, err)
	}
	defer func() {
		if cerr := dstFile.Close(); err == nil && cerr != nil {
			err = domain.NewIOError("close", dst, cerr)
		}
	}()

	if _, err := io.Copy(dstFile, src); err != nil {
		return domain.NewIOError("copy", dst, err)
	}

	return nil
}

// DeployFile copies a packaged file to dst
func (l *CopyLinker) DeployFile(f domain.PackagedFile, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := l.Deploy(rc, dst); err != nil {
		return fmt.Errorf("deploying %s: %w", f.Name, err)
	}
	return nil
}

// Undeploy removes the file at dst
func (l *CopyLinker) Undeploy(dst string) error {
	if err := l.fs.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return domain.NewIOError("remove", dst, err)
	}
	return nil
}

// IsDeployed checks if dst exists
func (l *CopyLinker) IsDeployed(dst string) (bool, error) {
	_, err := l.fs.Stat(dst)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, domain.NewIOError("stat", dst, err)
	}
	return true, nil
}
