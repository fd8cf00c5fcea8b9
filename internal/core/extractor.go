package core

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"mrmm/internal/domain"
	"mrmm/internal/logging"

	"github.com/spf13/afero"
)

// Extraction is the result of taking in one source file
type Extraction struct {
	Source  string
	Files   []domain.PackagedFile
	TempDir string // Owned by the caller once returned; "" for pass-through
}

// Extractor turns mod files and archives into packaged mod files
type Extractor struct {
	fs       afero.Fs
	tempRoot string
}

// NewExtractor creates an Extractor that unpacks into fresh directories
// under tempRoot ("" uses the system temp directory)
func NewExtractor(fs afero.Fs, tempRoot string) *Extractor {
	return &Extractor{fs: fs, tempRoot: tempRoot}
}

// CanExtract returns true if the extractor can handle the given filename
func (e *Extractor) CanExtract(filename string) bool {
	return e.DetectFormat(filename) != ""
}

// DetectFormat returns the source format based on filename extension.
// Mod files are matched case-sensitively; archives are not.
func (e *Extractor) DetectFormat(filename string) string {
	if domain.IsModFile(filepath.Base(filename)) {
		return "pak"
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zip":
		return "zip"
	case ".7z":
		return "7z"
	case ".rar":
		return "rar"
	default:
		return ""
	}
}

// Extract returns every mod file inside sourcePath. A mod file passes
// through untouched. Archives are unpacked into a new temp directory whose
// removal becomes the caller's job; on failure it is removed here.
func (e *Extractor) Extract(sourcePath string) (*Extraction, error) {
	format := e.DetectFormat(sourcePath)
	if format == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Base(sourcePath))
	}

	info, err := e.fs.Stat(sourcePath)
	if err != nil {
		return nil, domain.NewIOError("stat", sourcePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrUnsupportedFormat, sourcePath)
	}

	if format == "pak" {
		return &Extraction{
			Source: sourcePath,
			Files:  []domain.PackagedFile{domain.NewPackagedFile(e.fs, sourcePath)},
		}, nil
	}

	tempDir, err := afero.TempDir(e.fs, e.tempRoot, "mrmm-extract-")
	if err != nil {
		return nil, domain.NewIOError("mkdir", e.tempRoot, err)
	}

	if err := e.unpack(format, sourcePath, tempDir); err != nil {
		_ = e.fs.RemoveAll(tempDir)
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, filepath.Base(sourcePath), err)
	}

	files, err := e.collect(tempDir)
	if err != nil {
		_ = e.fs.RemoveAll(tempDir)
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, filepath.Base(sourcePath), err)
	}

	if len(files) == 0 {
		_ = e.fs.RemoveAll(tempDir)
		return &Extraction{Source: sourcePath, Files: files}, nil
	}

	return &Extraction{Source: sourcePath, Files: files, TempDir: tempDir}, nil
}

func (e *Extractor) unpack(format, archivePath, destDir string) error {
	switch format {
	case "zip":
		return e.extractZip(archivePath, destDir)
	case "7z", "rar":
		return e.extract7z(archivePath, destDir)
	default:
		return fmt.Errorf("unsupported archive format: %s", format)
	}
}

// collect walks dir and returns each regular mod file. The first file
// with a given name wins; later ones are skipped.
func (e *Extractor) collect(dir string) ([]domain.PackagedFile, error) {
	log := logging.GetLogger("extractor")
	seen := make(map[string]bool)
	files := []domain.PackagedFile{}

	err := afero.Walk(e.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() || !domain.IsModFile(info.Name()) {
			return nil
		}
		if seen[info.Name()] {
			log.Debug().Str("mod", info.Name()).Str("path", path).Msg("Skipping duplicate mod name in archive")
			return nil
		}
		seen[info.Name()] = true
		files = append(files, domain.NewPackagedFile(e.fs, path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// extractZip extracts a ZIP archive using Go's native archive/zip package
func (e *Extractor) extractZip(archivePath, destDir string) (err error) {
	f, err := e.fs.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}

	r, err := zip.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}

	for _, zf := range r.File {
		if err := e.extractZipFile(zf, destDir); err != nil {
			return err
		}
	}

	return nil
}

// extractZipFile extracts a single file from a ZIP archive
func (e *Extractor) extractZipFile(f *zip.File, destDir string) (err error) {
	destPath, err := sanitizePath(destDir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return e.fs.MkdirAll(destPath, 0755)
	}

	if err := e.fs.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening file %s in archive: %w", f.Name, err)
	}
	defer func() {
		if cerr := rc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing archive entry %s: %w", f.Name, cerr)
		}
	}()

	outFile, err := e.fs.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := outFile.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing file %s: %w", destPath, cerr)
		}
	}()

	if _, err = io.Copy(outFile, rc); err != nil {
		return fmt.Errorf("writing file %s: %w", destPath, err)
	}

	return nil
}

// sanitizePath keeps an archive entry inside destDir ("zip slip")
func sanitizePath(destDir, filePath string) (string, error) {
	if filepath.IsAbs(filePath) || strings.HasPrefix(filePath, "/") || strings.HasPrefix(filePath, `\`) {
		return "", fmt.Errorf("path traversal detected: %s", filePath)
	}

	destPath := filepath.Join(destDir, filepath.Clean(filePath))

	cleanDest := filepath.Clean(destDir)
	if destPath != cleanDest && !strings.HasPrefix(destPath, cleanDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("path traversal detected: %s", filePath)
	}

	return destPath, nil
}

// extract7zTimeout is the maximum time allowed for 7z extraction (corrupted archives or hangs).
const extract7zTimeout = 5 * time.Minute

// extract7z extracts .7z and .rar archives with the system 7z command.
// 7z writes to the real filesystem, so this needs an OS-backed afero.Fs.
func (e *Extractor) extract7z(archivePath, destDir string) error {
	if _, err := exec.LookPath("7z"); err != nil {
		return fmt.Errorf("7z command not found: install p7zip-full to extract .7z and .rar files")
	}

	ctx, cancel := context.WithTimeout(context.Background(), extract7zTimeout)
	defer cancel()

	// -y: assume yes to all queries; -o: output directory (no space between -o and path)
	cmd := exec.CommandContext(ctx, "7z", "x", "-y", "-o"+destDir, archivePath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("7z extraction timed out after %v", extract7zTimeout)
		}
		return fmt.Errorf("7z extraction failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}
