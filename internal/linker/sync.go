package linker

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"mrmm/internal/domain"
	"mrmm/internal/logging"

	"github.com/spf13/afero"
)

// ItemError is the failure of a single copy or removal during Reconcile
type ItemError struct {
	Op   string // "copy" or "remove"
	Name string
	Err  error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *ItemError) Unwrap() []error {
	return []error{domain.ErrIOFailure, e.Err}
}

// Report describes what Reconcile did to a directory
type Report struct {
	Dir      string
	Added    []string
	Removed  []string
	Failures []*ItemError
}

// OK reports whether every item succeeded
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Err joins all item failures, or returns nil
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Merge appends other's results to r
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Added = append(r.Added, other.Added...)
	r.Removed = append(r.Removed, other.Removed...)
	r.Failures = append(r.Failures, other.Failures...)
}

// Reconcile makes the mod files in dir exactly the target set. Missing
// names are copied in from provider and extra mod files are removed.
// Every item is attempted; item failures are collected in the report and
// returned joined. Only failing to create or list dir stops early.
func Reconcile(fs afero.Fs, dir string, target []string, provider Provider) (*Report, error) {
	log := logging.GetLogger("linker")
	report := &Report{Dir: dir}

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return report, domain.NewIOError("mkdir", dir, err)
	}

	current, err := ListModFiles(fs, dir)
	if err != nil {
		return report, err
	}

	currentSet := make(map[string]bool, len(current))
	for _, name := range current {
		currentSet[name] = true
	}
	targetSet := make(map[string]bool, len(target))
	var toAdd []string
	for _, name := range target {
		if targetSet[name] {
			continue
		}
		targetSet[name] = true
		if !currentSet[name] {
			toAdd = append(toAdd, name)
		}
	}
	var toRemove []string
	for _, name := range current {
		if !targetSet[name] {
			toRemove = append(toRemove, name)
		}
	}
	sort.Strings(toRemove)

	lnk := NewCopy(fs)

	for _, name := range toAdd {
		if err := validModName(name); err != nil {
			report.fail("copy", name, err)
			continue
		}
		if err := deployFrom(lnk, provider, name, joinName(dir, name)); err != nil {
			log.Warn().Err(err).Str("dir", dir).Str("mod", name).Msg("Failed to copy mod")
			report.fail("copy", name, err)
			continue
		}
		log.Debug().Str("dir", dir).Str("mod", name).Msg("Copied mod")
		report.Added = append(report.Added, name)
	}

	for _, name := range toRemove {
		if err := lnk.Undeploy(joinName(dir, name)); err != nil {
			log.Warn().Err(err).Str("dir", dir).Str("mod", name).Msg("Failed to remove mod")
			report.fail("remove", name, err)
			continue
		}
		log.Debug().Str("dir", dir).Str("mod", name).Msg("Removed mod")
		report.Removed = append(report.Removed, name)
	}

	return report, report.Err()
}

// RemoveAll deletes every mod file in dir, leaving other files alone
func RemoveAll(fs afero.Fs, dir string) (*Report, error) {
	report := &Report{Dir: dir}
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return report, domain.NewIOError("stat", dir, err)
	}
	if !exists {
		return report, nil
	}
	return Reconcile(fs, dir, nil, nil)
}

func (r *Report) fail(op, name string, err error) {
	r.Failures = append(r.Failures, &ItemError{Op: op, Name: name, Err: err})
}

func deployFrom(lnk *CopyLinker, provider Provider, name, dst string) error {
	if provider == nil {
		return fmt.Errorf("no source for %s", name)
	}
	rc, err := provider(name)
	if err != nil {
		return err
	}
	defer rc.Close()
	return lnk.Deploy(rc, dst)
}

func validModName(name string) error {
	if !domain.IsModFile(name) || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q is not a mod file name", domain.ErrUnsupportedFormat, name)
	}
	return nil
}

func joinName(dir, name string) string {
	return filepath.Join(dir, name)
}
