// Package docstore manages the on-disk timecard PDF store. Documents live in
// one subdirectory per pay period and encode their lifecycle state in the
// filename: timecard_<employee>_<period>.pdf is unvalidated, the _v suffix
// marks a validated document. At most one of the two exists per employee.
package docstore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/firedesk/timecard/internal/shared"
)

// State identifies a document lifecycle state.
type State string

const (
	StateUnvalidated State = "UNVALIDATED"
	StateValidated   State = "VALIDATED"
)

var employeeIDPattern = regexp.MustCompile(`^timecard_(\d+)_`)

// Store is a filesystem-backed document store rooted at a single directory.
type Store struct {
	root string
}

// New returns a Store rooted at root, creating the directory if needed.
func New(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("docstore: root dir required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("docstore: create root: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the store's base directory.
func (s *Store) Root() string { return s.root }

// PeriodDir returns the directory holding documents for payPeriod.
func (s *Store) PeriodDir(payPeriod string) string {
	return filepath.Join(s.root, payPeriod)
}

// EnsurePeriodDir creates the pay period directory when missing.
func (s *Store) EnsurePeriodDir(payPeriod string) error {
	if err := os.MkdirAll(s.PeriodDir(payPeriod), 0o755); err != nil {
		return fmt.Errorf("docstore: create period dir: %w: %v", shared.ErrIOFailure, err)
	}
	return nil
}

// UnvalidatedName returns the filename of an unvalidated document.
func UnvalidatedName(employeeID, payPeriod string) string {
	return fmt.Sprintf("timecard_%s_%s.pdf", employeeID, payPeriod)
}

// ValidatedName returns the filename of a validated document.
func ValidatedName(employeeID, payPeriod string) string {
	return fmt.Sprintf("timecard_%s_%s_v.pdf", employeeID, payPeriod)
}

// UnvalidatedFromValidated maps a validated filename back to its original name.
func UnvalidatedFromValidated(filename string) string {
	return strings.Replace(filename, "_v.pdf", ".pdf", 1)
}

// StateOf reports the lifecycle state encoded in filename.
func StateOf(filename string) State {
	if strings.HasSuffix(filename, "_v.pdf") {
		return StateValidated
	}
	return StateUnvalidated
}

// EmployeeIDOf extracts the employee ID from a document filename, or "".
func EmployeeIDOf(filename string) string {
	m := employeeIDPattern.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}
	return m[1]
}

// UnvalidatedPath returns the absolute path of the unvalidated document.
func (s *Store) UnvalidatedPath(employeeID, payPeriod string) string {
	return filepath.Join(s.PeriodDir(payPeriod), UnvalidatedName(employeeID, payPeriod))
}

// ValidatedPath returns the absolute path of the validated document.
func (s *Store) ValidatedPath(employeeID, payPeriod string) string {
	return filepath.Join(s.PeriodDir(payPeriod), ValidatedName(employeeID, payPeriod))
}

// VerifyFile confirms path names a non-empty regular file. It is the guard run
// after every write and before every delete: the only copy of a document is
// never removed until its replacement passes this check.
func (s *Store) VerifyFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("docstore: %s: %w", filepath.Base(path), shared.ErrNotFound)
		}
		return fmt.Errorf("docstore: stat %s: %w: %v", filepath.Base(path), shared.ErrIOFailure, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("docstore: %s is not a regular file: %w", filepath.Base(path), shared.ErrIOFailure)
	}
	if info.Size() == 0 {
		return fmt.Errorf("docstore: %s is empty: %w", filepath.Base(path), shared.ErrIOFailure)
	}
	return nil
}

// Remove deletes path after a final verification that it still exists.
func (s *Store) Remove(path string) error {
	if err := s.VerifyFile(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("docstore: remove %s: %w: %v", filepath.Base(path), shared.ErrIOFailure, err)
	}
	return nil
}

// ListPeriods returns pay period directories, most recent first.
func (s *Store) ListPeriods() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("docstore: read root: %w: %v", shared.ErrIOFailure, err)
	}
	folders := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && shared.ValidPayPeriod(e.Name()) {
			folders = append(folders, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(folders)))
	return folders, nil
}

// ListDocuments returns the PDF filenames in a pay period directory together
// with the employee IDs parsed from them. A missing directory is an empty list.
func (s *Store) ListDocuments(payPeriod string) (files []string, employeeIDs []string, err error) {
	entries, err := os.ReadDir(s.PeriodDir(payPeriod))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("docstore: read period dir: %w: %v", shared.ErrIOFailure, err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".pdf") {
			continue
		}
		files = append(files, name)
		if id := EmployeeIDOf(name); id != "" {
			employeeIDs = append(employeeIDs, id)
		}
	}
	sort.Strings(files)
	return files, employeeIDs, nil
}

// HistoryEntry describes one stored document for an employee.
type HistoryEntry struct {
	Filename  string    `json:"filename"`
	PayPeriod string    `json:"payPeriod"`
	Submitted time.Time `json:"submittedDate"`
	Directory string    `json:"directory"`
}

// EmployeeHistory scans every pay period directory for documents belonging to
// employeeID, most recent first, capped at limit entries.
func (s *Store) EmployeeHistory(employeeID string, limit int) ([]HistoryEntry, error) {
	periods, err := s.ListPeriods()
	if err != nil {
		return nil, err
	}
	var history []HistoryEntry
	prefix := fmt.Sprintf("timecard_%s_", employeeID)
	for _, period := range periods {
		files, _, err := s.ListDocuments(period)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !strings.HasPrefix(f, prefix) {
				continue
			}
			info, err := os.Stat(filepath.Join(s.PeriodDir(period), f))
			if err != nil {
				continue
			}
			history = append(history, HistoryEntry{
				Filename:  f,
				PayPeriod: shared.PayPeriodLabel(period),
				Submitted: info.ModTime(),
				Directory: period,
			})
		}
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Submitted.After(history[j].Submitted) })
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

// ResolveDownload joins folder and file under the store root, rejecting any
// path that escapes the pay period directory.
func (s *Store) ResolveDownload(folder, file string) (string, error) {
	if err := shared.CheckPayPeriod(folder); err != nil {
		return "", err
	}
	clean := filepath.Base(filepath.Clean(file))
	if clean != file || clean == "." || clean == string(filepath.Separator) {
		return "", fmt.Errorf("docstore: illegal file name %q: %w", file, shared.ErrNotFound)
	}
	path := filepath.Join(s.PeriodDir(folder), clean)
	if err := s.VerifyFile(path); err != nil {
		return "", err
	}
	return path, nil
}
