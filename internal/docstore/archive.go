package docstore

import (
	"archive/zip"
	"compress/flate"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/firedesk/timecard/internal/shared"
)

// ArchiveName returns the submission bundle filename for a pay period.
func ArchiveName(payPeriod string) string {
	return fmt.Sprintf("Timecards_%s.zip", payPeriod)
}

// ArchivePath returns the absolute path of the submission bundle.
func (s *Store) ArchivePath(payPeriod string) string {
	return filepath.Join(s.PeriodDir(payPeriod), ArchiveName(payPeriod))
}

// ArchiveResult reports what went into a submission bundle.
type ArchiveResult struct {
	Path    string
	Added   int
	Skipped []string
}

// BuildArchive writes the submission zip for payPeriod containing the named
// files from the period directory at maximum compression. Files that are
// missing on disk are skipped and reported in the result; the caller decides
// whether that is acceptable. An archive with zero entries is an error.
func (s *Store) BuildArchive(ctx context.Context, payPeriod string, filenames []string) (ArchiveResult, error) {
	res := ArchiveResult{Path: s.ArchivePath(payPeriod)}

	out, err := os.Create(res.Path)
	if err != nil {
		return res, fmt.Errorf("docstore: create archive: %w: %v", shared.ErrIOFailure, err)
	}
	defer func() {
		_ = out.Close()
	}()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	for _, name := range filenames {
		if err := ctx.Err(); err != nil {
			_ = zw.Close()
			return res, err
		}
		src := filepath.Join(s.PeriodDir(payPeriod), name)
		f, err := os.Open(src)
		if err != nil {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		entry, err := zw.Create(name)
		if err == nil {
			_, err = io.Copy(entry, f)
		}
		_ = f.Close()
		if err != nil {
			_ = zw.Close()
			return res, fmt.Errorf("docstore: archive %s: %w: %v", name, shared.ErrIOFailure, err)
		}
		res.Added++
	}

	if err := zw.Close(); err != nil {
		return res, fmt.Errorf("docstore: finalize archive: %w: %v", shared.ErrIOFailure, err)
	}
	if err := out.Close(); err != nil {
		return res, fmt.Errorf("docstore: close archive: %w: %v", shared.ErrIOFailure, err)
	}
	if err := s.VerifyFile(res.Path); err != nil {
		return res, err
	}
	if res.Added == 0 {
		return res, fmt.Errorf("docstore: archive has no entries: %w", shared.ErrIOFailure)
	}
	return res, nil
}
