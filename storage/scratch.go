package storage

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidFileName = errors.New("invalid file name")
	ErrFileTooLarge    = errors.New("file size exceeds the allowed limit")
	ErrWrongExtension  = errors.New("unsupported file extension")
)

// filePrefix marks files owned by the store so Sweep never touches anything else.
const filePrefix = "upload-"

// ScratchStore materializes uploads under one directory. Every saved file
// gets a fresh UUID name so concurrent requests never share a path.
type ScratchStore struct {
	dir string
	ttl time.Duration
}

// NewScratchStore creates dir if needed. ttl is the age after which Sweep
// treats a file as orphaned.
func NewScratchStore(dir string, ttl time.Duration) (*ScratchStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create directory %s: %w", dir, err)
	}
	return &ScratchStore{dir: dir, ttl: ttl}, nil
}

func (s *ScratchStore) Dir() string { return s.dir }

// Save copies the uploaded file into the store and returns its path. ext is
// the single accepted extension (".ifc"); maxSize <= 0 disables the limit.
func (s *ScratchStore) Save(fh *multipart.FileHeader, ext string, maxSize int64) (string, error) {
	filename := filepath.Base(fh.Filename)
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return "", ErrInvalidFileName
	}
	if ext != "" && !strings.EqualFold(filepath.Ext(filename), ext) {
		return "", fmt.Errorf("%w: %s (expected %s)", ErrWrongExtension, filename, ext)
	}
	if maxSize > 0 && fh.Size > maxSize {
		return "", ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return s.write(src, strings.ToLower(filepath.Ext(filename)))
}

// SaveReader stores r under a fresh name with the given extension.
func (s *ScratchStore) SaveReader(r io.Reader, ext string) (string, error) {
	return s.write(r, ext)
}

func (s *ScratchStore) write(r io.Reader, ext string) (string, error) {
	dstPath := filepath.Join(s.dir, filePrefix+uuid.NewString()+ext)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("unable to create the file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("unable to save the file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("unable to save the file: %w", err)
	}
	return dstPath, nil
}

// Remove deletes a file previously returned by Save. Paths outside the
// store are refused and a missing file is not an error.
func (s *ScratchStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		return fmt.Errorf("refusing to remove %s: outside scratch directory", path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Sweep removes store files last modified more than ttl before now and
// reports how many were deleted.
func (s *ScratchStore) Sweep(now time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("reading scratch directory: %w", err)
	}
	removed := 0
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), filePrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) <= s.ttl {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Printf("scratch sweep: removed %d orphaned file(s) from %s", removed, s.dir)
	}
	return removed, errors.Join(errs...)
}
