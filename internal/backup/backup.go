// Package backup snapshots the files of the configuration directory so they
// survive branch operations that delete and recreate that directory.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Entry is the captured content of one file. It also keeps a copy in a
// temporary file for as long as the entry is alive.
type Entry struct {
	Filename string
	Content  string
	temp     *os.File
}

// Close releases the temporary copy of the entry
func (e *Entry) Close() error {
	if e.temp == nil {
		return nil
	}
	name := e.temp.Name()
	err := e.temp.Close()
	e.temp = nil
	return errors.Join(err, os.Remove(name))
}

// Snapshot reads every regular file directly inside dir.
// Files that cannot be read are left out. A missing dir yields no entries.
func Snapshot(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("could not read files in directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if !dirEntry.Type().IsRegular() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, dirEntry.Name()))
		if err != nil {
			continue
		}
		temp, err := keepTempCopy(content)
		if err != nil {
			Release(entries)
			return nil, err
		}
		entries = append(entries, Entry{
			Filename: dirEntry.Name(),
			Content:  string(content),
			temp:     temp,
		})
	}
	return entries, nil
}

func keepTempCopy(content []byte) (*os.File, error) {
	temp, err := os.CreateTemp("", "patchy-backup-*")
	if err != nil {
		return nil, fmt.Errorf("could not create backup file: %w", err)
	}
	if _, err := temp.Write(content); err != nil {
		_ = temp.Close()
		_ = os.Remove(temp.Name())
		return nil, fmt.Errorf("could not write backup file: %w", err)
	}
	return temp, nil
}

// Restore writes every entry into dir, in snapshot order. dir must exist.
// The first failure stops the restore.
func Restore(entries []Entry, dir string) error {
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Filename)
		if err := os.WriteFile(path, []byte(entry.Content), 0o644); err != nil {
			return fmt.Errorf("could not restore %s: %w", path, err)
		}
	}
	return nil
}

// Release closes the temporary copies of all entries
func Release(entries []Entry) {
	for i := range entries {
		_ = entries[i].Close()
	}
}
