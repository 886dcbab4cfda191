// Package export writes shopping lists to plain text files.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// FileExporter writes one line per shopping list item. Relative names are
// resolved against Dir.
type FileExporter struct {
	Dir string
}

func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{Dir: dir}
}

// WriteLines replaces filename with lines, each terminated by a newline.
func (e *FileExporter) WriteLines(filename string, lines []string) (err error) {
	if filename == "" {
		return fmt.Errorf("export: empty filename")
	}
	path := filename
	if !filepath.IsAbs(path) && e.Dir != "" {
		path = filepath.Join(e.Dir, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create dir %q: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: close %q: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("export: write %q: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("export: write %q: %w", path, err)
	}
	return nil
}
