package worker

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoURLs is returned when URL list files contain no URLs at all.
var ErrNoURLs = errors.New("no URLs found")

// ReadURLsFromFile reads URLs from a file (one per line). Blank lines and
// lines starting with '#' are skipped and duplicates are dropped.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return urls, nil
}

// ReadURLFiles concatenates several URL list files, skipping files that do
// not exist and dropping duplicates across files. It returns ErrNoURLs when
// the combined list is empty.
func ReadURLFiles(paths []string) ([]string, error) {
	var urls []string
	seen := make(map[string]bool)

	for _, path := range paths {
		fileURLs, err := ReadURLsFromFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, u := range fileURLs {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}

	if len(urls) == 0 {
		return nil, ErrNoURLs
	}
	return urls, nil
}

// URLListPath is the list file written for a named category group.
func URLListPath(dir, group string) string {
	return filepath.Join(dir, group+"_urls.txt")
}

// WriteURLFile writes urls under a "# name" section header.
func WriteURLFile(path, name string, urls []string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close file: %w", closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "# %s\n", name); err != nil {
		return err
	}
	for _, u := range urls {
		if _, err := fmt.Fprintln(w, u); err != nil {
			return err
		}
	}
	return w.Flush()
}
