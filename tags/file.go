package tags

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadFile reads a registry from a tag file.
//
// Each non-blank line not starting with '#' is tab separated:
//
//	<id>	<uid>	<label>
//
// where uid is anything ParseUID accepts. The label may be omitted.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tag file: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			return nil, fmt.Errorf("%s:%d: expected <id><TAB><uid>[<TAB><label>]", path, lineNo)
		}
		id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad id %q", path, lineNo, parts[0])
		}
		uid, err := ParseUID(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		var label string
		if len(parts) >= 3 {
			label = strings.TrimSpace(parts[2])
		}
		records = append(records, Record{ID: id, UID: uid, Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tag file: %w", err)
	}

	return NewRegistry(records)
}

// WriteFile writes the registry in the format read by LoadFile.
// The file is written to a temporary name and renamed into place.
func WriteFile(path string, r *Registry) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	w := bufio.NewWriter(file)
	for _, rec := range r.records {
		fmt.Fprintf(w, "%d\t%s\t%s\n", rec.ID, rec.UID.Hex(), rec.Label)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("write tag file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close tag file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename tag file: %w", err)
	}
	return nil
}
