// Package datasource loads candidate lists for autocomplete fields.
//
// Sources are plain files picked by extension. Loading is the caller's job;
// the autocomplete only ever sees the resulting []string, and any failure
// here degrades to an empty list through LoadOrEmpty.
package datasource

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"clientele/internal/debug"
	apperrors "clientele/internal/errors"
)

// Load reads the candidate list stored at path.
func Load(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, apperrors.New(apperrors.CodeSourceUnreadable, "empty source path", nil)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return loadSpreadsheet(path)
	case ".txt", ".lst", "":
		return withFile(path, readLines)
	case ".json":
		return withFile(path, readJSON)
	case ".csv":
		return withFile(path, readCSV)
	case ".html", ".htm":
		return withFile(path, readHTML)
	default:
		return nil, apperrors.New(apperrors.CodeUnsupportedSource, fmt.Sprintf("unsupported source type %q", ext), nil)
	}
}

// LoadOrEmpty is Load with failures logged and mapped to an empty list.
func LoadOrEmpty(ctx context.Context, path string) []string {
	values, err := Load(ctx, path)
	if err != nil {
		debug.Debug("candidate source degraded to empty", "path", path, "err", err)
		return []string{}
	}
	return values
}

// Merge concatenates lists, dropping blanks and repeated values. The first
// occurrence of a value keeps its position.
func Merge(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, v := range list {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func withFile(path string, read func(io.Reader) ([]string, error)) ([]string, error) {
	//nolint:gosec // G304: sources are user-configured files
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeSourceUnreadable, fmt.Sprintf("open %s", path), err)
	}
	defer func() {
		_ = f.Close()
	}()
	values, err := read(f)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeSourceUnreadable, fmt.Sprintf("parse %s", path), err)
	}
	return Merge(values), nil
}

// readLines takes one value per line; blank lines and # comments are skipped.
func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// readJSON accepts ["a","b"] or [{"name":"a"},...].
func readJSON(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		return plain, nil
	}
	var objects []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, errors.New("expected a JSON array of strings or of objects with a name")
	}
	out := make([]string, 0, len(objects))
	for _, o := range objects {
		out = append(out, o.Name)
	}
	return out, nil
}

// readCSV takes the first column, skipping a "name" header row.
func readCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return firstColumn(records), nil
}

func firstColumn(rows [][]string) []string {
	var out []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "name") {
			continue
		}
		out = append(out, row[0])
	}
	return out
}
