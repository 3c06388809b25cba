// Package export writes panel results to disk the way a browser download would:
// into one directory, never overwriting an existing file.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Format names the encoding of an export.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	Text Format = "text"
)

// Table is anything that can be flattened into CSV rows.
type Table interface {
	Header() []string
	Rows() [][]string
}

// Job describes one export.
type Job struct {
	Filename string
	Format   Format
	// Payload is marshalled for JSON, must be a Table for CSV, and a string
	// (or fmt.Stringer) for Text.
	Payload any
}

// Writer writes export jobs into Dir.
type Writer struct {
	Dir    string
	Logger *zap.Logger
}

// Write encodes job and stores it, returning the final path.
func (w *Writer) Write(job Job) (string, error) {
	if strings.TrimSpace(job.Filename) == "" {
		return "", errors.New("export: filename required")
	}
	data, err := Encode(job.Format, job.Payload)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", job.Filename, err)
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}
	path, err := freePath(w.Dir, filepath.Base(job.Filename))
	if err != nil {
		return "", err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("export write: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("export rename: %w", err)
	}
	if w.Logger != nil {
		w.Logger.Info("export written", zap.String("path", path), zap.String("format", string(job.Format)), zap.Int("bytes", len(data)))
	}
	return path, nil
}

// Encode renders payload in format.
func Encode(format Format, payload any) ([]byte, error) {
	switch format {
	case JSON:
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case CSV:
		tbl, ok := payload.(Table)
		if !ok {
			return nil, fmt.Errorf("csv payload %T is not a table", payload)
		}
		var buf bytes.Buffer
		cw := csv.NewWriter(&buf)
		if err := cw.Write(tbl.Header()); err != nil {
			return nil, err
		}
		if err := cw.WriteAll(tbl.Rows()); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case Text:
		switch v := payload.(type) {
		case string:
			return []byte(v), nil
		case fmt.Stringer:
			return []byte(v.String()), nil
		default:
			return nil, fmt.Errorf("text payload %T is not a string", payload)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// freePath returns dir/name, or "name (n).ext" for the first n not taken.
func freePath(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 0; n < 1000; n++ {
		candidate := name
		if n > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		path := filepath.Join(dir, candidate)
		_, err := os.Stat(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("export: no free name for %s", name)
}
