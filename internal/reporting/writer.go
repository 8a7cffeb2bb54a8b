package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mobula-token-fetch/internal/domain"
)

// WriteDetails writes one raw API payload to <dir>/<address>.json,
// creating dir if needed. Called incrementally, right after each fetch.
func WriteDetails(dir, address string, raw json.RawMessage) error {
	path := filepath.Join(dir, address+".json")
	return writeJSON(path, raw)
}

// WriteResults writes the whole RunResults mapping to path.
func WriteResults(path string, results domain.RunResults) error {
	return writeJSON(path, results)
}

// Print writes the RunResults mapping to w as indented JSON. This is the
// unconditional end-of-run summary.
func Print(w io.Writer, results domain.RunResults) error {
	data, err := marshalIndent(results)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeJSON(path string, v any) error {
	data, err := marshalIndent(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// marshalIndent pretty-prints with 2-space indentation. Raw payloads are
// re-indented so per-address files match the combined file's formatting.
func marshalIndent(v any) ([]byte, error) {
	if raw, ok := v.(json.RawMessage); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return nil, fmt.Errorf("indent payload: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal output: %w", err)
	}
	return data, nil
}
