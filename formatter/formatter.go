package formatter

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bloodmagesoftware/floorplan/plan"
)

// Format rewrites every plan file in plansDir in canonical form.
func Format(w io.Writer, plansDir string) error {
	fmt.Fprintln(w, "Formatting floor plans...")

	files, err := plan.Files(plansDir)
	if err != nil {
		return err
	}

	changed := 0
	for _, path := range files {
		current, canonical, err := canonicalize(path)
		if err != nil {
			return err
		}
		if bytes.Equal(current, canonical) {
			continue
		}
		if err := os.WriteFile(path, canonical, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(w, "  Formatted: %s\n", path)
		changed++
	}

	fmt.Fprintf(w, "✅ Formatting completed (%d of %d files changed)\n", changed, len(files))
	return nil
}

// Check reports plan files that are not in canonical form without modifying them.
func Check(w io.Writer, plansDir string) error {
	fmt.Fprintln(w, "Checking floor plan formatting...")

	files, err := plan.Files(plansDir)
	if err != nil {
		return err
	}

	var unformatted []string
	for _, path := range files {
		current, canonical, err := canonicalize(path)
		if err != nil {
			return err
		}
		if !bytes.Equal(current, canonical) {
			unformatted = append(unformatted, path)
			fmt.Fprintf(w, "  Needs formatting: %s\n", path)
		}
	}

	if len(unformatted) > 0 {
		return fmt.Errorf("checking format: %d files need formatting", len(unformatted))
	}

	fmt.Fprintln(w, "✅ Format check completed")
	return nil
}

// canonicalize returns the file's bytes and the bytes it would have after a load and save.
func canonicalize(path string) ([]byte, []byte, error) {
	current, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	p := plan.New()
	if err := p.Decode(bytes.NewReader(current)); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return nil, nil, fmt.Errorf("encoding %s: %w", path, err)
	}
	return current, buf.Bytes(), nil
}
