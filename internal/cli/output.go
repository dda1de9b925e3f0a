package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/alnah/go-cryptocompare/internal/format"
)

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	if err := format.JSON(w, v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// priceLines renders a price payload as "FROM/TO value" lines in sorted
// order. from is used for the flat single-source shape {"USD": 1}; the
// matrix shape {"BTC": {"USD": 1}} carries its own source symbols.
func priceLines(w io.Writer, from string, v any, precision int) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("got %T: %w", v, ErrUnexpectedPayload)
	}

	for _, outer := range slices.Sorted(maps.Keys(m)) {
		switch inner := m[outer].(type) {
		case map[string]any:
			for _, to := range slices.Sorted(maps.Keys(inner)) {
				if err := priceLine(w, outer, to, inner[to], precision); err != nil {
					return err
				}
			}
		default:
			if err := priceLine(w, from, outer, inner, precision); err != nil {
				return err
			}
		}
	}
	return nil
}

func priceLine(w io.Writer, from, to string, v any, precision int) error {
	s, err := format.Price(v, precision)
	if err != nil {
		return fmt.Errorf("%s/%s: %w: %w", from, to, ErrUnexpectedPayload, err)
	}
	_, err = fmt.Fprintf(w, "%s/%s %s\n", from, to, s)
	return err
}

// writeFileAtomic writes content to path atomically.
// It fails if the file already exists (O_EXCL), preventing accidental overwrites.
// On write failure, the partial file is removed.
func writeFileAtomic(path string, content []byte) error {
	// #nosec G302 G304 -- user-specified output file with standard permissions
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrOutputExists)
		}
		return fmt.Errorf("cannot create output file: %w", err)
	}

	writeErr := func() error {
		defer func() { _ = f.Close() }()
		if _, err := f.Write(content); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}()

	if writeErr != nil {
		_ = os.Remove(path)
		return writeErr
	}

	return nil
}
