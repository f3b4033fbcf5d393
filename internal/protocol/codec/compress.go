package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// CompressSaveState lz4-compresses a save state string for transmission.
func CompressSaveState(state string) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	w := lz4.NewWriter(buf)
	if _, err := io.WriteString(w, state); err != nil {
		return nil, fmt.Errorf("compress save state: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress save state: %w", err)
	}
	return append([]byte(nil), buf.Bytes()...), nil
}

// DecompressSaveState reverses CompressSaveState.
func DecompressSaveState(data []byte) (string, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if _, err := buf.ReadFrom(lz4.NewReader(bytes.NewReader(data))); err != nil {
		return "", fmt.Errorf("decompress save state: %w", err)
	}
	return buf.String(), nil
}
