package save

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/peterkuimelis/virologists/internal/game"
)

// WriteSnapshot writes gs as a zstd-compressed JSON document. The file is
// written to a temporary name and renamed into place.
func WriteSnapshot(path string, gs *game.GameState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := EncodeSnapshot(f, Export(gs)); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// EncodeSnapshot writes doc to w as compressed JSON.
func EncodeSnapshot(w io.Writer, doc *Document) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)
	if err := json.NewEncoder(bw).Encode(doc); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// DecodeSnapshot reads and validates a compressed JSON document.
func DecodeSnapshot(r io.Reader) (*Document, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}
	if err := ValidateJSON(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrGraphConstruction, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrGraphConstruction, err)
	}
	return &doc, nil
}

// ReadSnapshot loads a snapshot and builds a started game from it.
func ReadSnapshot(path string, rules game.Rules) (*game.GameState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Build(doc, rules)
}
