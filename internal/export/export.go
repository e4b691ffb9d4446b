// Package export renders a test vector set in the formats consumers ask for:
// the original C header, JSON, YAML, per-vector base64 lines and .fvecs.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yammerjp/demovectors/internal/testvectors"
	"github.com/yammerjp/demovectors/internal/util"
)

type Format string

const (
	FormatHeader Format = "header"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatBase64 Format = "base64"
	FormatFvecs  Format = "fvecs"
)

// Formats はサポートしている出力形式の一覧
var Formats = []Format{FormatHeader, FormatJSON, FormatYAML, FormatBase64, FormatFvecs}

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// Document はJSON/YAML出力の構造
type Document struct {
	Name      string      `json:"name" yaml:"name"`
	Count     int         `json:"count" yaml:"count"`
	Dimension int         `json:"dimension" yaml:"dimension"`
	Vectors   [][]float32 `json:"vectors" yaml:"vectors,flow"`
}

func NewDocument(set *testvectors.Set) Document {
	return Document{
		Name:      set.Name(),
		Count:     set.Len(),
		Dimension: set.Dim(),
		Vectors:   set.Vectors(),
	}
}

// Write は set を format で w に書き出します
func Write(w io.Writer, set *testvectors.Set, format Format) error {
	switch format {
	case FormatHeader:
		return WriteHeader(w, set)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewDocument(set)); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(set)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatBase64:
		return writeBase64(w, set)
	case FormatFvecs:
		return WriteFvecs(w, set.Vectors())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeBase64(w io.Writer, set *testvectors.Set) error {
	for i, v := range set.Vectors() {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", i, util.Float32ToBase64(v)); err != nil {
			return fmt.Errorf("failed to write vector %d: %w", i, err)
		}
	}
	return nil
}
