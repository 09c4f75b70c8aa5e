package presenter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Egor213/LogTrail/internal/broker"
	"github.com/Egor213/LogTrail/internal/domain"
	"github.com/Egor213/LogTrail/internal/parser"
)

const (
	FormatBlock = "block"
	FormatJSON  = "json"
	FormatTable = "table"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Renderer interface {
	Render(w io.Writer, entries []domain.LogEntry) error
}

func New(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", FormatBlock:
		return BlockRenderer{}, nil
	case FormatJSON:
		r, err := NewJSONRenderer()
		if err != nil {
			return nil, err
		}
		return r, nil
	case FormatTable:
		return NewTableRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// BlockRenderer writes entries in their source format, separated by blank
// lines, so the output can be fed back to the parser.
type BlockRenderer struct{}

func (BlockRenderer) Render(w io.Writer, entries []domain.LogEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, parser.Format(e)); err != nil {
			return err
		}
	}
	return nil
}

// JSONRenderer writes one JSON object per line.
type JSONRenderer struct {
	codec broker.Codec
}

func NewJSONRenderer() (JSONRenderer, error) {
	codec, err := broker.NewCodec(broker.EncodingJSON)
	if err != nil {
		return JSONRenderer{}, err
	}
	return JSONRenderer{codec: codec}, nil
}

func (r JSONRenderer) Render(w io.Writer, entries []domain.LogEntry) error {
	for _, e := range entries {
		data, err := r.codec.Encode(e)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}
