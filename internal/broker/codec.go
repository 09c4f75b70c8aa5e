package broker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Egor213/LogTrail/internal/domain"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	EncodingJSON  = "json"
	EncodingProto = "proto"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

// Codec serializes entries as google.protobuf.Struct values, either in the
// canonical JSON mapping or in binary wire format.
type Codec struct {
	encoding string
}

func NewCodec(encoding string) (Codec, error) {
	switch e := strings.ToLower(encoding); e {
	case "", EncodingJSON:
		return Codec{encoding: EncodingJSON}, nil
	case EncodingProto:
		return Codec{encoding: EncodingProto}, nil
	default:
		return Codec{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
}

func (c Codec) Encoding() string {
	if c.encoding == "" {
		return EncodingJSON
	}
	return c.encoding
}

func (c Codec) Encode(e domain.LogEntry) ([]byte, error) {
	fields := map[string]any{
		"timestamp":     e.Timestamp.Format(time.RFC3339Nano),
		"raw_timestamp": e.RawTimestamp,
		"message":       e.Message,
		"grammar":       e.Grammar,
	}
	optional := map[string]string{
		"component":  e.Component,
		"level":      e.Level,
		"context":    e.Context,
		"breadcrumb": e.Breadcrumb,
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}

	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	if c.Encoding() == EncodingProto {
		return proto.Marshal(st)
	}
	return protojson.Marshal(st)
}

func (c Codec) Decode(data []byte) (domain.LogEntry, error) {
	st := &structpb.Struct{}

	var err error
	if c.Encoding() == EncodingProto {
		err = proto.Unmarshal(data, st)
	} else {
		err = protojson.Unmarshal(data, st)
	}
	if err != nil {
		return domain.LogEntry{}, err
	}

	str := func(key string) string {
		return st.GetFields()[key].GetStringValue()
	}

	ts, err := time.Parse(time.RFC3339Nano, str("timestamp"))
	if err != nil {
		return domain.LogEntry{}, err
	}

	return domain.LogEntry{
		Timestamp:    ts,
		RawTimestamp: str("raw_timestamp"),
		Component:    str("component"),
		Level:        str("level"),
		Context:      str("context"),
		Message:      str("message"),
		Breadcrumb:   str("breadcrumb"),
		Grammar:      str("grammar"),
	}, nil
}
