package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// codec encodes single values and the whole key/value blob.
type codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	EncodeBlob(entries map[string][]byte) ([]byte, error)
	DecodeBlob(data []byte) (map[string][]byte, error)
}

// codecFor picks JSON for .json paths and CBOR otherwise.
func codecFor(path string) codec {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return jsonCodec{}
	}
	return newCBORCodec()
}

type cborCodec struct {
	enc cbor.EncMode
}

func newCBORCodec() cborCodec {
	// Canonical options cannot fail to build.
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return cborCodec{enc: enc}
}

func (c cborCodec) Name() string { return "cbor" }

func (c cborCodec) Marshal(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c cborCodec) Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

func (c cborCodec) EncodeBlob(entries map[string][]byte) ([]byte, error) {
	raw := make(map[string]cbor.RawMessage, len(entries))
	for k, v := range entries {
		raw[k] = v
	}
	return c.enc.Marshal(raw)
}

func (c cborCodec) DecodeBlob(data []byte) (map[string][]byte, error) {
	var raw map[string]cbor.RawMessage
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	entries := make(map[string][]byte, len(raw))
	for k, v := range raw {
		entries[k] = v
	}
	return entries, nil
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) EncodeBlob(entries map[string][]byte) ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(entries))
	for k, v := range entries {
		raw[k] = v
	}
	return json.MarshalIndent(raw, "", "  ")
}

func (jsonCodec) DecodeBlob(data []byte) (map[string][]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	entries := make(map[string][]byte, len(raw))
	for k, v := range raw {
		entries[k] = v
	}
	return entries, nil
}
