package reprise

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec is the external structured-text encoding used both to embed values
// in generated tests and to decode them back when the test runs. It must be
// lossless for every Executable's state and every argument value: for any
// such value v, Decode(Encode(v)) yields a value equal to v.
//
// Name is emitted into generated source as "reprise.<Name>", so each codec
// must be reachable as a package-level variable of that name.
type Codec interface {
	Name() string
	Encode(v any) (string, error)
	Decode(text string, v any) error
}

// JSON is the default codec: two-space indented encoding/json output, the
// canonical pretty-printed form embedded in generated tests.
var JSON Codec = jsonCodec{}

// YAML encodes with gopkg.in/yaml.v3. Useful when snapshots are reviewed by
// humans; JSON remains the default.
var YAML Codec = yamlCodec{}

// CodecByName resolves a codec from its Name. Used when captures are loaded
// back from storage.
func CodecByName(name string) (Codec, bool) {
	switch name {
	case "JSON":
		return JSON, true
	case "YAML":
		return YAML, true
	default:
		return nil, false
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "JSON" }

func (jsonCodec) Encode(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (jsonCodec) Decode(text string, v any) error {
	return json.Unmarshal([]byte(text), v)
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "YAML" }

func (yamlCodec) Encode(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	// yaml.Marshal terminates the document with a newline; the renderer
	// controls line layout itself.
	return strings.TrimSuffix(string(data), "\n"), nil
}

func (yamlCodec) Decode(text string, v any) error {
	return yaml.Unmarshal([]byte(text), v)
}
