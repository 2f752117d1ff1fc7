package abi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	diag "abi2ts/internal/errors"
)

// DecodeError reports an ABI document that could not be turned into a
// Contract. Offset is the byte offset of the problem in the document, or
// -1 when it is not known.
type DecodeError struct {
	Path    string
	Code    string
	Offset  int64
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type rawIO struct {
	Name         string  `json:"name"`
	Type         *string `json:"type"`
	InternalType *string `json:"internalType"`
	Indexed      bool    `json:"indexed"`
}

type rawEntry struct {
	Type            *string  `json:"type"`
	Name            *string  `json:"name"`
	StateMutability *string  `json:"stateMutability"`
	Constant        bool     `json:"constant"`
	Anonymous       bool     `json:"anonymous"`
	Inputs          *[]rawIO `json:"inputs"`
	Outputs         *[]rawIO `json:"outputs"`
}

// fieldError is an entry-level problem; the caller attaches the offset.
type fieldError struct {
	code    string
	message string
}

func (e *fieldError) Error() string { return e.message }

func missing(field string) error {
	return &fieldError{code: diag.ErrorMissingField, message: fmt.Sprintf("missing required field %q", field)}
}

// Decode decodes an ABI artifact: a JSON object carrying "abi" and a
// contract name in "contractName" or "name".
func Decode(data []byte) (*Contract, error) {
	return DecodeSource("", data)
}

// DecodeFile reads and decodes the ABI document at path.
func DecodeFile(path string) (*Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeSource(path, data)
}

// DecodeSource decodes data read from path. Path only labels errors and,
// when the document is a bare ABI array, supplies the contract name
// through its file stem.
func DecodeSource(path string, data []byte) (*Contract, error) {
	d := &decoder{path: path, data: data}
	return d.decode()
}

type decoder struct {
	path string
	data []byte
	dec  *json.Decoder
}

func (d *decoder) fail(code string, offset int64, format string, args ...any) *DecodeError {
	return &DecodeError{Path: d.path, Code: code, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func (d *decoder) decode() (*Contract, error) {
	// A full validation pass first, so syntax errors carry document offsets.
	var probe any
	if err := json.Unmarshal(d.data, &probe); err != nil {
		var syntax *json.SyntaxError
		if errors.As(err, &syntax) {
			e := d.fail(diag.ErrorMalformedJSON, syntax.Offset, "malformed JSON: %v", syntax)
			e.Err = err
			return nil, e
		}
		e := d.fail(diag.ErrorMalformedJSON, -1, "malformed JSON: %v", err)
		e.Err = err
		return nil, e
	}

	d.dec = json.NewDecoder(bytes.NewReader(d.data))
	tok, err := d.dec.Token()
	if err != nil {
		return nil, d.fail(diag.ErrorMalformedJSON, -1, "malformed JSON: %v", err)
	}

	switch tok {
	case json.Delim('['):
		name := strings.TrimSuffix(filepath.Base(d.path), filepath.Ext(d.path))
		if d.path == "" || name == "" {
			return nil, d.fail(diag.ErrorMissingField, 0, "bare ABI array has no contract name")
		}
		entries, err := d.entries()
		if err != nil {
			return nil, err
		}
		return &Contract{Name: name, ABI: entries}, nil
	case json.Delim('{'):
		return d.artifact()
	default:
		return nil, d.fail(diag.ErrorWrongJSONType, 0, "expected a JSON object or array at top level")
	}
}

func (d *decoder) artifact() (*Contract, error) {
	var contractName, name *string
	var entries []Entry
	seenABI := false

	for d.dec.More() {
		keyOffset := skipSpace(d.data, skipSeparators(d.data, d.dec.InputOffset()))
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.fail(diag.ErrorMalformedJSON, keyOffset, "malformed JSON: %v", err)
		}
		key, _ := tok.(string)

		switch key {
		case "abi":
			valueOffset := skipSpace(d.data, skipSeparators(d.data, d.dec.InputOffset()))
			tok, err := d.dec.Token()
			if err != nil {
				return nil, d.fail(diag.ErrorMalformedJSON, valueOffset, "malformed JSON: %v", err)
			}
			if tok != json.Delim('[') {
				return nil, d.fail(diag.ErrorWrongJSONType, valueOffset, "field \"abi\" must be an array")
			}
			if entries, err = d.entries(); err != nil {
				return nil, err
			}
			seenABI = true
		case "contractName", "name":
			valueOffset := skipSpace(d.data, skipSeparators(d.data, d.dec.InputOffset()))
			var s string
			if err := d.dec.Decode(&s); err != nil {
				return nil, d.fail(diag.ErrorWrongJSONType, valueOffset, "field %q must be a string", key)
			}
			if key == "contractName" {
				contractName = &s
			} else {
				name = &s
			}
		default:
			var skip json.RawMessage
			if err := d.dec.Decode(&skip); err != nil {
				return nil, d.fail(diag.ErrorMalformedJSON, keyOffset, "malformed JSON: %v", err)
			}
		}
	}

	if !seenABI {
		return nil, d.fail(diag.ErrorMissingField, 0, "missing required field %q", "abi")
	}
	c := &Contract{ABI: entries}
	switch {
	case contractName != nil && *contractName != "":
		c.Name = *contractName
	case name != nil && *name != "":
		c.Name = *name
	default:
		return nil, d.fail(diag.ErrorMissingField, 0, "missing required field %q", "contractName")
	}
	return c, nil
}

// entries decodes array elements until the closing bracket, which it consumes.
func (d *decoder) entries() ([]Entry, error) {
	entries := []Entry{}
	for i := 0; d.dec.More(); i++ {
		base := skipSeparators(d.data, d.dec.InputOffset())
		start := skipSpace(d.data, base)

		var raw rawEntry
		if err := d.dec.Decode(&raw); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				e := d.fail(diag.ErrorWrongJSONType, base+typeErr.Offset,
					"abi[%d]: field %q must be %s, got %s", i, typeErr.Field, jsonKind(typeErr.Type.Kind().String()), typeErr.Value)
				e.Err = err
				return nil, e
			}
			return nil, d.fail(diag.ErrorMalformedJSON, start, "abi[%d]: %v", i, err)
		}

		entry, err := raw.entry()
		if err != nil {
			code := diag.ErrorMalformedJSON
			var fe *fieldError
			if errors.As(err, &fe) {
				code = fe.code
			}
			return nil, d.fail(code, start, "abi[%d]: %v", i, err)
		}
		entries = append(entries, entry)
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, d.fail(diag.ErrorMalformedJSON, -1, "malformed JSON: %v", err)
	}
	return entries, nil
}

func (r *rawEntry) entry() (Entry, error) {
	if r.Type == nil {
		return nil, missing("type")
	}

	switch *r.Type {
	case "function":
		if r.Name == nil {
			return nil, missing("name")
		}
		mutability, err := r.mutability()
		if err != nil {
			return nil, err
		}
		inputs, err := ios("inputs", r.Inputs)
		if err != nil {
			return nil, err
		}
		outputs, err := ios("outputs", r.Outputs)
		if err != nil {
			return nil, err
		}
		return &Function{
			Name:       *r.Name,
			Mutability: mutability,
			Constant:   r.Constant,
			Inputs:     inputs,
			Outputs:    outputs,
		}, nil

	case "constructor":
		mutability, err := r.mutability()
		if err != nil {
			return nil, err
		}
		inputs, err := ios("inputs", r.Inputs)
		if err != nil {
			return nil, err
		}
		return &Constructor{Inputs: inputs, Mutability: mutability}, nil

	case "event":
		if r.Name == nil {
			return nil, missing("name")
		}
		if r.Inputs == nil {
			return nil, missing("inputs")
		}
		inputs := make([]EventInput, len(*r.Inputs))
		for i, in := range *r.Inputs {
			if in.Type == nil {
				return nil, &fieldError{code: diag.ErrorMissingField, message: fmt.Sprintf("inputs[%d]: missing required field %q", i, "type")}
			}
			inputs[i] = EventInput{
				Name:         in.Name,
				Indexed:      in.Indexed,
				Type:         ParseDataType(*in.Type),
				InternalType: ParseDataType(in.internalType()),
			}
		}
		return &Event{Anonymous: r.Anonymous, Name: *r.Name, Inputs: inputs}, nil

	default:
		return nil, &fieldError{code: diag.ErrorUnknownEntryType, message: fmt.Sprintf("unknown entry type %q", *r.Type)}
	}
}

func (r *rawEntry) mutability() (StateMutability, error) {
	if r.StateMutability == nil {
		return "", missing("stateMutability")
	}
	m, err := ParseStateMutability(*r.StateMutability)
	if err != nil {
		return "", &fieldError{code: diag.ErrorInvalidValue, message: err.Error()}
	}
	return m, nil
}

func ios(field string, raw *[]rawIO) ([]FuncIO, error) {
	if raw == nil {
		return nil, missing(field)
	}
	out := make([]FuncIO, len(*raw))
	for i, p := range *raw {
		if p.Type == nil {
			return nil, &fieldError{code: diag.ErrorMissingField, message: fmt.Sprintf("%s[%d]: missing required field %q", field, i, "type")}
		}
		out[i] = FuncIO{
			Name:         p.Name,
			Type:         ParseDataType(*p.Type),
			InternalType: ParseDataType(p.internalType()),
		}
	}
	return out, nil
}

func (r rawIO) internalType() string {
	if r.InternalType != nil {
		return *r.InternalType
	}
	return *r.Type
}

func jsonKind(goKind string) string {
	switch goKind {
	case "string":
		return "a string"
	case "bool":
		return "a boolean"
	case "slice":
		return "an array"
	case "struct", "map":
		return "an object"
	default:
		return goKind
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func skipSpace(data []byte, off int64) int64 {
	for off < int64(len(data)) && isSpace(data[off]) {
		off++
	}
	return off
}

// skipSeparators mirrors json.Decoder, which consumes the whitespace and
// the ',' or ':' preceding a value before decoding it.
func skipSeparators(data []byte, off int64) int64 {
	i := skipSpace(data, off)
	if i < int64(len(data)) && (data[i] == ',' || data[i] == ':') {
		return i + 1
	}
	return off
}
