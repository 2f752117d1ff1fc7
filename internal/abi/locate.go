package abi

import (
	"bytes"
	"encoding/json"
)

// NameOffsets returns, for each element of the document's ABI array, the
// byte offset of the first character of its own "name" value, inside the
// quotes. Elements without a string name get -1. Names nested in inputs or
// outputs are never reported. Scanning stops at the first malformed
// element, so the result may be shorter than the array.
func NameOffsets(data []byte) []int64 {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}

	switch tok {
	case json.Delim('['):
	case json.Delim('{'):
		found := false
		for !found && dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil
			}
			if key, _ := tok.(string); key == "abi" {
				if tok, err := dec.Token(); err != nil || tok != json.Delim('[') {
					return nil
				}
				found = true
				continue
			}
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil
			}
		}
		if !found {
			return nil
		}
	default:
		return nil
	}

	var offsets []int64
	for dec.More() {
		base := skipSpace(data, skipSeparators(data, dec.InputOffset()))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			break
		}
		offset := memberOffset(raw, "name")
		if offset >= 0 {
			offset += base
		}
		offsets = append(offsets, offset)
	}
	return offsets
}

// NameOffset returns the offset of the name of the ABI entry at index, or
// -1 when it has none.
func NameOffset(data []byte, index int) int64 {
	offsets := NameOffsets(data)
	if index < 0 || index >= len(offsets) {
		return -1
	}
	return offsets[index]
}

// ContractNameOffset returns the offset of the contract name value of an
// artifact: "contractName" when present and non-empty, else "name". It
// returns -1 for bare ABI arrays.
func ContractNameOffset(data []byte) int64 {
	for _, key := range []string{"contractName", "name"} {
		offset := memberOffset(data, key)
		if offset >= 0 && offset < int64(len(data)) && data[offset] != '"' {
			return offset
		}
	}
	return -1
}

// memberOffset finds the string value of key among the top-level members
// of the JSON object obj, returning the offset just past its opening quote.
func memberOffset(obj []byte, key string) int64 {
	dec := json.NewDecoder(bytes.NewReader(obj))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return -1
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return -1
		}
		start := skipSpace(obj, skipSeparators(obj, dec.InputOffset()))
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return -1
		}
		if k, _ := tok.(string); k == key {
			if len(value) == 0 || value[0] != '"' {
				return -1
			}
			return start + 1
		}
	}
	return -1
}
