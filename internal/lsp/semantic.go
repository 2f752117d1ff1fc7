package lsp

import (
	"encoding/json"
	"strings"

	diag "abi2ts/internal/errors"
)

// SemanticTokenTypes is the token legend advertised to clients
var SemanticTokenTypes = []string{
	"class",
	"function",
	"parameter",
	"type",
	"keyword",
	"modifier",
}

// SemanticTokenModifiers is the modifier legend advertised to clients
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask over SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// frame is an open JSON object or array. For objects key is the member
// being read; for arrays it is the member the array is the value of.
type frame struct {
	object    bool
	key       string
	expectKey bool
}

// collectSemanticTokens walks the document's JSON tokens and tags the
// string values abi2ts reads: the contract name, entry names, types and
// mutabilities, and parameter names and types. Tokenizing stops at the
// first syntax error.
func collectSemanticTokens(text string) []SemanticToken {
	var tokens []SemanticToken

	dec := json.NewDecoder(strings.NewReader(text))
	var stack []*frame

	for {
		tok, err := dec.Token()
		if err != nil {
			return tokens
		}

		var top *frame
		if len(stack) > 0 {
			top = stack[len(stack)-1]
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				owner := ""
				if top != nil && top.object {
					owner = top.key
					top.expectKey = true
				}
				stack = append(stack, &frame{object: v == '{', key: owner, expectKey: true})
			default:
				stack = stack[:len(stack)-1]
			}

		case string:
			if top != nil && top.object && top.expectKey {
				top.key = v
				top.expectKey = false
				continue
			}
			if top != nil && top.object {
				top.expectKey = true
			}
			if v == "" {
				continue
			}
			end := dec.InputOffset()
			if tokenType, modifiers, ok := classify(stack, v); ok {
				tokens = append(tokens, stringToken(text, end, tokenType, modifiers))
			}

		default:
			if top != nil && top.object {
				top.expectKey = true
			}
		}
	}
}

// classify decides how a string value is highlighted from its member key
// and the array holding its object.
func classify(stack []*frame, value string) (string, int, bool) {
	if len(stack) == 0 || !stack[len(stack)-1].object {
		return "", 0, false
	}
	key := stack[len(stack)-1].key

	if len(stack) == 1 {
		if key == "contractName" || key == "name" {
			return "class", declaration, true
		}
		return "", 0, false
	}

	switch stack[len(stack)-2].key {
	case "inputs", "outputs", "components":
		switch key {
		case "name":
			return "parameter", declaration, true
		case "type", "internalType":
			return "type", 0, true
		}
	case "abi", "":
		switch key {
		case "name":
			return "function", declaration, true
		case "type":
			return "keyword", 0, true
		case "stateMutability":
			if value == "view" || value == "pure" {
				return "modifier", readonly, true
			}
			return "modifier", 0, true
		}
	}
	return "", 0, false
}

var (
	declaration = 1 << indexOf("declaration", SemanticTokenModifiers)
	readonly    = 1 << indexOf("readonly", SemanticTokenModifiers)
)

// stringToken builds the token for the string literal ending at offset
// end, excluding its quotes.
func stringToken(text string, end int64, tokenType string, modifiers int) SemanticToken {
	closing := int(end) - 1
	opening := closing - 1
	for opening > 0 && (text[opening] != '"' || text[opening-1] == '\\') {
		opening--
	}

	pos := diag.PositionAt(text, int64(opening+1))
	return SemanticToken{
		Line:           uint32(pos.Line - 1),
		StartChar:      uint32(pos.Column - 1),
		Length:         uint32(closing - opening - 1),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
