package abi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"abi2ts/internal/abi"
)

// Keys in the second and third entries follow solc's sorted order, so the
// input named "owner" precedes the function named "owner".
const vaultDoc = `{"contractName": "Vault", "abi": [
  {"type": "function", "name" : "state", "inputs": []},
  {"inputs": [{"name": "owner", "type": "address"}], "name": "setOwner", "type": "function"},
  {"inputs": [], "name": "owner", "outputs": [{"name": "", "type": "contract Ownable"}], "type": "function"},
  {"type": "constructor", "inputs": [{"name": "x", "type": "bool"}]},
  {"type": "event", "name": 7}
]}`

func TestNameOffsets(t *testing.T) {
	doc := []byte(vaultDoc)

	offsets := abi.NameOffsets(doc)
	assert.Equal(t, []int64{68, 153, 211, -1, -1}, offsets)

	names := []string{"state", "setOwner", "owner"}
	for i, name := range names {
		assert.Equal(t, name, string(doc[offsets[i]:offsets[i]+int64(len(name))]))
	}

	assert.Equal(t, int64(211), abi.NameOffset(doc, 2))
	assert.Equal(t, int64(-1), abi.NameOffset(doc, 3))
	assert.Equal(t, int64(-1), abi.NameOffset(doc, 9))
	assert.Equal(t, int64(-1), abi.NameOffset(doc, -1))
}

func TestNameOffsetsBareArray(t *testing.T) {
	doc := []byte(`[ {"name": "a"}, {"type": "receive"} ]`)
	assert.Equal(t, []int64{12, -1}, abi.NameOffsets(doc))
}

func TestNameOffsetsMalformed(t *testing.T) {
	assert.Nil(t, abi.NameOffsets([]byte(`{"abi": {}}`)))
	assert.Nil(t, abi.NameOffsets([]byte(`{"contractName": "A"}`)))
	assert.Nil(t, abi.NameOffsets([]byte(`"abi"`)))
	assert.Equal(t, []int64{10}, abi.NameOffsets([]byte(`[{"name":"a"}, {"name": ]`)))
}

func TestContractNameOffset(t *testing.T) {
	assert.Equal(t, int64(18), abi.ContractNameOffset([]byte(vaultDoc)))
	assert.Equal(t, int64(30), abi.ContractNameOffset([]byte(`{"contractName": "", "name": "Vault", "abi": []}`)))
	assert.Equal(t, int64(-1), abi.ContractNameOffset([]byte(`{"abi": []}`)))
	assert.Equal(t, int64(-1), abi.ContractNameOffset([]byte(`[]`)))
}
