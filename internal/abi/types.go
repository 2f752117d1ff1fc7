package abi

import (
	"fmt"
	"strings"
)

// Kind enumerates the DataType variants.
type Kind int

const (
	KindUInt256 Kind = iota
	KindUInt8
	KindUInt8Array
	KindUInt256Array
	KindString
	KindAddress
	KindBool
	KindContract
	KindEnum
	KindOther
)

var kindNames = map[Kind]string{
	KindUInt256:      "UInt256",
	KindUInt8:        "UInt8",
	KindUInt8Array:   "UInt8Array",
	KindUInt256Array: "UInt256Array",
	KindString:       "String",
	KindAddress:      "Address",
	KindBool:         "Bool",
	KindContract:     "Contract",
	KindEnum:         "Enum",
	KindOther:        "Other",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DataType is a decoded ABI type. Name is only meaningful for
// Contract, Enum (the declared name) and Other (the raw type string).
type DataType struct {
	Kind Kind
	Name string
}

var (
	UInt256      = DataType{Kind: KindUInt256}
	UInt8        = DataType{Kind: KindUInt8}
	UInt8Array   = DataType{Kind: KindUInt8Array}
	UInt256Array = DataType{Kind: KindUInt256Array}
	String       = DataType{Kind: KindString}
	Address      = DataType{Kind: KindAddress}
	Bool         = DataType{Kind: KindBool}
)

// ContractType returns the type of a reference to the named contract.
func ContractType(name string) DataType { return DataType{Kind: KindContract, Name: name} }

// EnumType returns the type of the named enumeration.
func EnumType(name string) DataType { return DataType{Kind: KindEnum, Name: name} }

// OtherType returns an unrecognized type carrying the raw string verbatim.
func OtherType(raw string) DataType { return DataType{Kind: KindOther, Name: raw} }

const (
	contractPrefix = "contract "
	enumPrefix     = "enum "
)

var keywords = map[string]DataType{
	"uint256":   UInt256,
	"uint8":     UInt8,
	"uint8[]":   UInt8Array,
	"uint256[]": UInt256Array,
	"string":    String,
	"address":   Address,
	"bool":      Bool,
}

// ParseDataType decodes a raw ABI type string. It never fails: strings
// that are not a known keyword or a contract/enum reference become Other.
func ParseDataType(raw string) DataType {
	if dt, ok := keywords[raw]; ok {
		return dt
	}
	if name, ok := strings.CutPrefix(raw, contractPrefix); ok {
		return ContractType(name)
	}
	if name, ok := strings.CutPrefix(raw, enumPrefix); ok {
		return EnumType(name)
	}
	return OtherType(raw)
}

func (d DataType) String() string {
	switch d.Kind {
	case KindContract, KindEnum, KindOther:
		return fmt.Sprintf("%s(%s)", d.Kind, d.Name)
	default:
		return d.Kind.String()
	}
}

// Raw returns the type as written in an ABI document.
func (d DataType) Raw() string {
	switch d.Kind {
	case KindContract:
		return contractPrefix + d.Name
	case KindEnum:
		return enumPrefix + d.Name
	case KindOther:
		return d.Name
	default:
		return d.Canonical()
	}
}

// Canonical returns the type as it appears in a canonical function
// signature such as "transfer(address,uint256)".
func (d DataType) Canonical() string {
	switch d.Kind {
	case KindUInt256:
		return "uint256"
	case KindUInt8:
		return "uint8"
	case KindUInt8Array:
		return "uint8[]"
	case KindUInt256Array:
		return "uint256[]"
	case KindString:
		return "string"
	case KindAddress, KindContract:
		return "address"
	case KindBool:
		return "bool"
	case KindEnum:
		return "uint8"
	default:
		return d.Name
	}
}

// StateMutability describes how a function interacts with chain state.
type StateMutability string

const (
	NonPayable StateMutability = "nonpayable"
	Payable    StateMutability = "payable"
	View       StateMutability = "view"
	Pure       StateMutability = "pure"
)

// ParseStateMutability validates a raw stateMutability value.
func ParseStateMutability(raw string) (StateMutability, error) {
	switch m := StateMutability(raw); m {
	case NonPayable, Payable, View, Pure:
		return m, nil
	default:
		return "", fmt.Errorf("unknown state mutability %q", raw)
	}
}

// ReadOnly reports whether calls never modify state.
func (m StateMutability) ReadOnly() bool {
	return m == View || m == Pure
}

// FuncIO is a function input or output. Name may be empty.
type FuncIO struct {
	Name         string
	Type         DataType
	InternalType DataType
}

// EventInput is an event parameter.
type EventInput struct {
	Name         string
	Indexed      bool
	Type         DataType
	InternalType DataType
}

// Entry is one element of a contract ABI: *Constructor, *Event or *Function.
type Entry interface {
	entryType() string
}

type Constructor struct {
	Inputs     []FuncIO
	Mutability StateMutability
}

type Event struct {
	Anonymous bool
	Name      string
	Inputs    []EventInput
}

type Function struct {
	Name       string
	Mutability StateMutability
	Constant   bool
	Inputs     []FuncIO
	Outputs    []FuncIO
}

func (*Constructor) entryType() string { return "constructor" }
func (*Event) entryType() string       { return "event" }
func (*Function) entryType() string    { return "function" }

// EntryType returns the ABI "type" discriminator of e.
func EntryType(e Entry) string {
	return e.entryType()
}

// Signature returns the canonical signature, e.g. "balanceOf(address)".
func (f *Function) Signature() string {
	types := make([]string, len(f.Inputs))
	for i, in := range f.Inputs {
		types[i] = in.Type.Canonical()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(types, ","))
}

// Contract is the decoded ABI of a single contract. Entry order is
// significant and preserved into generated output.
type Contract struct {
	Name string
	ABI  []Entry
}

// Functions returns the function entries in declaration order.
func (c *Contract) Functions() []*Function {
	var fns []*Function
	for _, e := range c.ABI {
		if fn, ok := e.(*Function); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}
