package chain

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

const wordSize = 32

// Arg is one ABI-encodable call argument.
type Arg struct {
	kind string
	num  *big.Int
	addr string
	str  string
	flag bool
}

func Uint256(v *big.Int) Arg  { return Arg{kind: "uint256", num: v} }
func Uint64Arg(v uint64) Arg  { return Arg{kind: "uint256", num: new(big.Int).SetUint64(v)} }
func Uint8Arg(v uint8) Arg    { return Arg{kind: "uint8", num: big.NewInt(int64(v))} }
func Address(v string) Arg    { return Arg{kind: "address", addr: v} }
func Bool(v bool) Arg         { return Arg{kind: "bool", flag: v} }
func Str(v string) Arg        { return Arg{kind: "string", str: v} }
func Bytes32Hex(v string) Arg { return Arg{kind: "bytes32", str: v} }

// Keccak256 is the legacy (pre-NIST) Keccak used by the EVM for selectors,
// event topics and role hashes.
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// MethodID returns the 4-byte selector for a canonical function signature,
// e.g. "getLoanSummary(uint256)".
func MethodID(signature string) []byte {
	return Keccak256([]byte(signature))[:4]
}

// RoleHash derives the bytes32 role identifier the contract's hasRole view
// expects, e.g. RoleHash("BORROWER_ROLE").
func RoleHash(name string) string {
	return "0x" + hex.EncodeToString(Keccak256([]byte(name)))
}

// EncodeCall builds calldata for a function call: 4-byte selector followed by
// the head/tail ABI encoding of the arguments. Static arguments occupy one
// head word each; string arguments put an offset in the head and their padded
// payload in the tail.
func EncodeCall(signature string, args ...Arg) ([]byte, error) {
	head := make([][]byte, len(args))
	var tail []byte
	tailOffset := len(args) * wordSize

	for i, arg := range args {
		switch arg.kind {
		case "uint256", "uint8":
			word, err := encodeUintWord(arg.num)
			if err != nil {
				return nil, fmt.Errorf("arg %d: %w", i, err)
			}
			head[i] = word
		case "address":
			word, err := encodeAddressWord(arg.addr)
			if err != nil {
				return nil, fmt.Errorf("arg %d: %w", i, err)
			}
			head[i] = word
		case "bool":
			word := make([]byte, wordSize)
			if arg.flag {
				word[wordSize-1] = 1
			}
			head[i] = word
		case "bytes32":
			word, err := encodeBytes32Word(arg.str)
			if err != nil {
				return nil, fmt.Errorf("arg %d: %w", i, err)
			}
			head[i] = word
		case "string":
			offsetWord, err := encodeUintWord(big.NewInt(int64(tailOffset + len(tail))))
			if err != nil {
				return nil, fmt.Errorf("arg %d: %w", i, err)
			}
			head[i] = offsetWord
			tail = append(tail, encodeStringTail(arg.str)...)
		default:
			return nil, fmt.Errorf("arg %d: unsupported kind %q", i, arg.kind)
		}
	}

	data := MethodID(signature)
	for _, word := range head {
		data = append(data, word...)
	}
	data = append(data, tail...)
	return data, nil
}

func encodeUintWord(v *big.Int) ([]byte, error) {
	if v == nil || v.Sign() < 0 {
		return nil, fmt.Errorf("uint value must be non-negative")
	}
	raw := v.Bytes()
	if len(raw) > wordSize {
		return nil, fmt.Errorf("uint value overflows 256 bits")
	}
	word := make([]byte, wordSize)
	copy(word[wordSize-len(raw):], raw)
	return word, nil
}

func encodeAddressWord(addr string) ([]byte, error) {
	clean := strings.TrimSpace(addr)
	if !IsAddress(clean) {
		return nil, fmt.Errorf("invalid address %q", addr)
	}
	raw, err := hex.DecodeString(clean[2:])
	if err != nil {
		return nil, err
	}
	word := make([]byte, wordSize)
	copy(word[wordSize-len(raw):], raw)
	return word, nil
}

func encodeBytes32Word(v string) ([]byte, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(v), "0x")
	raw, err := hex.DecodeString(clean)
	if err != nil || len(raw) != wordSize {
		return nil, fmt.Errorf("invalid bytes32 %q", v)
	}
	return raw, nil
}

func encodeStringTail(s string) []byte {
	raw := []byte(s)
	lenWord, _ := encodeUintWord(big.NewInt(int64(len(raw))))
	padded := len(raw)
	if rem := padded % wordSize; rem != 0 {
		padded += wordSize - rem
	}
	out := make([]byte, 0, wordSize+padded)
	out = append(out, lenWord...)
	out = append(out, raw...)
	out = append(out, make([]byte, padded-len(raw))...)
	return out
}

// ReturnData wraps raw eth_call return bytes with word-indexed decoders.
type ReturnData struct {
	data []byte
}

func NewReturnData(data []byte) *ReturnData {
	return &ReturnData{data: data}
}

func (r *ReturnData) word(slot int) ([]byte, error) {
	start := slot * wordSize
	if start+wordSize > len(r.data) {
		return nil, fmt.Errorf("return data too short for slot %d", slot)
	}
	return r.data[start : start+wordSize], nil
}

func (r *ReturnData) Uint256(slot int) (*big.Int, error) {
	word, err := r.word(slot)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(word), nil
}

func (r *ReturnData) Uint64(slot int) (uint64, error) {
	v, err := r.Uint256(slot)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("slot %d overflows uint64", slot)
	}
	return v.Uint64(), nil
}

func (r *ReturnData) Bool(slot int) (bool, error) {
	v, err := r.Uint256(slot)
	if err != nil {
		return false, err
	}
	return v.Sign() != 0, nil
}

func (r *ReturnData) AddressAt(slot int) (string, error) {
	word, err := r.word(slot)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(word[wordSize-20:]), nil
}

// StringAt decodes a dynamic string whose head offset lives at slot.
func (r *ReturnData) StringAt(slot int) (string, error) {
	offset, err := r.Uint64(slot)
	if err != nil {
		return "", err
	}
	return r.stringAtOffset(int(offset))
}

func (r *ReturnData) stringAtOffset(offset int) (string, error) {
	if offset+wordSize > len(r.data) {
		return "", fmt.Errorf("string offset %d out of range", offset)
	}
	length := new(big.Int).SetBytes(r.data[offset : offset+wordSize])
	if !length.IsInt64() {
		return "", fmt.Errorf("invalid string length")
	}
	n := int(length.Int64())
	start := offset + wordSize
	if start+n > len(r.data) {
		return "", fmt.Errorf("string data out of range")
	}
	return string(r.data[start : start+n]), nil
}

// Uint256SliceAt decodes a dynamic uint256[] whose head offset lives at slot.
func (r *ReturnData) Uint256SliceAt(slot int) ([]*big.Int, error) {
	offset, err := r.Uint64(slot)
	if err != nil {
		return nil, err
	}
	start := int(offset)
	if start+wordSize > len(r.data) {
		return nil, fmt.Errorf("array offset %d out of range", start)
	}
	length := new(big.Int).SetBytes(r.data[start : start+wordSize])
	if !length.IsInt64() {
		return nil, fmt.Errorf("invalid array length")
	}
	n := int(length.Int64())
	out := make([]*big.Int, 0, n)
	for i := 0; i < n; i++ {
		wordStart := start + wordSize + i*wordSize
		if wordStart+wordSize > len(r.data) {
			return nil, fmt.Errorf("array element %d out of range", i)
		}
		out = append(out, new(big.Int).SetBytes(r.data[wordStart:wordStart+wordSize]))
	}
	return out, nil
}

func hexEncode(data []byte) string {
	return hex.EncodeToString(data)
}

func hexDecode(v string) ([]byte, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(v), "0x")
	if clean == "" {
		return nil, nil
	}
	return hex.DecodeString(clean)
}
