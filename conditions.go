package artmarket

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/artmarket/errors"
)

var (
	// AddressLength is the size of every address. It must not change
	// once the store holds data.
	AddressLength = 20

	// AddressHRP is the human readable part of a bech32 address.
	AddressHRP = "art"

	// (?s) lets the data section contain any byte, including a newline.
	conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)
)

// Condition names an authority that is not a key, or a key seen through an
// extension. The binary form is
//
//	<extension>/<type>/<data>
//
// Both extension and type are 3 to 8 characters long. The market custody of
// listed tokens is for example
//
//	NewCondition("market", "custody", []byte("ledger"))
type Condition []byte

// NewCondition builds a condition from its three sections.
func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse returns the extension, type and data of a well formed condition.
func (c Condition) Parse() (string, string, []byte, error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

// Validate fails if the condition is not well formed.
func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

// Address derives the account controlled by this condition. Nobody holds a
// private key for it.
func (c Condition) Address() Address {
	if c == nil {
		return nil
	}
	sum := sha256.Sum256(c)
	return Address(sum[:AddressLength])
}

func (c Condition) Equals(o Condition) bool {
	return bytes.Equal(c, o)
}

// String prints the extension and type as text and the data as hex.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal("")
	}
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	cond, err := parseCondition(s)
	if err != nil {
		return err
	}
	*c = cond
	return nil
}

// parseCondition reads the String form of a condition. An empty string is a
// nil condition.
func parseCondition(s string) (Condition, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil, errors.Wrapf(errors.ErrInput, "condition %q: want ext/type/data", s)
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "condition data: %s", err)
	}
	return NewCondition(parts[0], parts[1], data), nil
}

// Address identifies an account. It is either the digest of a Condition or
// of a public key and is AddressLength bytes long.
type Address []byte

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

// Clone returns a copy that does not share memory with a.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	return append(Address(nil), a...)
}

// Validate fails if the address has not the expected size.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address of %d bytes", len(a))
	}
	return nil
}

// String is the upper case hex encoding, or "(nil)" for an empty address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 encodes the address with the AddressHRP prefix.
func (a Address) Bech32() string {
	s, err := encodeBech32(AddressHRP, a)
	if err != nil {
		return a.String()
	}
	return s
}

// MarshalJSON writes the upper case hex form instead of base64.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts hex, optionally with a "hex:" prefix, as well as the
// "cond:<condition>" and "bech32:<address>" forms.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	addr, err := decodeAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

func decodeAddress(s string) (Address, error) {
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	if value == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		b, err := hex.DecodeString(value)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "hex address: %s", err)
		}
		addr = b
	case "cond":
		c, err := parseCondition(value)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Address(), nil
	case "bech32":
		_, b, err := decodeBech32(value)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "bech32 address: %s", err)
		}
		addr = b
	default:
		return nil, errors.Wrapf(errors.ErrType, "address format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// ParseAddress reads any form accepted by UnmarshalJSON. A bare bech32 string
// starting with AddressHRP needs no prefix.
func ParseAddress(s string) (Address, error) {
	if strings.HasPrefix(s, AddressHRP+"1") {
		s = "bech32:" + s
	}
	return decodeAddress(s)
}

// encodeBech32 regroups the payload into 5 bit words before encoding.
func encodeBech32(hrp string, payload []byte) (string, error) {
	words, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, words)
}

func decodeBech32(s string) (string, []byte, error) {
	hrp, words, err := bech32.Decode(s)
	if err != nil {
		return "", nil, err
	}
	payload, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return "", nil, err
	}
	return hrp, payload, nil
}
