package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// AddressLen is the length in bytes of a decoded account key
const AddressLen = 32

// Address is a base58 encoded account key on the host ledger
type Address string

func (a Address) String() string {
	return string(a)
}

func (a Address) IsEmpty() bool {
	return a == ""
}

// ParseAddress checks that s decodes to an account key of AddressLen bytes
func ParseAddress(s string) (Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(raw) != AddressLen {
		return "", fmt.Errorf("invalid address %q: expected %d bytes, got %d", s, AddressLen, len(raw))
	}
	return Address(s), nil
}

// AddressFromKey encodes a raw account key
func AddressFromKey(key []byte) (Address, error) {
	if len(key) != AddressLen {
		return "", fmt.Errorf("account key must be %d bytes, got %d", AddressLen, len(key))
	}
	return Address(base58.Encode(key)), nil
}
