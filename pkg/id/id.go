// Package id issues report identifiers: random (v4) UUIDs rendered as 32
// lowercase hex characters, no hyphens.
package id

import (
	"encoding/hex"

	"github.com/google/uuid"
)

func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
