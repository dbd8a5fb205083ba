package auth

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the only supported JWT claims shape for this service.
// Subject carries the numeric user id as a decimal string.
type Claims struct {
	jwt.RegisteredClaims

	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	UserRole string `json:"userRole"`
}

type claimsFields Claims

// UnmarshalJSON decodes sub and userRole leniently so that a signed token
// with odd claim types reaches identity mapping instead of failing as a
// malformed token. An integral numeric sub becomes its decimal string. Any
// other non-string sub or userRole keeps its raw JSON text, which
// IdentityFromClaims then rejects.
func (c *Claims) UnmarshalJSON(b []byte) error {
	var aux struct {
		claimsFields
		Subject  json.RawMessage `json:"sub"`
		UserRole json.RawMessage `json:"userRole"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*c = Claims(aux.claimsFields)
	c.Subject = subjectText(aux.Subject)
	c.UserRole = claimText(aux.UserRole)
	return nil
}

func claimText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func subjectText(raw json.RawMessage) string {
	text := claimText(raw)
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return text
	}
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return text
	}
	// 42.0 or 4.2e1
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return text
	}
	return strconv.FormatInt(int64(f), 10)
}
