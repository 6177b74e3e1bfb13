package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issue signs an HS256 token carrying the person id and role. The role
// claim is what the API layer checks on approver-only endpoints.
func Issue(secret string, personID int64, role string, ttlHours int) (string, error) {
	claims := jwt.MapClaims{
		"sub":  personID,
		"role": role,
		"exp":  time.Now().Add(time.Duration(ttlHours) * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
