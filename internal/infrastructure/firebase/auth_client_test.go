package firebase

import (
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
)

func TestPrincipalFromToken(t *testing.T) {
	p := PrincipalFromToken(&auth.Token{
		UID:      "u1",
		AuthTime: 1700000000,
		Claims: map[string]interface{}{
			"email": "staff@rugs.example",
			"admin": true,
		},
	})

	assert.Equal(t, "u1", p.UID)
	assert.Equal(t, "staff@rugs.example", p.Email)
	assert.True(t, p.Admin)
	assert.Equal(t, int64(1700000000), p.AuthTime)
}

func TestPrincipalFromTokenRoleClaim(t *testing.T) {
	admin := PrincipalFromToken(&auth.Token{UID: "u2", Claims: map[string]interface{}{"role": "admin"}})
	assert.True(t, admin.Admin)

	visitor := PrincipalFromToken(&auth.Token{UID: "u3", Claims: map[string]interface{}{"admin": "yes"}})
	assert.False(t, visitor.Admin)
	assert.Empty(t, visitor.Email)
}
