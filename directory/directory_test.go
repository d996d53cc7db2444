package directory_test

import (
	"testing"

	"github.com/semdex/auth-service/directory"
	"github.com/stretchr/testify/require"
)

func TestIsAuthorized(t *testing.T) {
	dir := directory.New(
		directory.Identity{Email: "john.doe@example.com", Phone: "+230 5000 0001", FullName: "John Doe"},
	)

	tests := []struct {
		name       string
		identifier string
		authorized bool
	}{
		{name: "email match", identifier: "john.doe@example.com", authorized: true},
		{name: "phone match", identifier: "+230 5000 0001", authorized: true},
		{name: "unknown identifier", identifier: "unknown@example.com", authorized: false},
		{name: "case sensitive", identifier: "John.Doe@example.com", authorized: false},
		{name: "empty identifier", identifier: "", authorized: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.authorized, dir.IsAuthorized(tc.identifier))
		})
	}
}

func TestSemdexDirectory(t *testing.T) {
	dir := directory.Semdex()

	require.True(t, dir.IsAuthorized("pbernardproxy@gmail.com"))
	require.True(t, dir.IsAuthorized("+230 54951814"))
	require.False(t, dir.IsAuthorized("unknown@example.com"))
	require.Len(t, dir.Identities(), 2)
}
