package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EgorLis/ipfs-drive/internal/domain"
)

func TestValidLogin(t *testing.T) {
	for _, row := range []struct {
		login string
		ok    bool
	}{
		{"alice", true},
		{"User42", true},
		{"ab", false},
		{"", false},
		{"with space", false},
		{"dot.name", false},
	} {
		require.Equal(t, row.ok, domain.ValidLogin(row.login), "login %q", row.login)
	}
}

func TestValidPassword(t *testing.T) {
	for _, row := range []struct {
		pswd string
		ok   bool
	}{
		{"Passw0rd", true},
		{"aB3aB3aB3", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
	} {
		require.Equal(t, row.ok, domain.ValidPassword(row.pswd), "password %q", row.pswd)
	}
}
