package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	r := rdr("  Ada Lovelace \nada@evento.io")

	name, err := Ask(r, &out, "Name")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", name)

	email, err := Ask(r, &out, "Email")
	require.NoError(t, err)
	assert.Equal(t, "ada@evento.io", email)

	_, err = Ask(r, &out, "Bio")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Name: Email: Bio: ", out.String())
}

func TestAskSecret(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	var out bytes.Buffer
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	pw, err := AskSecret(&out, "Password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(pw))
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	_, err = AskSecret(&out, "Password")
	assert.EqualError(t, err, "not a terminal")
}

func TestAskChoice(t *testing.T) {
	opts := []string{"user", "contributor", "admin"}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "default on empty", input: "\n", want: "user"},
		{name: "exact", input: "admin\n", want: "admin"},
		{name: "case folded", input: "Contributor\n", want: "contributor"},
		{name: "unknown", input: "root\n", wantErr: true},
		{name: "no input", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := AskChoice(rdr(tc.input), &out, "Role", opts, "user")
			assert.Contains(t, out.String(), "Role (user|contributor|admin) [user]: ")
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
