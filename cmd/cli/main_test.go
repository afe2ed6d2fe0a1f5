package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amirasaad/backoffice/pkg/domain/user"
	usersvc "github.com/amirasaad/backoffice/pkg/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	got usersvc.RegisterInput
	err error
}

func (f *fakeCreator) CreateSuperuser(_ context.Context, in usersvc.RegisterInput) (*user.User, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &user.User{ID: 1, Email: in.Email, IsSuperuser: true, IsActive: true}, nil
}

func newPrompter(input string, passwords ...string) (*prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	i := 0
	return &prompter{
		in:  bufio.NewReader(strings.NewReader(input)),
		out: out,
		password: func() (string, error) {
			pw := passwords[i]
			i++
			return pw, nil
		},
	}, out
}

func TestCreateSuperuser(t *testing.T) {
	creator := &fakeCreator{}
	p, out := newPrompter("Admin\nadmin@example.com\n+998901234567\n", "s3cret-pass", "s3cret-pass")

	require.NoError(t, createSuperuser(t.Context(), creator, p))
	assert.Equal(t, usersvc.RegisterInput{
		Name:     "Admin",
		Email:    "admin@example.com",
		Phone:    "+998901234567",
		Password: "s3cret-pass",
	}, creator.got)
	assert.Contains(t, out.String(), "admin@example.com")
}

func TestCreateSuperuser_PasswordMismatch(t *testing.T) {
	creator := &fakeCreator{}
	p, _ := newPrompter("Admin\nadmin@example.com\n+998901234567\n", "one", "two")

	err := createSuperuser(t.Context(), creator, p)
	assert.EqualError(t, err, "passwords do not match")
	assert.Empty(t, creator.got.Email)
}

func TestCreateSuperuser_ServiceError(t *testing.T) {
	creator := &fakeCreator{err: errors.New("duplicate")}
	p, _ := newPrompter("Admin\nadmin@example.com\n+998901234567\n", "pw", "pw")

	assert.EqualError(t, createSuperuser(t.Context(), creator, p), "duplicate")
}

func TestMigrate_UnknownDirection(t *testing.T) {
	assert.Error(t, migrate(nil, "sideways", &bytes.Buffer{}))
}
