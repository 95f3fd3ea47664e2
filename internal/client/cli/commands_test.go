package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ouarghii/evento/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gs "github.com/Ouarghii/evento/internal/server/grpc"
)

type fakeAPI struct {
	token string

	registered []string
	loginRole  string
	loginErr   error
	contribs   []*client.Profile
	accepted   string
	declined   string
	upload     *client.Upload
	uploadType string
	loggedOut  bool
}

func (f *fakeAPI) Register(_ context.Context, role, name, email, _ string) (*client.Profile, error) {
	f.registered = append(f.registered, role+":"+email)
	p := &client.Profile{ID: "id-1", Name: name, Email: email, Role: role}
	if role == client.RoleContributor {
		p.Status = "pending"
	}
	return p, nil
}

func (f *fakeAPI) Login(_ context.Context, role, email, _ string) (*client.Profile, error) {
	f.loginRole = role
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &client.Profile{ID: "id-1", Email: email, Role: role, Token: "jwt-" + role}, nil
}

func (f *fakeAPI) Profile(context.Context) (*client.Profile, error) { return nil, nil }

func (f *fakeAPI) Logout(context.Context) error {
	f.loggedOut = true
	return nil
}

func (f *fakeAPI) Contributors(context.Context, string) ([]*client.Profile, error) {
	return f.contribs, nil
}

func (f *fakeAPI) AcceptContributor(_ context.Context, id string) (*client.Profile, error) {
	f.accepted = id
	return &client.Profile{ID: id, Status: "accepted"}, nil
}

func (f *fakeAPI) DeclineContributor(_ context.Context, id string) (*client.Profile, error) {
	f.declined = id
	return &client.Profile{ID: id, Status: "declined"}, nil
}

func (f *fakeAPI) ImageUploadURL(_ context.Context, contentType string) (*client.Upload, error) {
	f.uploadType = contentType
	return f.upload, nil
}

func (f *fakeAPI) SetToken(token string) { f.token = token }

type fakeIdentity struct {
	token string
	err   error
}

func (f *fakeIdentity) WhoAmI(context.Context) (*gs.IdentityReply, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &gs.IdentityReply{SubjectID: "id-1", Role: "admin", Name: "root", Email: "root@evento.local"}, nil
}
func (f *fakeIdentity) Ping(context.Context) error { return f.err }
func (f *fakeIdentity) SetToken(token string)      { f.token = token }
func (f *fakeIdentity) Close() error               { return nil }

type memSessions struct {
	saved *client.Session
}

func (m *memSessions) Save(s *client.Session) error   { m.saved = s; return nil }
func (m *memSessions) Load() (*client.Session, error) { return m.saved, nil }
func (m *memSessions) Clear() error                   { m.saved = nil; return nil }

func newTestApp(input string) (*App, *fakeAPI, *fakeIdentity, *memSessions, *bytes.Buffer) {
	api, id, ss := &fakeAPI{}, &fakeIdentity{}, &memSessions{}
	out := &bytes.Buffer{}
	return &App{
		api:      api,
		identity: id,
		sessions: ss,
		http:     http.DefaultClient,
		reader:   bufio.NewReader(bytes.NewBufferString(input)),
		out:      out,
	}, api, id, ss, out
}

func stubPassword(t *testing.T) {
	t.Helper()
	orig := askSecret
	askSecret = func(io.Writer, string) ([]byte, error) { return []byte("pw"), nil }
	t.Cleanup(func() { askSecret = orig })
}

func TestLogin_SavesSessionAndTokens(t *testing.T) {
	stubPassword(t)
	a, api, id, ss, out := newTestApp("root@evento.local\n")

	require.NoError(t, a.Login(context.Background(), []string{"ADMIN"}))

	assert.Equal(t, client.RoleAdmin, api.loginRole)
	assert.Equal(t, "jwt-admin", api.token)
	assert.Equal(t, "jwt-admin", id.token)
	assert.Equal(t, &client.Session{Token: "jwt-admin", Role: "admin", Email: "root@evento.local"}, ss.saved)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Logged in as admin root@evento.local")
	assert.Equal(t, "(admin:root@evento.local )", a.getStatus())
}

func TestLogin_PromptsForRole(t *testing.T) {
	stubPassword(t)
	a, api, _, _, _ := newTestApp("contributor\ncarol@x.com\n")

	require.NoError(t, a.Login(context.Background(), nil))
	assert.Equal(t, client.RoleContributor, api.loginRole)
}

func TestLogin_NotApproved(t *testing.T) {
	stubPassword(t)
	a, api, _, ss, _ := newTestApp("carol@x.com\n")
	api.loginErr = &client.APIError{Status: http.StatusForbidden, Code: "contributor_not_approved"}

	err := a.Login(context.Background(), []string{"contributor"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "waiting for approval")
	assert.Nil(t, ss.saved)
	assert.False(t, a.isLoggedIn())
}

func TestRegister_ContributorIsPending(t *testing.T) {
	stubPassword(t)
	a, api, _, _, out := newTestApp("Carol\ncarol@x.com\n")

	require.NoError(t, a.Register(context.Background(), []string{"contributor"}))
	assert.Equal(t, []string{"contributor:carol@x.com"}, api.registered)
	assert.Contains(t, out.String(), "waiting for an administrator's approval")

	assert.Error(t, a.Register(context.Background(), []string{"root"}))
}

func TestCommands_RequireSession(t *testing.T) {
	a, _, _, _, _ := newTestApp("")
	ctx := context.Background()

	for name, cmd := range map[string]func(context.Context, []string) error{
		"whoami":       a.WhoAmI,
		"pending":      a.Pending,
		"accept":       a.Accept,
		"decline":      a.Decline,
		"upload-image": a.UploadImage,
	} {
		assert.ErrorIs(t, cmd(ctx, []string{"x"}), errNotLoggedIn, name)
	}
}

func TestApproval(t *testing.T) {
	a, api, _, _, out := newTestApp("")
	a.useSession(&client.Session{Token: "jwt", Role: "admin"})
	api.contribs = []*client.Profile{{ID: "c-1", Name: "Carol", Email: "carol@x.com"}}

	require.NoError(t, a.Pending(context.Background(), nil))
	assert.Contains(t, out.String(), "c-1\tCarol\tcarol@x.com")

	assert.Error(t, a.Accept(context.Background(), nil))
	require.NoError(t, a.Accept(context.Background(), []string{"c-1"}))
	require.NoError(t, a.Decline(context.Background(), []string{"c-2"}))
	assert.Equal(t, "c-1", api.accepted)
	assert.Equal(t, "c-2", api.declined)
	assert.Contains(t, out.String(), "is now accepted")
}

func TestWhoAmI_ExpiredSessionIsDropped(t *testing.T) {
	a, _, id, ss, _ := newTestApp("")
	s := &client.Session{Token: "jwt", Role: "admin"}
	ss.saved = s
	a.useSession(s)

	require.NoError(t, a.WhoAmI(context.Background(), nil))

	id.err = client.ErrUnauthorized
	assert.Error(t, a.WhoAmI(context.Background(), nil))
	assert.False(t, a.isLoggedIn())
	assert.Nil(t, ss.saved)
	assert.Empty(t, id.token)
}

func TestUploadImage(t *testing.T) {
	var gotCT string
	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer ts.Close()

	path := filepath.Join(t.TempDir(), "poster.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))

	a, api, _, _, out := newTestApp("")
	a.useSession(&client.Session{Token: "jwt", Role: "contributor"})
	api.upload = &client.Upload{Key: "events/2026/10/17/k", URL: ts.URL + "/evento/events/2026/10/17/k", ContentType: "image/png"}

	require.NoError(t, a.UploadImage(context.Background(), []string{path}))
	assert.Equal(t, "image/png", api.uploadType)
	assert.Equal(t, "image/png", gotCT)
	assert.Equal(t, "png-bytes", string(gotBody))
	assert.Contains(t, out.String(), "as events/2026/10/17/k")

	assert.Error(t, a.UploadImage(context.Background(), []string{filepath.Join(t.TempDir(), "missing.png")}))
}

func TestLogout(t *testing.T) {
	a, api, _, ss, _ := newTestApp("")
	s := &client.Session{Token: "jwt"}
	ss.saved = s
	a.useSession(s)

	require.NoError(t, a.Logout(context.Background(), nil))
	assert.True(t, api.loggedOut)
	assert.False(t, a.isLoggedIn())
	assert.Nil(t, ss.saved)
}

func TestRestoreSessionAndProbe(t *testing.T) {
	a, api, id, ss, out := newTestApp("")
	ss.saved = &client.Session{Token: "saved", Role: "user", Email: "u@x.com"}

	a.restoreSession()
	assert.Equal(t, "saved", api.token)
	assert.Equal(t, "saved", id.token)

	a.probe(context.Background())
	assert.Equal(t, ModeOnline, a.Mode)

	id.err = client.ErrUnavailable
	a.probe(context.Background())
	assert.Equal(t, ModeOffline, a.Mode)
	assert.Contains(t, out.String(), "Switched to offline mode")
}
