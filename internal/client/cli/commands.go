package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ouarghii/evento/internal/client/client"
	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/netx"
)

// askSecret is swapped in tests; there is no terminal to read from.
var askSecret = AskSecret

var roles = []string{client.RoleUser, client.RoleContributor, client.RoleAdmin}

var errNotLoggedIn = errors.New("not logged in")

// roleArg takes the role from args[0] or asks for it.
func (a *App) roleArg(args []string) (string, error) {
	if len(args) > 0 {
		for _, r := range roles {
			if strings.EqualFold(args[0], r) {
				return r, nil
			}
		}
		return "", fmt.Errorf("unknown role %q", args[0])
	}
	return AskChoice(a.reader, a.out, "Account type", roles, client.RoleUser)
}

// Register creates an account. Registering an admin needs an admin
// session; contributors have to wait for approval before logging in.
func (a *App) Register(ctx context.Context, args []string) error {
	role, err := a.roleArg(args)
	if err != nil {
		return err
	}
	name, err := Ask(a.reader, a.out, "Name")
	if err != nil {
		return err
	}
	email, err := Ask(a.reader, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := askSecret(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.Wipe(password)

	p, err := a.api.Register(ctx, role, name, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s %s (%s)\n", p.Role, p.Email, p.ID)
	if p.Status == "pending" {
		fmt.Fprintln(a.out, "The account is waiting for an administrator's approval.")
	}
	return nil
}

// Login authenticates and saves the session for later runs.
func (a *App) Login(ctx context.Context, args []string) error {
	role, err := a.roleArg(args)
	if err != nil {
		return err
	}
	email, err := Ask(a.reader, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := askSecret(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.Wipe(password)

	p, err := a.api.Login(ctx, role, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrNotApproved) {
			return errors.New("contributor account is still waiting for approval")
		}
		return err
	}

	s := &client.Session{Token: p.Token, Role: p.Role, Email: p.Email}
	a.useSession(s)
	if err := a.sessions.Save(s); err != nil {
		fmt.Fprintln(a.out, "Could not save session:", err)
	}

	fmt.Fprintf(a.out, "Logged in as %s %s\n", p.Role, p.Email)
	return nil
}

// WhoAmI asks the identity service who the current token belongs to.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	who, err := a.identity.WhoAmI(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.dropSession()
			return errors.New("session expired, please log in again")
		}
		return err
	}
	fmt.Fprintf(a.out, "%s %s <%s> id=%s\n", who.Role, who.Name, who.Email, who.SubjectID)
	return nil
}

// Pending lists contributors waiting for approval.
func (a *App) Pending(ctx context.Context, _ []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	list, err := a.api.Contributors(ctx, "pending")
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No pending contributors.")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", c.ID, c.Name, c.Email)
	}
	return nil
}

func (a *App) Accept(ctx context.Context, args []string) error {
	return a.transition(ctx, args, "accept", a.api.AcceptContributor)
}

func (a *App) Decline(ctx context.Context, args []string) error {
	return a.transition(ctx, args, "decline", a.api.DeclineContributor)
}

func (a *App) transition(ctx context.Context, args []string, verb string, call func(context.Context, string) (*client.Profile, error)) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: %s <contributor-id>", verb)
	}
	c, err := call(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s is now %s\n", c.Email, c.ID, c.Status)
	return nil
}

// UploadImage uploads a local file as an event image and prints the
// object key to use when creating the event.
func (a *App) UploadImage(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) == 0 {
		return errors.New("usage: upload-image <path>")
	}
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	up, err := a.api.ImageUploadURL(ctx, netx.ContentTypeFor(path))
	if err != nil {
		return err
	}
	if err := netx.UploadToPresignedURL(ctx, a.http, up.URL, up.ContentType, f); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %s as %s\n", filepath.Base(path), up.Key)
	return nil
}

// Logout clears the cookie server-side and forgets the saved session.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.api.Logout(ctx); err != nil && !errors.Is(err, client.ErrUnavailable) {
		return err
	}
	a.dropSession()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) dropSession() {
	a.useSession(nil)
	if err := a.sessions.Clear(); err != nil {
		fmt.Fprintln(a.out, "Could not remove saved session:", err)
	}
}
