package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/vrmarket/vrmarket/internal/identity"
)

// getPassphrase is an indirection used to facilitate testing.
var getPassphrase = GetPassphrase

// promptProvider asks for the passphrase at login time and derives the dev
// identity from it. The same passphrase always signs in as the same
// principal.
type promptProvider struct {
	reader *bufio.Reader
}

func (p *promptProvider) Login(ctx context.Context) (*identity.Credential, error) {
	pass, err := getPassphrase(os.Stdout)
	if err != nil {
		return nil, err
	}
	defer wipe(pass)
	return identity.NewDevProvider(pass).Login(ctx)
}

func (p *promptProvider) Logout(ctx context.Context) error {
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Login signs the user in and reports whether a profile still needs to be
// created.
func (a *App) Login(ctx context.Context) error {
	if err := a.session.Login(ctx); err != nil {
		report(err)
		return err
	}
	fmt.Printf("Signed in as %s\n", a.session.Principal())

	setup, err := a.users.CheckUserSetup(ctx)
	if err != nil {
		report(err)
		return nil
	}
	if !setup.Exists {
		fmt.Println("No profile yet. Run 'setup' to choose a username.")
	}
	return nil
}

// Logout drops the session. The remote side holds no state for dev
// identities, so this is purely local.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		report(err)
		return err
	}
	fmt.Println("Signed out.")
	return nil
}
