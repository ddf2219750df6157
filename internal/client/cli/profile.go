package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
	"github.com/Shivamkillarikar/CityGuardian/internal/client/client"
)

// requireLogin sends an anonymous user through the login flow. It reports
// whether a session is active afterwards.
func (a *App) requireLogin(ctx context.Context) bool {
	if a.session.RequireAuthenticated() == nil {
		return true
	}
	fmt.Fprintln(a.out, "Please log in first.")
	if err := a.Login(ctx); err != nil {
		return false
	}
	return a.session.RequireAuthenticated() == nil
}

// Profile shows the profile stored on the server.
func (a *App) Profile(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return client.ErrUnauthenticated
	}

	user, err := a.session.Profile(ctx)
	if err != nil {
		a.report(ctx, "Could not load profile", err)
		if errors.Is(err, client.ErrUnauthenticated) {
			fmt.Fprintln(a.out, "Run 'logout' and 'login' to start a new session.")
		}
		return err
	}

	printUser(a, user)
	return nil
}

// WhoAmI shows the locally cached user without contacting the server.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return client.ErrUnauthenticated
	}
	printUser(a, a.session.User())
	return nil
}

// Health reports whether the server answers.
func (a *App) Health(ctx context.Context) error {
	h, err := a.health.Health(ctx)
	if err != nil {
		a.report(ctx, "Server check failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Server is up (server time %s)\n", h.Time.Format(time.RFC3339))
	return nil
}

func printUser(a *App, u *api.User) {
	if u == nil {
		return
	}
	fmt.Fprintf(a.out, "Name:    %s %s\n", u.Name, u.Surname)
	fmt.Fprintf(a.out, "Email:   %s\n", u.Email)
	if u.Address != "" {
		fmt.Fprintf(a.out, "Address: %s\n", u.Address)
	}
	if u.IsAdmin {
		fmt.Fprintln(a.out, "Role:    administrator")
	}
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "Since:   %s\n", u.CreatedAt.Format("2006-01-02"))
	}
}
