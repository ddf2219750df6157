package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shivamkillarikar/CityGuardian/internal/client/client"
	"github.com/Shivamkillarikar/CityGuardian/internal/client/services"
	"github.com/Shivamkillarikar/CityGuardian/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

type loginForm struct {
	Email string
}

type registerForm struct {
	Name    string
	Surname string
	Email   string
	Address string
}

// ask prompts for a value; an empty answer keeps def.
func (a *App) ask(prompt, def string) (string, error) {
	v, err := getSimpleText(a.reader, withDefault(prompt, def), a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// Register prompts for the registration form and creates an account. On
// failure the answers other than the password become the defaults of the next
// attempt.
func (a *App) Register(ctx context.Context) error {
	form := a.registerDraft

	var err error
	if form.Name, err = a.ask("Enter name", form.Name); err != nil {
		return err
	}
	if form.Surname, err = a.ask("Enter surname", form.Surname); err != nil {
		return err
	}
	if form.Email, err = a.ask("Enter email", form.Email); err != nil {
		return err
	}
	if form.Address, err = a.ask("Enter address (optional)", form.Address); err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Register(ctx, services.RegisterInput{
		Name:     form.Name,
		Surname:  form.Surname,
		Email:    form.Email,
		Password: string(password),
		Address:  form.Address,
	})
	if err != nil {
		a.registerDraft = form
		a.report(ctx, "Registration failed", err)
		return err
	}

	a.registerDraft = registerForm{}
	a.loginDraft = loginForm{}
	fmt.Fprintf(a.out, "Welcome, %s! Your account has been created.\n", user.Name)
	return nil
}

// Login prompts for credentials and signs in. The email of a failed attempt
// is offered again; the password never is.
func (a *App) Login(ctx context.Context) error {
	form := a.loginDraft

	var err error
	if form.Email, err = a.ask("Enter email", form.Email); err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, form.Email, string(password))
	if err != nil {
		a.loginDraft = form
		a.report(ctx, "Login failed", err)
		return err
	}

	a.loginDraft = loginForm{}
	fmt.Fprintf(a.out, "Login successful. Hello, %s!\n", user.Name)
	return nil
}

// Logout forgets the local session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.report(ctx, "Logged out, but the saved session could not be removed", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// report prints a user-facing line for err and logs unexpected failures.
func (a *App) report(ctx context.Context, what string, err error) {
	fmt.Fprintf(a.out, "%s: %s\n", what, client.Message(err))

	if errors.Is(err, client.ErrUnavailable) || !isKnown(err) {
		a.log.Warn(ctx, what, "error", err.Error())
	}
}

func isKnown(err error) bool {
	for _, k := range []error{
		client.ErrValidation, client.ErrUnauthorized, client.ErrUnauthenticated,
		client.ErrNotFound, client.ErrDuplicateEmail,
	} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}
