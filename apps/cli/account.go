package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/SatuPadu/fses-client/core/session"
)

func (cli *commandLine) login(email, pwd string) error {
	ctx := context.Background()
	res, err := cli.store.Login(ctx, session.Credentials{Email: email, Password: pwd})
	if err != nil {
		if errors.Is(err, session.ErrAccountLocked) {
			return errors.New("account locked, contact your administrator")
		}
		return err
	}
	usr := cli.store.User()
	fmt.Fprintf(cli.out, "Signed in as %s <%s>\n", usr.Name, usr.Email)
	if res.NeedsPasswordChange {
		fmt.Fprintln(cli.out, "Your password must be changed before you can continue. Run: set-password")
	}
	return nil
}

func (cli *commandLine) logout() error {
	cli.store.Logout(context.Background())
	fmt.Fprintln(cli.out, "Signed out.")
	return nil
}

func (cli *commandLine) whoami() error {
	if !cli.store.IsAuthenticated() {
		return errors.New("not signed in")
	}
	usr, err := cli.store.FetchUserProfile(context.Background())
	if err != nil {
		return err
	}
	if usr == nil {
		return errors.New("not signed in")
	}
	fmt.Fprintf(cli.out, "%s <%s>\n", usr.Name, usr.Email)
	fmt.Fprintf(cli.out, "Staff number: %s\n", usr.StaffNumber)
	if usr.Department != nil {
		fmt.Fprintf(cli.out, "Department:   %s\n", *usr.Department)
	}
	fmt.Fprintf(cli.out, "Roles:        %s\n", strings.Join(cli.checker.RoleNames(), ", "))
	if top := cli.checker.HighestRole(); top != nil {
		fmt.Fprintf(cli.out, "Acting as:    %s\n", top.RoleName)
	}
	return nil
}

func (cli *commandLine) setPassword() error {
	if !cli.store.IsAuthenticated() {
		return errors.New("not signed in")
	}
	pwd, err := cli.promptPassword("New password:")
	if err != nil {
		return err
	}
	confirm, err := cli.promptPassword("Confirm password:")
	if err != nil {
		return err
	}
	payload := session.SetPassword{Password: pwd, PasswordConfirm: confirm}
	if err := cli.store.ChangePassword(context.Background(), payload); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Password updated.")
	return nil
}

func (cli *commandLine) forgotPassword(email string) error {
	msg, err := cli.store.SendResetLink(context.Background(), email)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "If the email exists, a reset link has been sent."
	}
	fmt.Fprintln(cli.out, msg)
	return nil
}

func (cli *commandLine) listRoutes() error {
	routes := cli.guard.VisibleRoutes()
	if len(routes) == 0 {
		fmt.Fprintln(cli.out, "No destinations available.")
		return nil
	}
	for _, r := range routes {
		fmt.Fprintf(cli.out, "%-24s %s\n", r.Path, r.Title)
	}
	return nil
}
