package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/SatuPadu/fses-client/client"
	"github.com/SatuPadu/fses-client/core/access"
	"github.com/SatuPadu/fses-client/core/guard"
	"github.com/SatuPadu/fses-client/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	store   *session.Store
	api     *client.API
	checker *access.Checker
	guard   *guard.Guard
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL                  - sign in; the password will be prompted")
	fmt.Fprintln(cli.out, "  logout                              - sign out and clear the saved session")
	fmt.Fprintln(cli.out, "  whoami                              - show the signed-in user and roles")
	fmt.Fprintln(cli.out, "  set-password                        - change the current user's password")
	fmt.Fprintln(cli.out, "  forgot-password -email EMAIL        - request a password reset link")
	fmt.Fprintln(cli.out, "  routes                              - list destinations visible to this session")
	fmt.Fprintln(cli.out, "  students [-page N] [-search TERM]   - list students")
	fmt.Fprintln(cli.out, "  nominations [-page N] [-status S]   - list evaluation nominations")
	fmt.Fprintln(cli.out, "  lock -ids 1,2,3                     - lock nominations")
	fmt.Fprintln(cli.out, "  dashboard                           - show the dashboard for the highest role")
	fmt.Fprintln(cli.out, "  import -file PATH                   - upload a student spreadsheet and follow progress")
}

// guardPath resolves the destination the way the frontend's middleware
// would, surfacing the redirect instead of entering the command.
func (cli *commandLine) guardPath(path string) error {
	if d := cli.guard.Resolve(path); !d.Allowed {
		return fmt.Errorf("access denied: redirected to %s", d.RedirectTo)
	}
	return nil
}

func (cli *commandLine) promptPassword(label string) (string, error) {
	fmt.Fprint(cli.out, label)
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "The user's email. The password will be prompted next.")

	forgotCmd := flag.NewFlagSet("forgot-password", flag.ExitOnError)
	forgotEmail := forgotCmd.String("email", "", "The account's email address.")

	studentsCmd := flag.NewFlagSet("students", flag.ExitOnError)
	studentsPage := studentsCmd.Int("page", 1, "Page to fetch.")
	studentsSearch := studentsCmd.String("search", "", "Filter by name or matric number.")

	nomsCmd := flag.NewFlagSet("nominations", flag.ExitOnError)
	nomsPage := nomsCmd.Int("page", 1, "Page to fetch.")
	nomsStatus := nomsCmd.String("status", "", "Filter by nomination status.")

	lockCmd := flag.NewFlagSet("lock", flag.ExitOnError)
	lockIDs := lockCmd.String("ids", "", "Comma-separated nomination IDs.")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "Path to the spreadsheet to import.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		if pwd == "" {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginEmail, pwd)
	case "logout":
		return cli.logout()
	case "whoami":
		return cli.whoami()
	case "set-password":
		return cli.setPassword()
	case "forgot-password":
		if err := forgotCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *forgotEmail == "" {
			forgotCmd.Usage()
			return errHelp
		}
		return cli.forgotPassword(*forgotEmail)
	case "routes":
		return cli.listRoutes()
	case "students":
		if err := studentsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listStudents(*studentsPage, *studentsSearch)
	case "nominations":
		if err := nomsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listNominations(*nomsPage, *nomsStatus)
	case "lock":
		if err := lockCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *lockIDs == "" {
			lockCmd.Usage()
			return errHelp
		}
		return cli.lockNominations(*lockIDs)
	case "dashboard":
		return cli.showDashboard()
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importStudents(*importFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
