// Command cli runs administrative tasks against the back-office database.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/amirasaad/backoffice/infra"
	"github.com/amirasaad/backoffice/infra/migrations"
	infra_repository "github.com/amirasaad/backoffice/infra/repository"
	"github.com/amirasaad/backoffice/pkg/config"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	usersvc "github.com/amirasaad/backoffice/pkg/service/user"
	"github.com/fatih/color"
	"golang.org/x/term"
)

const usage = `Usage: cli <command>
Commands:
  migrate up|down|version   manage the database schema
  create-superuser          create an active superuser interactively`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}
	if err := run(context.Background(), os.Args[1:]); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close() //nolint: errcheck

	switch args[0] {
	case "migrate":
		if len(args) < 2 {
			return errors.New("usage: migrate up|down|version")
		}
		return migrate(sqlDB, args[1], os.Stdout)
	case "create-superuser":
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := usersvc.New(infra_repository.NewUoW(db), nil, nil, nil, cfg.Activation, logger)
		p := &prompter{in: bufio.NewReader(os.Stdin), out: os.Stdout, password: readPassword}
		return createSuperuser(ctx, svc, p)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func migrate(db *sql.DB, direction string, out io.Writer) error {
	switch direction {
	case "up":
		if err := migrations.Up(db); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(out, "migrations applied") //nolint: errcheck
	case "down":
		if err := migrations.Down(db); err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintln(out, "migrations rolled back") //nolint: errcheck
	case "version":
		v, dirty, err := migrations.Version(db)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "schema version %d (dirty=%t)\n", v, dirty) //nolint: errcheck
	default:
		return fmt.Errorf("unknown migrate direction %q", direction)
	}
	return nil
}

type superuserCreator interface {
	CreateSuperuser(ctx context.Context, in usersvc.RegisterInput) (*user.User, error)
}

type prompter struct {
	in       *bufio.Reader
	out      io.Writer
	password func() (string, error)
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", color.CyanString(label)) //nolint: errcheck
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) askPassword(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", color.CyanString(label)) //nolint: errcheck
	pw, err := p.password()
	fmt.Fprintln(p.out) //nolint: errcheck
	return pw, err
}

func readPassword() (string, error) {
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	return string(b), err
}

func createSuperuser(ctx context.Context, svc superuserCreator, p *prompter) error {
	var in usersvc.RegisterInput
	var err error
	if in.Name, err = p.ask("Name"); err != nil {
		return err
	}
	if in.Email, err = p.ask("Email"); err != nil {
		return err
	}
	if in.Phone, err = p.ask("Phone number"); err != nil {
		return err
	}
	if in.Password, err = p.askPassword("Password"); err != nil {
		return err
	}
	confirm, err := p.askPassword("Password (again)")
	if err != nil {
		return err
	}
	if confirm != in.Password {
		return errors.New("passwords do not match")
	}
	u, err := svc.CreateSuperuser(ctx, in)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(p.out, "superuser %s created (id %d)\n", u.Email, u.ID) //nolint: errcheck
	return nil
}
