package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"parking-reservation/cmd/bootstrap"
	"parking-reservation/internal/domain/booking"
	"parking-reservation/internal/domain/user"
	reqdto "parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/pkg/clock"
	"parking-reservation/internal/pkg/config"
	"parking-reservation/internal/pkg/errs"
	"parking-reservation/internal/usecase/commands"

	"ariga.io/atlas-go-sdk/atlasexec"
	"go.uber.org/fx"
)

const usage = `usage: admin <command> [flags]

commands:
  migrate              apply migrations/ to the configured database
  seed-slots           create parking slots P1..Pn (-count, default 10)
  create-user          create a user (-username, -password, -admin)
  complete-bookings    mark booked entries dated before -before (default today) as completed
`

var errUsage = errs.New("invalid usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if !errs.Is(err, errUsage) {
			slog.Error("admin command failed", "error", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errUsage
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	switch args[0] {
	case "migrate":
		return migrate(ctx, cfg, args[1:], out)
	case "seed-slots":
		return seedSlots(ctx, cfg, args[1:], out)
	case "create-user":
		return createUser(ctx, cfg, args[1:], out)
	case "complete-bookings":
		return completeBookings(ctx, cfg, args[1:], out)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}
}

func migrate(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	dir := fs.String("dir", "migrations", "migration directory")
	atlasBin := fs.String("atlas", "atlas", "path to the atlas binary")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return errs.New("migrate needs STORE_DRIVER=" + config.StoreDriverPostgres)
	}

	workdir, err := atlasexec.NewWorkingDir(
		atlasexec.WithMigrations(os.DirFS(*dir)),
	)
	if err != nil {
		return errs.Wrap(err, "failed to load migrations")
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), *atlasBin)
	if err != nil {
		return errs.Wrap(err, "failed to init atlas client")
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL: cfg.DB.BuildDSN(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}

	fmt.Fprintf(out, "applied %d migrations (current version %q)\n", len(res.Applied), res.Target)
	return nil
}

func seedSlots(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed-slots", flag.ContinueOnError)
	count := fs.Int("count", commands.DefaultSeedCount, "number of slots to ensure")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	return withCommands(ctx, cfg, func(c adminCommands) error {
		report, err := c.Slots.Seed(ctx, *count)
		if err != nil {
			return err
		}
		for _, n := range report.Created {
			fmt.Fprintf(out, "created %s\n", n)
		}
		for _, n := range report.Skipped {
			fmt.Fprintf(out, "skipped %s (already exists)\n", n)
		}
		fmt.Fprintf(out, "%d created, %d skipped\n", len(report.Created), len(report.Skipped))
		return nil
	})
}

func createUser(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	username := fs.String("username", "", "login name")
	password := fs.String("password", "", "password (8 to 72 bytes)")
	admin := fs.Bool("admin", false, "grant the admin role")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if strings.TrimSpace(*username) == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "-username and -password are required")
		return errUsage
	}

	req := reqdto.CreateUserRequest{Username: *username, Password: *password}
	if *admin {
		req.Role = user.RoleAdmin.String()
	}

	return withCommands(ctx, cfg, func(c adminCommands) error {
		view, err := c.Auth.CreateUser(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "created user %s (%s) id=%s\n", view.Username, view.Role, view.ID)
		return nil
	})
}

func completeBookings(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("complete-bookings", flag.ContinueOnError)
	before := fs.String("before", "", "cutoff date YYYY-MM-DD, exclusive (default today)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cutoff := booking.DateOf(clock.NewRealClock().Now())
	if *before != "" {
		d, err := booking.ParseDate(*before)
		if err != nil {
			return err
		}
		cutoff = d
	}

	return withCommands(ctx, cfg, func(c adminCommands) error {
		n, err := c.Bookings.CompletePast(ctx, cutoff)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d bookings before %s marked completed\n", n, cutoff)
		return nil
	})
}

type adminCommands struct {
	Slots    commands.SlotCommands
	Auth     commands.AuthCommands
	Bookings commands.BookingCommands
}

// withCommands boots the core graph against the configured store, runs fn
// and shuts the graph down again.
func withCommands(ctx context.Context, cfg config.Config, fn func(adminCommands) error) error {
	if cfg.Store.Driver == config.StoreDriverMemory {
		return errs.New(fmt.Sprintf("admin commands need a persistent store; STORE_DRIVER is %q", cfg.Store.Driver))
	}

	var cmds adminCommands
	app := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Populate(&cmds.Slots, &cmds.Auth, &cmds.Bookings),
	)
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			slog.Warn("failed to stop admin app", "error", err)
		}
	}()

	return fn(cmds)
}
