package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ogsnotify/config"
	"ogsnotify/internal/domain/service"
	"ogsnotify/internal/infra/backend"
	"ogsnotify/internal/infra/endpoint"
	logs "ogsnotify/internal/infra/log"
	"ogsnotify/internal/infra/opener"
	"ogsnotify/internal/infra/persistence/sqlite"
	"ogsnotify/internal/infra/qrcode"
	"ogsnotify/internal/usecase"
	"ogsnotify/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Supported subcommands:
// - set-user:    Set the account to receive notifications for
// - token:       Record a device push token
// - register:    Re-run registration from stored state
// - status:      Show which halves of the binding are stored
// - diagnostics: Fetch the server-side snapshot
// - check:       Ask the server to re-check now
// - health:      Probe the current server
// - env:         Show or switch the server environment
// - open:        Route an ogs:// deep link
// - qr:          Render a game link as a QR code image

type app struct {
	fx.In

	Registration usecase.RegistrationUsecase
	Diagnostics  usecase.DiagnosticsUsecase
	Environment  usecase.EnvironmentUsecase
	Link         usecase.LinkUsecase
	QRCode       service.QRCodeService
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var deps app
	fxApp := fx.New(
		fx.NopLogger,
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.Populate(&deps),
	)
	if err := fxApp.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runSubcommand(ctx, &deps); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		sqlite.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.NewStateRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			endpoint.NewResolver,
			backend.NewClient,
			opener.NewBrowserOpener,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService() service.QRCodeService {
	return qrcode.NewQRCodeService(256, "M")
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRegistrationService,
			impl.NewDiagnosticsService,
			impl.NewEnvironmentService,
			impl.NewLinkService,
		),
	)
}

func runSubcommand(ctx context.Context, deps *app) error {
	args := os.Args[2:]

	switch os.Args[1] {
	case "set-user":
		return handleSetUser(ctx, deps, args)
	case "token":
		return handleToken(ctx, deps, args)
	case "register":
		return handleRegister(ctx, deps)
	case "status":
		return handleStatus(ctx, deps)
	case "diagnostics":
		return handleDiagnostics(ctx, deps, args)
	case "check":
		return handleCheck(ctx, deps)
	case "health":
		return handleHealth(ctx, deps)
	case "env":
		return handleEnv(ctx, deps, args)
	case "open":
		return handleOpen(ctx, deps, args)
	case "qr":
		return handleQR(ctx, deps, args)
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}
}

func printUsage() {
	fmt.Println("Usage: ogsnotify <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  set-user     Set the account to receive notifications for")
	fmt.Println("  token        Record a device push token")
	fmt.Println("  register     Re-run registration from stored state")
	fmt.Println("  status       Show which halves of the binding are stored")
	fmt.Println("  diagnostics  Fetch the server-side snapshot")
	fmt.Println("  check        Ask the server to re-check now")
	fmt.Println("  health       Probe the current server")
	fmt.Println("  env          Show or switch the server environment")
	fmt.Println("  open         Route an ogs:// deep link")
	fmt.Println("  qr           Render a game link as a QR code image")
	fmt.Println("")
	fmt.Println("Use 'ogsnotify <command> -h' for more information about a command.")
}
