package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ogsnotify/internal/domain/entity"
	"ogsnotify/internal/usecase"

	"github.com/pkg/errors"
)

func handleSetUser(ctx context.Context, deps *app, args []string) error {
	cmd := flag.NewFlagSet("set-user", flag.ExitOnError)
	id := cmd.String("id", "", "Account user ID to receive notifications for")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse set-user flags")
	}

	if *id == "" {
		return errors.New("--id flag is required for set-user command")
	}

	outcome, err := deps.Registration.OnUserIDSet(ctx, *id)
	if err != nil {
		return err
	}
	printOutcome(outcome)

	return nil
}

func handleToken(ctx context.Context, deps *app, args []string) error {
	cmd := flag.NewFlagSet("token", flag.ExitOnError)
	value := cmd.String("value", "", "Device push token issued by the platform")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse token flags")
	}

	if *value == "" {
		return errors.New("--value flag is required for token command")
	}

	outcome, err := deps.Registration.OnTokenAvailable(ctx, *value)
	if err != nil {
		return err
	}
	printOutcome(outcome)

	return nil
}

func handleRegister(ctx context.Context, deps *app) error {
	if err := deps.Registration.Reregister(ctx); err != nil {
		return err
	}
	fmt.Println("Registered")

	return nil
}

func handleStatus(ctx context.Context, deps *app) error {
	status, err := deps.Registration.Status(ctx)
	if err != nil {
		return err
	}

	env, err := deps.Environment.Current(ctx)
	if err != nil {
		return err
	}

	printStatus(status, env)

	return nil
}

func handleDiagnostics(ctx context.Context, deps *app, args []string) error {
	cmd := flag.NewFlagSet("diagnostics", flag.ExitOnError)
	check := cmd.Bool("check", false, "Trigger a server check before fetching")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse diagnostics flags")
	}

	userID, err := storedUserID(ctx, deps)
	if err != nil {
		return err
	}

	var diagnostics *entity.UserDiagnostics
	if *check {
		diagnostics, err = deps.Diagnostics.CheckAndReload(ctx, userID)
	} else {
		diagnostics, err = deps.Diagnostics.Load(ctx, userID)
	}
	if err != nil {
		return err
	}

	printDiagnostics(diagnostics)

	return nil
}

func handleCheck(ctx context.Context, deps *app) error {
	userID, err := storedUserID(ctx, deps)
	if err != nil {
		return err
	}

	if err := deps.Diagnostics.TriggerCheck(ctx, userID); err != nil {
		return err
	}
	fmt.Println("Check triggered; fetch diagnostics to see the result")

	return nil
}

func handleHealth(ctx context.Context, deps *app) error {
	fmt.Println(deps.Environment.Probe(ctx).DisplayText())

	return nil
}

func handleEnv(ctx context.Context, deps *app, args []string) error {
	cmd := flag.NewFlagSet("env", flag.ExitOnError)
	set := cmd.String("set", "", "Switch to this environment (local, production)")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse env flags")
	}

	if *set != "" {
		env := entity.ServerEnvironment(*set)
		if err := deps.Environment.Set(ctx, env); err != nil {
			return err
		}
		fmt.Printf("Environment: %s\n", env.DisplayName())

		return nil
	}

	current, err := deps.Environment.Current(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Environment: %s\n", current.DisplayName())
	for _, env := range entity.Environments() {
		marker := " "
		if env == current {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, env.DisplayName())
	}

	return nil
}

func handleOpen(ctx context.Context, deps *app, args []string) error {
	cmd := flag.NewFlagSet("open", flag.ExitOnError)
	rawURL := cmd.String("url", "", "Deep link to route (ogs://game/{id})")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse open flags")
	}

	if *rawURL == "" {
		return errors.New("--url flag is required for open command")
	}

	if !deps.Link.HandleURI(ctx, *rawURL) {
		fmt.Println("Not a game link; nothing opened")

		return nil
	}
	fmt.Println("Opened in browser")

	return nil
}

func handleQR(ctx context.Context, deps *app, args []string) error {
	cmd := flag.NewFlagSet("qr", flag.ExitOnError)
	gameID := cmd.Int("game", 0, "Game ID to encode")
	output := cmd.String("out", "", "Output PNG path (defaults to game-{id}.png)")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse qr flags")
	}

	if *gameID <= 0 {
		return errors.New("--game flag is required for qr command")
	}

	png, err := deps.QRCode.GenerateGameQR(*gameID)
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = fmt.Sprintf("game-%d.png", *gameID)
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return errors.Wrap(err, "write QR code image")
	}
	fmt.Printf("Wrote %s\n", path)

	return nil
}

// storedUserID reads the persisted user ID for commands that act on the
// current account.
func storedUserID(ctx context.Context, deps *app) (string, error) {
	status, err := deps.Registration.Status(ctx)
	if err != nil {
		return "", err
	}
	if !status.HasUserID() {
		return "", errors.New("no user ID stored; run 'ogsnotify set-user' first")
	}

	return status.UserID, nil
}

func printOutcome(outcome usecase.RegistrationOutcome) {
	switch outcome {
	case usecase.OutcomeRegistered:
		fmt.Println("Registered")
	default:
		fmt.Println("Stored; waiting for the other half of the binding")
	}
}
