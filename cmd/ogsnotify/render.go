package main

import (
	"fmt"
	"time"

	"ogsnotify/internal/domain/entity"
	"ogsnotify/internal/usecase"
	"ogsnotify/internal/util"
)

const tokenPreviewLen = 8

func printStatus(status usecase.BindingStatus, env entity.ServerEnvironment) {
	fmt.Printf("Environment:  %s\n", env.DisplayName())

	if status.HasUserID() {
		fmt.Printf("User ID:      %s\n", status.UserID)
	} else {
		fmt.Println("User ID:      (not set)")
	}

	if status.HasDeviceToken() {
		fmt.Printf("Device token: %s\n", util.TokenPreview(status.DeviceToken, tokenPreviewLen))
	} else {
		fmt.Println("Device token: (not issued yet)")
	}

	if status.Complete() {
		fmt.Println("Binding:      complete")
	} else {
		fmt.Println("Binding:      incomplete; registration deferred")
	}
}

func printDiagnostics(d *entity.UserDiagnostics) {
	now := time.Now()

	fmt.Printf("User ID:           %s\n", d.UserID)
	fmt.Printf("Token registered:  %t\n", d.DeviceTokenRegistered)
	if d.DeviceTokenPreview != nil {
		fmt.Printf("Token preview:     %s\n", *d.DeviceTokenPreview)
	}

	if last := d.LastNotificationDate(); last != nil {
		fmt.Printf("Last notification: %s\n", util.TimeAgo(*last, now))
	} else {
		fmt.Println("Last notification: never")
	}

	if check := d.LastServerCheckDate(); check != nil {
		fmt.Printf("Last server check: %s\n", util.TimeAgo(*check, now))
	} else {
		fmt.Println("Last server check: unknown")
	}
	if d.ServerCheckInterval != "" {
		fmt.Printf("Check interval:    %s\n", d.ServerCheckInterval)
	}

	fmt.Printf("Active games:      %d (%d monitored)\n", d.TotalActiveGames, len(d.MonitoredGames))
	for _, game := range d.MonitoredGames {
		marker := " "
		if game.IsYourTurn {
			marker = "*"
		}
		name := game.GameName
		if name == "" {
			name = fmt.Sprintf("Game %d", game.GameID)
		}
		fmt.Printf("  %s %s  last move %s  %s\n",
			marker, name, util.TimeAgo(game.LastMoveDate(), now), game.WebURL())
	}
	if yourTurn := d.GamesRequiringTurn(); len(yourTurn) > 0 {
		fmt.Printf("Your turn in %d game(s)\n", len(yourTurn))
	}
}
