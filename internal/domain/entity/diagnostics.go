package entity

import (
	"fmt"
	"time"
)

// UserDiagnostics is the server-reported consistency snapshot for one user:
// whether the device token is registered, when the last notification went
// out, and which games the server is watching. Each fetch produces a fresh
// snapshot that fully replaces the previous one; snapshots are never merged.
type UserDiagnostics struct {
	UserID                string     `json:"user_id"`
	DeviceTokenRegistered bool       `json:"device_token_registered"`
	DeviceTokenPreview    *string    `json:"device_token_preview"`
	LastNotificationTime  float64    `json:"last_notification_time"`
	MonitoredGames        []GameInfo `json:"monitored_games"`
	TotalActiveGames      int        `json:"total_active_games"`
	ServerCheckInterval   string     `json:"server_check_interval"`
	LastServerCheckTime   *float64   `json:"last_server_check_time"`
}

// LastNotificationDate converts the millisecond timestamp to a time.Time.
// A timestamp of zero or below means no notification was ever sent.
func (d *UserDiagnostics) LastNotificationDate() *time.Time {
	if d.LastNotificationTime <= 0 {
		return nil
	}
	t := time.UnixMilli(int64(d.LastNotificationTime))

	return &t
}

// LastServerCheckDate converts the second-granularity check timestamp, if
// the server reported one.
func (d *UserDiagnostics) LastServerCheckDate() *time.Time {
	if d.LastServerCheckTime == nil {
		return nil
	}
	t := time.Unix(int64(*d.LastServerCheckTime), 0)

	return &t
}

// GamesRequiringTurn filters the monitored games down to the ones waiting
// on this user's move.
func (d *UserDiagnostics) GamesRequiringTurn() []GameInfo {
	games := make([]GameInfo, 0, len(d.MonitoredGames))
	for _, game := range d.MonitoredGames {
		if game.IsYourTurn {
			games = append(games, game)
		}
	}

	return games
}

// GameInfo describes one monitored game inside a diagnostics snapshot.
type GameInfo struct {
	GameID            int     `json:"game_id"`
	LastMoveTimestamp float64 `json:"last_move_timestamp"`
	CurrentPlayer     int     `json:"current_player"`
	IsYourTurn        bool    `json:"is_your_turn"`
	GameName          string  `json:"game_name"`
}

// LastMoveDate converts the millisecond move timestamp to a time.Time.
func (g GameInfo) LastMoveDate() time.Time {
	return time.UnixMilli(int64(g.LastMoveTimestamp))
}

// WebURL is the canonical browser URL for the game.
func (g GameInfo) WebURL() string {
	return fmt.Sprintf("https://online-go.com/game/%d", g.GameID)
}

// AppURL is the custom-scheme deep link for the game.
func (g GameInfo) AppURL() string {
	return fmt.Sprintf("ogs://game/%d", g.GameID)
}
