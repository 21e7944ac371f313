package backend

import (
	"encoding/json"

	"ogsnotify/internal/domain/entity"

	"github.com/pkg/errors"
)

// userDiagnosticsWire is the strict decode target for /diagnostics
// responses. Required fields are pointers so an absent field is
// distinguishable from a zero value; a snapshot with any required field
// missing is rejected whole rather than partially populated.
type userDiagnosticsWire struct {
	UserID                *string        `json:"user_id" validate:"required"`
	DeviceTokenRegistered *bool          `json:"device_token_registered" validate:"required"`
	DeviceTokenPreview    *string        `json:"device_token_preview"`
	LastNotificationTime  *float64       `json:"last_notification_time" validate:"required"`
	MonitoredGames        []gameInfoWire `json:"monitored_games" validate:"required,dive"`
	TotalActiveGames      *int           `json:"total_active_games" validate:"required"`
	ServerCheckInterval   *string        `json:"server_check_interval" validate:"required"`
	LastServerCheckTime   *float64       `json:"last_server_check_time"`
}

type gameInfoWire struct {
	GameID            *int     `json:"game_id" validate:"required"`
	LastMoveTimestamp *float64 `json:"last_move_timestamp" validate:"required"`
	CurrentPlayer     *int     `json:"current_player" validate:"required"`
	IsYourTurn        *bool    `json:"is_your_turn" validate:"required"`
	GameName          *string  `json:"game_name" validate:"required"`
}

func (c *Client) decodeDiagnostics(raw []byte) (*entity.UserDiagnostics, error) {
	var wire userDiagnosticsWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, errors.Wrap(err, "unmarshal diagnostics")
	}

	if err := c.validate.Struct(&wire); err != nil {
		return nil, errors.Wrap(err, "diagnostics missing required fields")
	}

	games := make([]entity.GameInfo, 0, len(wire.MonitoredGames))
	for _, game := range wire.MonitoredGames {
		games = append(games, entity.GameInfo{
			GameID:            *game.GameID,
			LastMoveTimestamp: *game.LastMoveTimestamp,
			CurrentPlayer:     *game.CurrentPlayer,
			IsYourTurn:        *game.IsYourTurn,
			GameName:          *game.GameName,
		})
	}

	return &entity.UserDiagnostics{
		UserID:                *wire.UserID,
		DeviceTokenRegistered: *wire.DeviceTokenRegistered,
		DeviceTokenPreview:    wire.DeviceTokenPreview,
		LastNotificationTime:  *wire.LastNotificationTime,
		MonitoredGames:        games,
		TotalActiveGames:      *wire.TotalActiveGames,
		ServerCheckInterval:   *wire.ServerCheckInterval,
		LastServerCheckTime:   wire.LastServerCheckTime,
	}, nil
}
