package domain

import (
	"bytes"
	"encoding/json"
)

// Snowflake is a platform id. It decodes from either a JSON string or a JSON number
// so that ids written as integers by older tooling keep their full precision.
type Snowflake string

// UnmarshalJSON accepts "123" or 123
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Snowflake(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = Snowflake(num.String())
	return nil
}

// BotSettings is the bot-wide settings document
type BotSettings struct {
	NotificationChannelID Snowflake `json:"notification_channel_id,omitempty"`
}
