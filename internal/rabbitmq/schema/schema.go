package schema

import (
	"encoding/json"
	"errors"
	"time"
)

type PasswordChanged struct {
	UserID int64     `json:"userId"`
	At     time.Time `json:"at"`
}

func (p *PasswordChanged) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

func (p *PasswordChanged) Unmarshal(data []byte) error {
	if err := json.Unmarshal(data, p); err != nil {
		return err
	}
	if p.UserID <= 0 {
		return errors.New("user id must be positive")
	}
	return nil
}
