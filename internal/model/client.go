package model

import (
	"regexp"
	"time"
)

// basic local@domain shape, nothing fancier
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Client struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Client) Validate() map[string]string {
	errs := make(map[string]string)

	if c.Name == "" {
		errs["name"] = "name is required"
	}
	if c.Email != "" && !emailRe.MatchString(c.Email) {
		errs["email"] = "invalid email address"
	}

	return errs
}
