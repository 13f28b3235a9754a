// Package user holds the account subcommands
package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/models"
)

// UserCmd returns the user parent command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(RegisterCmd())
	cmd.AddCommand(LoginCmd())

	return cmd
}

// Session is the result of register and login
type Session struct {
	*models.Principal
	Token string `json:"token,omitempty"`
}

// GetID lets --quiet print the user ID
func (s Session) GetID() int { return s.UserID }

func (s Session) String() string {
	out := fmt.Sprintf("Signed in as %s (#%d, %s)", s.Username, s.UserID, s.Role)
	if s.Token != "" {
		out += "\nToken: " + s.Token
	}
	return out
}
