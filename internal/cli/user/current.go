package user

import (
	"os"
	osuser "os/user"
)

// currentUsername returns the login name of the OS user.
// It tries user.Current, then $USER, and finally returns "".
func currentUsername() string {
	if u, err := osuser.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
