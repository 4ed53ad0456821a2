package userservice

import (
	"strings"

	"github.com/sushihentaime/bloglist/internal/common"
)

const (
	minPasswordLength = 3
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

func validateUsername(v *common.Validator, username string) {
	v.Check(strings.TrimSpace(username) != "", "username", "username missing")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(len(password) >= minPasswordLength, "password", "password must be at least 3 characters long")
	v.Check(len(password) <= maxPasswordLength, "password", "password must be at most 72 characters long")
}

func validateLogin(v *common.Validator, username, password string) {
	validateUsername(v, username)
	v.Check(password != "", "password", "password missing")
}
