package users

import (
	"github.com/JaimeStill/moodai/pkg/query"
	"github.com/JaimeStill/moodai/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("username", "Username").
	Project("email", "Email").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt"}

// Postgres default names for the users unique constraints.
const (
	emailConstraint    = "users_email_key"
	usernameConstraint = "users_username_key"
)

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.CreatedAt,
	)
	return u, err
}
