package users

import "github.com/JaimeStill/moodai/pkg/openapi"

var ops = struct {
	signup, login, me, logout *openapi.Operation
}{
	signup: &openapi.Operation{
		Summary:     "Create an account",
		RequestBody: openapi.RequestBodyJSON("Signup", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Account created", "SignupResult"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	login: &openapi.Operation{
		Summary:     "Sign in and set the session cookie",
		RequestBody: openapi.RequestBodyJSON("Login", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Signed in", "LoginResult"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	me: &openapi.Operation{
		Summary: "Current account",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Account", "User"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	logout: &openapi.Operation{
		Summary: "Clear the session cookie",
		Responses: map[int]*openapi.Response{
			200: {Description: "Signed out"},
		},
	},
}

// Schemas returns the component schemas referenced by account operations.
func Schemas() (map[string]*openapi.Schema, error) {
	schemas := make(map[string]*openapi.Schema, 5)
	for name, fn := range map[string]func() (*openapi.Schema, error){
		"User":         openapi.SchemaOf[User],
		"Signup":       openapi.SchemaOf[SignupCommand],
		"SignupResult": openapi.SchemaOf[SignupResult],
		"Login":        openapi.SchemaOf[LoginCommand],
		"LoginResult":  openapi.SchemaOf[LoginResult],
	} {
		s, err := fn()
		if err != nil {
			return nil, err
		}
		schemas[name] = s
	}
	return schemas, nil
}
