package validate

import "strings"

type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func Register(in RegisterInput) (RegisterInput, Errors) {
	errs := Errors{}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)

	switch {
	case in.Name == "":
		errs.add("name", "Name is required")
	case len(in.Name) < 2:
		errs.add("name", "Name must be at least 2 characters")
	case len(in.Name) > 100:
		errs.add("name", "Name is too long")
	}

	switch {
	case in.Email == "":
		errs.add("email", "Email is required")
	case !validEmail(in.Email):
		errs.add("email", "Invalid email address")
	}

	switch {
	case in.Password == "":
		errs.add("password", "Password is required")
	case len(in.Password) < 8:
		errs.add("password", "Password must be at least 8 characters")
	case !strongPassword(in.Password):
		errs.add("password", "Password must contain at least one uppercase letter, one lowercase letter, and one number")
	}

	switch {
	case in.ConfirmPassword == "":
		errs.add("confirm_password", "Please confirm your password")
	case in.ConfirmPassword != in.Password:
		errs.add("confirm_password", "Passwords do not match")
	}

	return in, errs
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(in LoginInput) (LoginInput, Errors) {
	errs := Errors{}

	in.Email = normalizeEmail(in.Email)

	switch {
	case in.Email == "":
		errs.add("email", "Email is required")
	case !validEmail(in.Email):
		errs.add("email", "Invalid email address")
	}

	switch {
	case in.Password == "":
		errs.add("password", "Password is required")
	case len(in.Password) < 8:
		errs.add("password", "Password must be at least 8 characters")
	}

	return in, errs
}
