package validate

import "strings"

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

func Contact(in ContactInput) (ContactInput, Errors) {
	errs := Errors{}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Service = strings.TrimSpace(in.Service)
	in.Message = strings.TrimSpace(in.Message)

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

	if in.Phone != "" && !validPhone(in.Phone) {
		errs.add("phone", "Invalid phone number format")
	}

	switch {
	case in.Message == "":
		errs.add("message", "Message is required")
	case len(in.Message) < 10:
		errs.add("message", "Please provide more details")
	case len(in.Message) > 2000:
		errs.add("message", "Message is too long")
	}

	return in, errs
}
