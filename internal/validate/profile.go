package validate

import "strings"

// Phone and Address are pointers so an omitted field can be told apart from
// an explicitly cleared one. Nil means "leave the stored value alone".
type ProfileInput struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func Profile(in ProfileInput) (ProfileInput, Errors) {
	errs := Errors{}

	in.Name = strings.TrimSpace(in.Name)

	switch {
	case in.Name == "":
		errs.add("name", "Name is required")
	case len(in.Name) < 2:
		errs.add("name", "Name must be at least 2 characters")
	case len(in.Name) > 100:
		errs.add("name", "Name is too long")
	}

	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		in.Phone = &phone
		if phone != "" && !validPhone(phone) {
			errs.add("phone", "Invalid phone number format")
		}
	}

	if in.Address != nil {
		address := strings.TrimSpace(*in.Address)
		in.Address = &address
		if len(address) > 500 {
			errs.add("address", "Address is too long")
		}
	}

	return in, errs
}
