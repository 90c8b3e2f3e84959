package validate

import "strings"

type ServiceInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ShortDesc   string  `json:"short_desc"`
	Price       float64 `json:"price"`
	PriceUnit   string  `json:"price_unit"`
	DurationMin int     `json:"duration_min"`
	ImageURL    string  `json:"image_url"`
	Active      *bool   `json:"active"`
}

func Service(in ServiceInput) (ServiceInput, Errors) {
	errs := Errors{}

	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	in.Description = strings.TrimSpace(in.Description)
	in.ShortDesc = strings.TrimSpace(in.ShortDesc)
	in.PriceUnit = strings.TrimSpace(in.PriceUnit)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	switch {
	case in.Name == "":
		errs.add("name", "Name is required")
	case len(in.Name) > 100:
		errs.add("name", "Name is too long")
	}

	switch {
	case in.Slug == "":
		errs.add("slug", "Slug is required")
	case len(in.Slug) > 100:
		errs.add("slug", "Slug is too long")
	case !slugRe.MatchString(in.Slug):
		errs.add("slug", "Slug can only contain lowercase letters, numbers, and hyphens")
	}

	switch {
	case in.Description == "":
		errs.add("description", "Description is required")
	case len(in.Description) < 50:
		errs.add("description", "Description should be at least 50 characters for SEO")
	case len(in.Description) > 5000:
		errs.add("description", "Description is too long")
	}

	switch {
	case in.ShortDesc == "":
		errs.add("short_desc", "Short description is required")
	case len(in.ShortDesc) > 200:
		errs.add("short_desc", "Short description is too long")
	}

	switch {
	case in.Price <= 0:
		errs.add("price", "Price must be positive")
	case in.Price > 100000:
		errs.add("price", "Price is too high")
	}

	switch {
	case in.PriceUnit == "":
		errs.add("price_unit", "Price unit is required")
	case len(in.PriceUnit) > 50:
		errs.add("price_unit", "Price unit is too long")
	}

	switch {
	case in.DurationMin <= 0:
		errs.add("duration_min", "Duration must be positive")
	case in.DurationMin > 1440:
		errs.add("duration_min", "Duration cannot exceed 24 hours")
	}

	if in.ImageURL != "" && !validURL(in.ImageURL) {
		errs.add("image_url", "Invalid image URL")
	}

	return in, errs
}
