package cli

import "github.com/charmbracelet/huh"

// dateInput returns a huh.Input for an optional date field with YYYY-MM-DD validation.
func dateInput(title, placeholder string, value *string) *huh.Input {
	if placeholder == "" {
		placeholder = "2024-02-20"
	}
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateOptionalDate)
}

// durationInput returns a huh.Input for an optional H:MM duration field.
func durationInput(title, placeholder string, value *string) *huh.Input {
	if title == "" {
		title = "Estimate (H:MM)"
	}
	if placeholder == "" {
		placeholder = "2:00"
	}
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateOptionalDuration)
}
