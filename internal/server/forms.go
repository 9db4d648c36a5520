package server

// Form carries submitted values and per-field errors back to a page.
type Form struct {
	Values map[string]string   `json:"values"`
	Errors map[string][]string `json:"errors"`
}

// NonFieldErrors is the Errors key for errors not tied to one field.
const NonFieldErrors = "__all__"

func newForm() *Form {
	return &Form{Values: map[string]string{}, Errors: map[string][]string{}}
}

func (f *Form) Set(field, value string) *Form {
	f.Values[field] = value
	return f
}

func (f *Form) Value(field string) string {
	return f.Values[field]
}

func (f *Form) AddError(field, message string) {
	f.Errors[field] = append(f.Errors[field], message)
}

// FieldErrors returns the errors recorded for field.
func (f *Form) FieldErrors(field string) []string {
	return f.Errors[field]
}
