package controllers

// field pairs a JSON field name with whether the request supplied it as an explicit null.
type field struct {
	name string
	null bool
}

// notNull reports one message per field that was sent as null.
func notNull(fields ...field) []string {
	var errs []string
	for _, f := range fields {
		if f.null {
			errs = append(errs, f.name+" cannot be null")
		}
	}
	return errs
}
