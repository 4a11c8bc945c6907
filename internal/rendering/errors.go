package rendering

import "fmt"

// UnknownTemplateError reports a layout name with no embedded template.
type UnknownTemplateError struct {
	Name string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q", e.Name)
}
