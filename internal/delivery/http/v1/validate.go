package v1

import (
	"strings"

	"github.com/Brend-VanDenEynde/planner-api/internal/models"
)

// firstError runs checks in order and stops at the first failure.
func firstError(checks ...func() error) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// ifSet validates a patch field only when the payload contains it. A JSON
// null is validated as an empty string, since none of the columns accept
// NULL.
func ifSet(o models.Optional[string], validate func(string) error) func() error {
	return func() error {
		if !o.IsSet() {
			return nil
		}
		v, _ := o.Get()
		return validate(v)
	}
}

func trimOptional(o models.Optional[string]) models.Optional[string] {
	if v, ok := o.Get(); ok {
		return models.Some(strings.TrimSpace(v))
	}
	return o
}
