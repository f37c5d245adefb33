package pagination

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validateSort(op string, sort Sort) error {
	seen := make(map[string]struct{}, len(sort))
	for i, f := range sort {
		if strings.TrimSpace(f.Field) == "" {
			return invalidParam(op, "sort field %d is empty", i)
		}
		if strings.HasPrefix(f.Field, "$") {
			return invalidParam(op, "sort field %q must not start with $", f.Field)
		}
		if f.Direction != Asc && f.Direction != Desc {
			return invalidParam(op, "sort field %q has direction %d, want 1 or -1", f.Field, f.Direction)
		}
		if _, dup := seen[f.Field]; dup {
			return invalidParam(op, "sort field %q repeated", f.Field)
		}
		seen[f.Field] = struct{}{}
	}
	return nil
}

// validateFilter rejects empty keys at any depth. Nested documents may be Filter,
// map[string]any, bson.M or bson.D, alone or inside arrays such as $or; conditions
// themselves are not inspected.
func validateFilter(op string, filter Filter) error {
	for k, v := range filter {
		if strings.TrimSpace(k) == "" {
			return invalidParam(op, "filter has an empty field name")
		}
		if err := validateFilterValue(op, v); err != nil {
			return err
		}
	}
	return nil
}

func validateFilterValue(op string, v any) error {
	switch nested := v.(type) {
	case Filter:
		return validateFilter(op, nested)
	case map[string]any:
		return validateFilter(op, Filter(nested))
	case primitive.M:
		return validateFilter(op, Filter(nested))
	case primitive.D:
		for _, e := range nested {
			if strings.TrimSpace(e.Key) == "" {
				return invalidParam(op, "filter has an empty field name")
			}
			if err := validateFilterValue(op, e.Value); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range nested {
			if err := validateFilterValue(op, item); err != nil {
				return err
			}
		}
	case []Filter:
		for _, item := range nested {
			if err := validateFilter(op, item); err != nil {
				return err
			}
		}
	case primitive.A:
		for _, item := range nested {
			if err := validateFilterValue(op, item); err != nil {
				return err
			}
		}
	}
	return nil
}
