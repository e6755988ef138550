package impl

import (
	"fmt"
	"math"
	"time"

	domainerrors "wanderly/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// patchRules maps the fields a partial update may touch to the constraint
// each value must satisfy. Fields outside the map are rejected, so a patch is
// held to the same rules the create inputs enforce.
type patchRules map[string]patchRule

type patchRule struct {
	// coerce asserts the decoded JSON value's type and converts it to the
	// stored representation.
	coerce func(value any) (any, error)
	// check is an optional validation constraint applied after coercion.
	check string
}

var patchValidate = validator.New(validator.WithRequiredStructEnabled())

// apply validates a patch in place, replacing raw values with their coerced
// forms so the store receives the same representation a create would write.
func (rules patchRules) apply(patch map[string]any) error {
	for field, raw := range patch {
		rule, ok := rules[field]
		if !ok {
			return domainerrors.ErrValidation.WrapMessage(fmt.Sprintf("field %q cannot be updated", field))
		}

		value, err := rule.coerce(raw)
		if err != nil {
			return domainerrors.ErrValidation.WrapMessage(fmt.Sprintf("invalid value for field %q", field))
		}

		if rule.check != "" {
			if err := patchValidate.Var(value, rule.check); err != nil {
				return domainerrors.ErrValidation.WrapMessage(fmt.Sprintf("invalid value for field %q", field))
			}
		}

		patch[field] = value
	}

	return nil
}

var errPatchValue = errors.New("unexpected patch value type")

func asString(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, errPatchValue
	}

	return s, nil
}

func asNumber(value any) (any, error) {
	n, ok := value.(float64)
	if !ok {
		return nil, errPatchValue
	}

	return n, nil
}

// asInt accepts only whole numbers; JSON decodes every number as float64.
func asInt(value any) (any, error) {
	n, ok := value.(float64)
	if !ok || n != math.Trunc(n) {
		return nil, errPatchValue
	}

	return int(n), nil
}

func asBool(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, errPatchValue
	}

	return b, nil
}

func asStrings(value any) (any, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, errPatchValue
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errPatchValue
		}
		out = append(out, s)
	}

	return out, nil
}

func asObjectIDs(value any) (any, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, errPatchValue
	}

	out := make([]bson.ObjectID, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errPatchValue
		}
		id, err := bson.ObjectIDFromHex(s)
		if err != nil {
			return nil, errPatchValue
		}
		out = append(out, id)
	}

	return out, nil
}

func asTimes(value any) (any, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, errPatchValue
	}

	out := make([]time.Time, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errPatchValue
		}
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, errPatchValue
		}
		out = append(out, ts)
	}

	return out, nil
}
