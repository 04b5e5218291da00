package predictor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/yigit/cutoffpredictor/internal/app/models"
	"github.com/yigit/cutoffpredictor/internal/pkg/apperrors"
)

// PercentileScale is the number of decimal places kept on percentiles.
const PercentileScale = 2

var (
	minPercentile = decimal.Zero
	maxPercentile = decimal.NewFromInt(100)
)

// criteriaRules mirrors CriteriaInput with validation tags
type criteriaRules struct {
	Percentile *decimal.Decimal `validate:"required"`
	Category   string           `validate:"required,category"`
	Domicile   string           `validate:"required,domicile"`
	BranchIDs  []string         `validate:"required,min=1,dive,required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).IsValid()
	})
	mustRegister(v, "domicile", func(fl validator.FieldLevel) bool {
		return models.Domicile(fl.Field().String()).IsValid()
	})
	return v
}

// mustRegister panics at init; a missing tag would make every request fail validation.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("predictor: register %q validation: %v", tag, err))
	}
}

// ValidateCriteria turns a raw request into Criteria or fails with
// apperrors.ErrInvalidCriteria. It has no side effects.
func ValidateCriteria(in models.CriteriaInput) (models.Criteria, error) {
	rules := criteriaRules{
		Percentile: in.Percentile,
		Category:   deref(in.Category),
		Domicile:   deref(in.Domicile),
		BranchIDs:  normalizeBranchIDs(in.BranchIDs),
	}

	if err := validate.Struct(rules); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return models.Criteria{}, apperrors.NewInvalidCriteriaError(fieldName(fieldErrs[0]), reason(fieldErrs[0]))
		}
		return models.Criteria{}, apperrors.NewInvalidCriteriaError("request", err.Error())
	}

	raw := *rules.Percentile
	if raw.LessThan(minPercentile) || raw.GreaterThan(maxPercentile) {
		return models.Criteria{}, apperrors.NewInvalidCriteriaError("percentile", "must be between 0 and 100")
	}
	// Truncate toward zero so the filter never exceeds the submitted value.
	percentile := raw.Truncate(PercentileScale)

	return models.Criteria{
		Percentile: percentile,
		Category:   models.Category(rules.Category),
		Domicile:   models.Domicile(rules.Domicile),
		BranchIDs:  rules.BranchIDs,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// normalizeBranchIDs drops blank and repeated IDs, keeping first-seen order.
func normalizeBranchIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func fieldName(e validator.FieldError) string {
	switch e.StructField() {
	case "Percentile":
		return "percentile"
	case "Category":
		return "category"
	case "Domicile":
		return "domicile"
	default:
		return "branch_ids"
	}
}

func reason(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "category":
		return "must be one of OPEN, SC, ST, OBC, EWS"
	case "domicile":
		return "must be Maharashtra or Other State"
	default:
		return "failed " + e.Tag()
	}
}
