// Package validator wraps go-playground/validator with the service's
// domain rules and the request DTOs they apply to.
package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/edubase/school-service/internal/models"
)

// Validator validates request structs against struct tags plus the custom
// domain rules registered below.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerDomainRules()
	return v
}

// Validate returns nil when s passes all rules.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) registerDomainRules() {
	// score_range: a graded component must lie in [0, 10].
	_ = v.validate.RegisterValidation("score_range", func(fl validator.FieldLevel) bool {
		score := fl.Field().Float()
		return score >= models.ScoreMin && score <= models.ScoreMax
	})

	// user_role: one of the directory's known roles.
	_ = v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.ValidRole(models.UserRole(fl.Field().String()))
	})
}
