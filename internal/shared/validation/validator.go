package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"qualite-pro-core/internal/shared/apperrors"
)

// Validator validator/v10 configuré avec les noms JSON et la règle notblank
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				return false
			}
			field = field.Elem()
		}
		if field.Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(field.String()) != ""
	})

	return &Validator{validate: v}
}

// Struct valide une requête ; retourne une AppError VALIDATION_ERROR ou nil
func (v *Validator) Struct(req interface{}) *apperrors.AppError {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.InvalidArgument(err.Error())
	}

	champs := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		champs[fieldErr.Field()] = Message(fieldErr)
	}
	return apperrors.Validation(champs)
}

// Message libellé français d'une règle en échec
func Message(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "notblank":
		return "Ce champ est requis"
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Doit contenir au moins %s caractères", err.Param())
		}
		return fmt.Sprintf("Doit être supérieur ou égal à %s", err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Doit contenir au maximum %s caractères", err.Param())
		}
		return fmt.Sprintf("Doit être inférieur ou égal à %s", err.Param())
	case "gte":
		return fmt.Sprintf("Doit être supérieur ou égal à %s", err.Param())
	case "lte":
		return fmt.Sprintf("Doit être inférieur ou égal à %s", err.Param())
	case "email":
		return "Format d'email invalide"
	case "mongodb":
		return "Identifiant invalide"
	case "oneof":
		return fmt.Sprintf("Valeur invalide. Valeurs autorisées: %s", err.Param())
	default:
		return "Valeur invalide"
	}
}
