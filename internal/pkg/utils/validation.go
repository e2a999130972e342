package utils

import (
	"medisync-service/internal/app/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("appointment_status", validateAppointmentStatus)
	validate.RegisterValidation("user_type", validateUserType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateAppointmentStatus(fl validator.FieldLevel) bool {
	return models.AppointmentStatus(fl.Field().String()).IsValid()
}

func validateUserType(fl validator.FieldLevel) bool {
	_, ok := models.ParseSignUpRole(fl.Field().String())
	return ok
}
