package handlers

import (
	"regexp"
	"strings"

	"github.com/ArowuTest/sansol-promo-backend/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern   = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	prizeIDPattern = regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)*$`)
)

const maxPrizeIDLength = 64

// RegisterValidators adds the "phone" and "prizeid" binding rules to gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return err
	}
	return v.RegisterValidation("prizeid", validatePrizeID)
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(utils.CleanPhone(fl.Field().String()))
}

func validatePrizeID(fl validator.FieldLevel) bool {
	id := strings.TrimSpace(fl.Field().String())
	return len(id) <= maxPrizeIDLength && prizeIDPattern.MatchString(id)
}
