package api

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"forecast.app/pkg/errors"
	"forecast.app/pkg/validation"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// registerValidators adds the coord_lat and coord_lon binding tags to gin's
// validator engine. Safe to call more than once.
func registerValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.NewConfigurationError("unexpected binding validator engine", nil)
			return
		}

		if err := v.RegisterValidation("coord_lat", func(fl validator.FieldLevel) bool {
			return validation.IsValidLatitude(fl.Field().Float())
		}); err != nil {
			registerErr = errors.NewConfigurationError("failed to register coord_lat validator", err)
			return
		}

		if err := v.RegisterValidation("coord_lon", func(fl validator.FieldLevel) bool {
			return validation.IsValidLongitude(fl.Field().Float())
		}); err != nil {
			registerErr = errors.NewConfigurationError("failed to register coord_lon validator", err)
		}
	})
	return registerErr
}
