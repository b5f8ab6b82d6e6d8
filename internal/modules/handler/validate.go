package handler

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/unidash/unidash/internal/pkg/cellvalue"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by request
// structs in this package. It is safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("column_type", func(fl validator.FieldLevel) bool {
			return cellvalue.ColumnType(fl.Field().String()).Valid()
		})
	})
	return err
}
