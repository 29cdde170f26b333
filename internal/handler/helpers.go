package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/chihoangvnn/sss-sub001/internal/apierror"
	"github.com/chihoangvnn/sss-sub001/internal/cart"
	"github.com/chihoangvnn/sss-sub001/internal/tabs"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps the cart/tab error kinds onto HTTP statuses. Every kind
// is recoverable; the status just tells the UI which notification to show.
func respondError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, cart.ErrProductNotFound), errors.Is(err, tabs.ErrNoSuchTab):
		status = http.StatusNotFound
	case errors.Is(err, cart.ErrOutOfStock), errors.Is(err, cart.ErrDuplicateTargetNotEmpty):
		status = http.StatusConflict
	case errors.Is(err, cart.ErrBelowMinimumQuantity):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, cart.ErrOrderSubmissionFailed):
		status = http.StatusBadGateway
	}
	c.JSON(status, apierror.New(err.Error()))
}
