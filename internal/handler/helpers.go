package handler

import (
	"net/http"
	"reflect"

	"nexopos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		// Incomplete or malformed fields are a 400, same as the service-level
		// validation errors mapped through apierror.Status.
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQueryAndValidate binds query-string filters and validates them.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("parámetros inválidos: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps a service error onto the taxonomy's HTTP status. Internal
// errors are logged by the ErrorHandler middleware via c.Error and masked.
func respondError(c *gin.Context, err error) {
	status := apierror.Status(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}

// parseUUIDParam extracts and parses the :id path parameter.
func parseUUIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}
