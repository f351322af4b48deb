package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/iangusi/cafeteria-admin/internal/apierror"
	"github.com/iangusi/cafeteria-admin/internal/model"
	"github.com/iangusi/cafeteria-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
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
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
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

// respondError maps domain errors to their HTTP status: state conflicts to
// 409, unit mismatches to 422, missing rows to 404, anything else to 400.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVentaNoModificable), errors.Is(err, service.ErrInsumoEnUso),
		errors.Is(err, service.ErrEntradaYaRegistrada), errors.Is(err, service.ErrSalidaYaRegistrada),
		errors.Is(err, service.ErrSalidaSinRegistro), errors.Is(err, service.ErrSalidaSinEntrada):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, model.ErrUnidadesIncompatibles):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCredencialesInvalidas):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Recurso no encontrado"))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
