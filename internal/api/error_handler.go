package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/obrastat/obrastat/internal/domain"
	"github.com/obrastat/obrastat/internal/pkg/constants"
	"github.com/obrastat/obrastat/internal/pkg/logger"
)

// httpErrorHandler answers with the code carried by a CodedError anywhere in
// the chain; everything else is a 500.
func httpErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError

	var coded *constants.CodedError
	if errors.As(err, &coded) {
		code = coded.Code()
	} else {
		logger.Errorf(c.Request().Context(), "unhandled error: %s", err.Error())
	}

	_ = c.JSON(code, domain.ErrorResponse{
		Message: err.Error(),
		Code:    code,
	})
}
