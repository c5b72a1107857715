package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/quickretail/qpos/internal/api/middleware"
	"github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/utils/response"
)

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(dest)

	if stderrors.Is(err, io.EOF) {
		middleware.LoggerFromContext(r.Context()).Warn("Empty request body")
		response.Error(w, errors.BadRequestError("Request body cannot be empty"))
		return err
	}

	if err != nil {
		middleware.LoggerFromContext(r.Context()).Warn("Failed to decode request body")
		response.Error(w, errors.BadRequestError("Invalid request body"))
		return err
	}

	return nil
}

func validateStruct(w http.ResponseWriter, validate *validator.Validate, data any) bool {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
		} else {
			response.Error(w, errors.InternalError("Unexpected validation error").WithError(err))
		}
		return false
	}
	return true
}

// sessionFromRequest resolves the register session of the authenticated
// cashier. The auth middleware guarantees claims are present on every route
// that reaches here.
func sessionFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return "", false
	}

	return middleware.SessionID(claims), true
}
