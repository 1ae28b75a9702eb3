package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var errInvalidBody = errors.New("invalid request body")

type addCityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type modalInputRequest struct {
	Text string `json:"text" validate:"max=100"`
}

type suggestionRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// positionRequest mirrors a geolocation callback: either coordinates or an error code.
type positionRequest struct {
	Lat   *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon   *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
	Error string   `json:"error" validate:"omitempty,oneof=denied unavailable timeout unsupported"`
}

// decodeAndValidate reads a JSON body into dst and validates it.
// An empty body decodes as the zero value.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return validate.Struct(dst)
}
