package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/movie-booking-web/internal/apiclient"
	"github.com/metinatakli/movie-booking-web/internal/domain"
	appvalidator "github.com/metinatakli/movie-booking-web/internal/validator"
)

const (
	ErrInternalServer   = "The server encountered a problem and could not process your request"
	ErrNotFound         = "The requested resource not found"
	ErrMethodNotAllowed = "The %s method is not supported for this resource"
	ErrFailedValidation = "The request contains invalid fields"
	ErrBackendFailure   = "The booking service could not be reached"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	ErrorResponse
	ValidationErrors []ValidationError `json:"validationErrors"`
}

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.ErrorContext(r.Context(), err.Error(),
		"method", method,
		"uri", uri,
		"request_id", middleware.GetReqID(r.Context()))
}

// backendErrorStatus maps a failed backend call to the status relayed to a
// JSON client. Request errors the backend reported (4xx) keep their status;
// outages and undecodable answers become 502.
func backendErrorStatus(err error) int {
	var apiErr *apiclient.Error
	if errors.Is(err, domain.ErrBackend) || !errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}

	if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return apiErr.StatusCode
	}

	return http.StatusBadGateway
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorJSON(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, messages map[string]string) {
	resp := ValidationErrorResponse{
		ErrorResponse: ErrorResponse{
			Message:   ErrFailedValidation,
			RequestId: middleware.GetReqID(r.Context()),
			Timestamp: time.Now(),
		},
	}

	for _, field := range sortedKeys(messages) {
		resp.ValidationErrors = append(resp.ValidationErrors, ValidationError{
			Field: field,
			Issue: messages[field],
		})
	}

	err := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

// errorPage renders the HTML error page. If rendering itself fails the
// plain status text is written instead.
func (app *Application) errorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := app.newTemplateData(r)
	data.Page = errorPage{Status: status, Message: message}

	app.render(w, r, status, pageError, data)
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorPage(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorPage(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorPage(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(ErrMethodNotAllowed, r.Method))
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorPage(w, r, http.StatusBadRequest, err.Error())
}

// validationMessages converts a validator error into field messages. Any
// other error is reported against the form as a whole.
func validationMessages(err error) map[string]string {
	messages := appvalidator.Messages(err)
	if messages == nil {
		messages = map[string]string{"form": err.Error()}
	}

	return messages
}
