package handlers

import (
	"encoding/json"
	"errors"

	"github.com/backsoul/trivia-board/pkg/models"
	"github.com/backsoul/trivia-board/pkg/services"
	"github.com/valyala/fasthttp"
)

// respondWithJSON writes a JSON body with the given status code.
func respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, response interface{}) {
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.SetStatusCode(statusCode)

	jsonData, err := json.Marshal(response)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"success": false, "error": "error serializing response"}`)
		return
	}

	ctx.SetBody(jsonData)
}

// respondWithError writes a failure envelope.
func respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	respondWithJSON(ctx, statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// respondWithSuccess writes a success envelope.
func respondWithSuccess(ctx *fasthttp.RequestCtx, data interface{}, message string) {
	respondWithJSON(ctx, fasthttp.StatusOK, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondWithServiceError maps the service failure signals onto status codes.
func respondWithServiceError(ctx *fasthttp.RequestCtx, err error) {
	status := fasthttp.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fasthttp.StatusUnauthorized
	case errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrQuestionNotFound):
		status = fasthttp.StatusNotFound
	case errors.Is(err, services.ErrQuestionAnswered),
		errors.Is(err, services.ErrNoActiveQuestion):
		status = fasthttp.StatusConflict
	case errors.Is(err, services.ErrEmptyTeamName),
		errors.Is(err, services.ErrInvalidRound),
		errors.Is(err, services.ErrInvalidMode):
		status = fasthttp.StatusBadRequest
	}

	respondWithError(ctx, status, err.Error())
}
