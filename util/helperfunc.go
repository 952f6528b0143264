package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint answers with. Optional fields
// are omitted when unset so auth responses can carry token/user while the
// appointment endpoints only carry data.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Error     string      `json:"error,omitempty"`
	Token     string      `json:"token,omitempty"`
	User      interface{} `json:"user,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	EmailSent *bool       `json:"emailSent,omitempty"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg       string
	Data      interface{}
	Token     string
	User      interface{}
	EmailSent *bool
}

func errorResponse(params APIErrorParams) APIResponse {
	resp := APIResponse{
		Success: false,
		Message: params.Msg,
	}
	if params.Err != nil {
		resp.Error = params.Err.Error()
	}
	return resp
}

func successResponse(params APISuccessParams) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   params.Msg,
		Token:     params.Token,
		User:      params.User,
		Data:      params.Data,
		EmailSent: params.EmailSent,
	}
}

// CallUserError is for return error from user side (validation, duplicates)
func CallUserError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusBadRequest, errorResponse(params))
}

// CallUserNotAuthorized is for return API response with status code 401
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusUnauthorized, errorResponse(params))
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusNotFound, errorResponse(params))
}

// CallServerError is for return API response server error. The underlying
// error message is surfaced in the response for diagnostics.
func CallServerError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusInternalServerError, errorResponse(params))
}

// CallSuccessOK is for return API response with status code 200
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, successResponse(params))
}

// CallSuccessCreated is for return API response with status code 201
func CallSuccessCreated(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusCreated, successResponse(params))
}
