package response

import (
	"encoding/json"
	"net/http"

	"autoparts-storefront-api/pkg/apierror"
)

// Response represents a standard API response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta contains list metadata.
type Meta struct {
	Count  int    `json:"count"`
	Source string `json:"source,omitempty"`
	Stale  bool   `json:"stale,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(Response{
		Success: true,
		Data:    data,
	})
}

// List sends a 200 response with list metadata attached.
func List(w http.ResponseWriter, data interface{}, meta Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(Response{
		Success: true,
		Data:    data,
		Meta:    &meta,
	})
}

// Error sends an error response.
func Error(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*apierror.Error)
	if !ok {
		apiErr = apierror.InternalError("an unexpected error occurred")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	w.Write(apiErr.ToJSON())
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Created sends a 201 Created response with the created resource.
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// OK sends a 200 OK response.
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}
