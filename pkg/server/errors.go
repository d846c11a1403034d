// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"errors"
	"maps"
	"net/http"
	"time"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/serializer"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes a structured error response with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code recerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps err onto an error response. Structured errors keep
// their code, message and context; anything else is reported as an internal
// error using fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, details map[string]any) {
	var se *recerrors.StructuredError
	if errors.As(err, &se) {
		merged := mergeDetails(se.Context, details)
		if se.Cause != nil {
			if merged == nil {
				merged = map[string]any{}
			}
			merged["error"] = se.Cause.Error()
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), merged)
		return
	}

	merged := mergeDetails(details, nil)
	if err != nil {
		if merged == nil {
			merged = map[string]any{}
		}
		merged["error"] = err.Error()
	}
	WriteError(w, r, http.StatusInternalServerError, recerrors.ErrCodeInternal, fallbackMessage, true, merged)
}

type codeMapping struct {
	status    int
	retryable bool
}

var codeMappings = map[recerrors.ErrorCode]codeMapping{
	recerrors.ErrCodeInvalidRequest:    {http.StatusBadRequest, false},
	recerrors.ErrCodeNotFound:          {http.StatusNotFound, false},
	recerrors.ErrCodeMethodNotAllowed:  {http.StatusMethodNotAllowed, false},
	recerrors.ErrCodePayloadTooLarge:   {http.StatusRequestEntityTooLarge, false},
	recerrors.ErrCodeRateLimitExceeded: {http.StatusTooManyRequests, true},
	recerrors.ErrCodeUnavailable:       {http.StatusServiceUnavailable, true},
	recerrors.ErrCodeTimeout:           {http.StatusGatewayTimeout, true},
	recerrors.ErrCodeInternal:          {http.StatusInternalServerError, true},
}

// HTTPStatusFromCode returns the HTTP status for an error code. Unknown
// codes map to 500.
func HTTPStatusFromCode(code recerrors.ErrorCode) int {
	if m, ok := codeMappings[code]; ok {
		return m.status
	}
	return http.StatusInternalServerError
}

func retryableFromCode(code recerrors.ErrorCode) bool {
	return codeMappings[code].retryable
}

// mergeDetails returns a new map with the entries of a then b. It returns nil
// when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out
}
