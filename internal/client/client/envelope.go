package client

import (
	"encoding/json"
	"strconv"
)

// errorEnvelope covers the error shapes the backend is known to produce:
//
//	{"message": "..."}
//	{"error": {"message": "..."}}
//	{"errors": [{"msg": "..."}]}
//
// Every field is raw so that an unexpected type in one place does not
// prevent reading the others.
type errorEnvelope struct {
	Message json.RawMessage `json:"message"`
	Code    json.RawMessage `json:"code"`
	Error   json.RawMessage `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

func parseServiceError(status int, body []byte) *ServiceError {
	se := &ServiceError{Message: DefaultErrorMessage, Status: status}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return se
	}

	se.Code = scalarString(env.Code)
	if msg := resolveMessage(env); msg != "" {
		se.Message = msg
	}
	return se
}

func resolveMessage(env errorEnvelope) string {
	if msg := scalarString(env.Message); msg != "" {
		return msg
	}

	var nested struct {
		Message json.RawMessage `json:"message"`
	}
	if len(env.Error) > 0 && json.Unmarshal(env.Error, &nested) == nil {
		if msg := scalarString(nested.Message); msg != "" {
			return msg
		}
	}

	var list []struct {
		Msg json.RawMessage `json:"msg"`
	}
	if len(env.Errors) > 0 && json.Unmarshal(env.Errors, &list) == nil && len(list) > 0 {
		return scalarString(list[0].Msg)
	}
	return ""
}

// scalarString reads a JSON string or number as text; anything else is "".
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if _, err := strconv.ParseFloat(n.String(), 64); err == nil {
			return n.String()
		}
	}
	return ""
}
