package apiclient

import "encoding/json"

// Result is the uniform outcome of one attempted API call. Success selects
// which payload field is populated: Data on success, Error on failure, never
// both. StatusCode is zero when no response was received at all.
type Result struct {
	Success    bool `json:"success"`
	StatusCode int  `json:"statusCode,omitempty"`
	Data       any  `json:"data,omitempty"`
	Error      any  `json:"error,omitempty"`
}

func successResult(status int, body []byte) *Result {
	return &Result{
		Success:    true,
		StatusCode: status,
		Data:       decodeBody(body),
	}
}

// remoteFailure captures an error status reported by the remote.
func remoteFailure(status int, body []byte) *Result {
	return &Result{
		StatusCode: status,
		Error:      decodeBody(body),
	}
}

// localFailure captures a call that produced no remote response: transport
// errors, timeouts, or requests that could not be built.
func localFailure(message string) *Result {
	return &Result{Error: message}
}

// decodeBody applies the loose decoding HTTP clients conventionally apply
// to bodies: JSON when it parses, the raw text otherwise. An empty body
// decodes to the empty string, so any response keeps exactly one of
// Data/Error populated.
func decodeBody(body []byte) any {
	if len(body) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}
