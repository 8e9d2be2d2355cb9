package infra

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"billrun/internal/apierror"
)

// envelope is the {status, data} wrapper every Billogram API response uses.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// errorData is the data payload the API attaches to error envelopes.
type errorData struct {
	Message string `json:"message"`
}

// Classify inspects a raw API response and either returns the data payload
// or a domain error from the apierror taxonomy. It is pure over the
// response: no retries, no logging, no side effects.
//
// A non-200 response that matches none of the explicit branches yields an
// unclassified_response error rather than passing through silently.
func Classify(resp *http.Response) (json.RawMessage, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierror.Newf(apierror.KindServiceMalfunctioning,
			"reading response body: %v", err)
	}

	// A 5xx without a JSON body carries no envelope worth parsing.
	if resp.StatusCode >= 500 && resp.StatusCode <= 599 && !hasJSONContentType(resp) {
		return nil, apierror.New(apierror.KindServiceMalfunctioning,
			"service is malfunctioning")
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apierror.Newf(apierror.KindServiceMalfunctioning,
			"invalid response body: %v", err)
	}
	if env.Status == "" {
		return nil, apierror.New(apierror.KindServiceMalfunctioning,
			"missing status field")
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, apierror.New(apierror.KindServiceMalfunctioning,
			"missing data field")
	}

	if resp.StatusCode == http.StatusOK {
		return env.Data, nil
	}

	switch {
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return nil, apierror.Newf(apierror.KindServiceMalfunctioning,
			"%s: %s", env.Status, errorMessage(env.Data))

	case resp.StatusCode == http.StatusBadRequest && env.Status == "INVALID_PARAMETER":
		return nil, apierror.New(apierror.KindInvalidParameter, errorMessage(env.Data))

	case resp.StatusCode == http.StatusForbidden:
		switch env.Status {
		case "PERMISSION_DENIED":
			return nil, apierror.New(apierror.KindNotAuthorized, "not authorized")
		case "INVALID_AUTH":
			return nil, apierror.New(apierror.KindInvalidAuthentication, "invalid authentication")
		case "MISSING_AUTH":
			return nil, apierror.New(apierror.KindRequestForm, "missing authentication")
		default:
			return nil, apierror.New(apierror.KindPermissionDenied, env.Status)
		}

	case resp.StatusCode == http.StatusNotFound:
		if env.Status == "NOT_AVAILABLE_YET" {
			return nil, apierror.New(apierror.KindObjectNotFound, "not available yet")
		}
		return nil, apierror.New(apierror.KindObjectNotFound, "not found")
	}

	return nil, apierror.Newf(apierror.KindUnclassifiedResponse,
		"unhandled response: http %d, status %q", resp.StatusCode, env.Status)
}

func hasJSONContentType(resp *http.Response) bool {
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func errorMessage(data json.RawMessage) string {
	var d errorData
	if err := json.Unmarshal(data, &d); err != nil || d.Message == "" {
		return "no message provided"
	}
	return d.Message
}
