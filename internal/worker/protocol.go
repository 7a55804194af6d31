package worker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// StatusError marks a result synthesized for a comment that could not be scored.
const StatusError = "Error"

// Result is one scored entry from the worker. Status is whatever label the
// scoring script emits; the bridge does not interpret it beyond error
// synthesis.
type Result struct {
	Probability float64 `json:"probability"`
	Status      string  `json:"status"`
	Rule        string  `json:"rule"`
}

// request is the single-line JSON envelope written to the worker's stdin.
type request struct {
	Comments []string `json:"comments"`
}

// response mirrors the worker's reply line. The worker echoes the request
// comments back; only Results is consumed.
type response struct {
	Comments []string `json:"comments"`
	Results  []Result `json:"results"`
}

// encodeRequest serializes comments as one newline-terminated JSON line.
// json.Marshal escapes embedded newlines, so the payload is always a single
// line regardless of comment content.
func encodeRequest(comments []string) ([]byte, error) {
	payload, err := json.Marshal(request{Comments: comments})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return append(payload, '\n'), nil
}

// decodeResponse parses one response line into typed results. Anything that
// does not match the wire shape is an error; callers treat it like a
// transport failure.
func decodeResponse(line []byte) (response, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return response{}, errors.New("decode response: empty line")
	}
	var resp response
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return response{}, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}
