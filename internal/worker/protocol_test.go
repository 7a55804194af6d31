package worker

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeRequestIsSingleLine(t *testing.T) {
	payload, err := encodeRequest([]string{"first\nsecond", "plain"})
	if err != nil {
		t.Fatalf("encodeRequest: %v", err)
	}
	if !bytes.HasSuffix(payload, []byte("\n")) {
		t.Fatal("request must be newline-terminated")
	}
	body := payload[:len(payload)-1]
	if bytes.ContainsRune(body, '\n') {
		t.Errorf("embedded newline leaked into the wire payload: %q", body)
	}
	if !strings.Contains(string(body), `"comments"`) {
		t.Errorf("payload missing comments key: %s", body)
	}
}

func TestDecodeResponseTyped(t *testing.T) {
	line := []byte(`{"comments":["a","b"],"results":[{"probability":0.9,"status":"Violates rule","rule":"insult"},{"probability":0.1,"status":"Safe","rule":""}]}` + "\n")
	resp, err := decodeResponse(line)
	if err != nil {
		t.Fatalf("decodeResponse: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Results))
	}
	if resp.Results[0].Probability != 0.9 || resp.Results[0].Status != "Violates rule" || resp.Results[0].Rule != "insult" {
		t.Errorf("unexpected first result: %+v", resp.Results[0])
	}
}

func TestDecodeResponseRejectsGarbage(t *testing.T) {
	for _, line := range []string{"", "   ", "not json", `{"results":`} {
		if _, err := decodeResponse([]byte(line)); err == nil {
			t.Errorf("decodeResponse(%q) should fail", line)
		}
	}
}

func TestDecodeResponseToleratesOutOfRangeProbability(t *testing.T) {
	line := []byte(`{"results":[{"probability":-1,"status":"Error","rule":""}]}`)
	resp, err := decodeResponse(line)
	if err != nil {
		t.Fatalf("decodeResponse: %v", err)
	}
	if resp.Results[0].Probability != -1 {
		t.Errorf("out-of-range probability should be stored verbatim, got %v", resp.Results[0].Probability)
	}
}
