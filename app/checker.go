package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jd "github.com/josephburnett/jd/lib"
)

var (
	ErrInvalidJSON         = errors.New("response body is not valid JSON")
	ErrInvalidExpectedBody = errors.New("expected body is not valid JSON")
	ErrStatusMarkerMissing = errors.New("expected status marker missing")
	ErrRecordStillPresent  = errors.New("record still present after deletion")
	ErrBodyMismatch        = errors.New("response body mismatch")
	ErrBodyKeyMissing      = errors.New("expected key missing in response body")
)

// CheckBody parses body as a JSON object and applies the step's pass
// condition as an explicit field lookup rather than a substring grep.
func CheckBody(body []byte, check Check) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		// An unparseable body cannot carry the marker, which is exactly
		// what the expect-missing step is looking for.
		if check.ExpectMissing {
			return nil
		}

		return fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}

	value, found := doc[check.Field]
	got, _ := value.(string)
	matched := found && got == check.Want

	if check.ExpectMissing {
		if matched {
			return fmt.Errorf("%q is still %q: %w", check.Field, check.Want, ErrRecordStillPresent)
		}

		return nil
	}

	if !matched {
		return fmt.Errorf("%q != %q: %w", check.Field, check.Want, ErrStatusMarkerMissing)
	}

	return nil
}

// CompareBodyKey diffs the sub-document under key against expected JSON.
// A non-empty diff is returned alongside ErrBodyMismatch so it can be
// recorded in the finding.
func CompareBodyKey(body []byte, key, expected string) (string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}

	raw, found := doc[key]
	if !found {
		return "", fmt.Errorf("%q: %w", key, ErrBodyKeyMissing)
	}

	want, err := jd.ReadJsonString(expected)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidExpectedBody, err)
	}

	got, err := jd.ReadJsonString(string(raw))
	if err != nil {
		return "", fmt.Errorf("%q: %w", key, ErrInvalidJSON)
	}

	diff := want.Diff(got).Render()
	if diff != "" {
		return diff, fmt.Errorf("%q: %w", key, ErrBodyMismatch)
	}

	return "", nil
}

func PrettyJSON(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}

	return buf.String(), nil
}
