package app

// Step is one smoketest: a single HTTP request plus its pass condition.
type Step struct {
	Name           string
	HTTPMethod     string
	RelativePath   string // may contain {param} placeholders
	PathParams     map[string]string
	IntPathParams  []string // params that must hold integers
	RequestBody    *string
	RequestHeaders map[string]string
	Check          Check
	ExpectedBody   *string // optional structural comparison against BodyKey
	BodyKey        string
}

// Check names the JSON field and value that mark a passing response.
// ExpectMissing inverts it: the step fails if the field still matches,
// which is how a deleted record is verified gone.
type Check struct {
	Field         string
	Want          string
	ExpectMissing bool
}
