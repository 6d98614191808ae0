package app

type Results struct {
	Findings []Finding
}

type Finding struct {
	Step  string `json:"step"`
	URL   string `json:"url"`
	Error string `json:"error"`
	Body  string `json:"body,omitempty"`
	Diff  string `json:"diff,omitempty"`
}
