package app

type Headers struct {
	Global HeaderKV `json:"global"`
}

type HeaderKV map[string]string
