package app

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	valid "github.com/asaskevich/govalidator"
)

var (
	ErrUnresolvedPlaceholder = errors.New("unresolved path placeholder")
	ErrPathParamNotInt       = errors.New("path parameter is not an integer")
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_-]+)\}`)

type PathInterpolator struct{}

func NewPathInterpolator() PathInterpolator {
	return PathInterpolator{}
}

// Resolve fills {name} placeholders in path from params. Params listed in
// intParams must hold integers; anything else is rejected before a request
// is built from the path.
func (PathInterpolator) Resolve(path string, params map[string]string, intParams []string) (string, error) {
	for _, name := range intParams {
		if !valid.IsInt(params[name]) {
			return "", fmt.Errorf("%s: %q=%q: %w", path, name, params[name], ErrPathParamNotInt)
		}
	}

	resolved := path
	for name, value := range params {
		resolved = strings.Replace(resolved, "{"+name+"}", value, 1)
	}

	if match := placeholderPattern.FindString(resolved); match != "" {
		return "", fmt.Errorf("%s: %q: %w", path, match, ErrUnresolvedPlaceholder)
	}

	return resolved, nil
}
