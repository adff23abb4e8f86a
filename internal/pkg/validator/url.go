package validator

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var httpURLPattern = regexp.MustCompile(`^https?://.+`)

// HTTPURL accepts strings starting with http:// or https:// followed by at
// least one character. Empty values pass so it composes with Required.
var HTTPURL = validation.Match(httpURLPattern).Error("must start with http:// or https://")

func IsHTTPURL(s string) bool {
	return httpURLPattern.MatchString(s)
}
