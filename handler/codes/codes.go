package codes

import (
	"strconv"

	"vault/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"
)

// With attach a business code to a twirp error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get map a twirp error code to the response code
func Get(code twirp.ErrorCode) int {
	if code == twirp.InvalidArgument {
		return int(core.ErrInvalidAmount)
	}

	return twirp.ServerHTTPStatusFromErrorCode(code)
}
