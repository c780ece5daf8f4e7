package render

import (
	"encoding/json"
	"net/http"

	"vault/core"
	"vault/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorln(err)
	}
}

// Error write error. Business errors keep their code; everything else
// is reported with the generic unknown code.
func Error(w http.ResponseWriter, statusCode int, err error) {
	code := int(core.ErrUnknown)
	msg := err.Error()

	switch e := err.(type) {
	case core.ErrorCode:
		code = int(e)
	case twirp.Error:
		code = codes.Get(e.Code())
		if custom := e.Meta(codes.CustomCodeKey); custom != "" {
			code = cast.ToInt(custom)
		}
		msg = e.Msg()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(H{"code": code, "msg": msg}); err != nil {
		logrus.Errorln(err)
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, err)
}
