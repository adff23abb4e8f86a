package context

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type Key string

const (
	Params Key = "params"
)

// ParamsFrom returns the route params injected by the router, or nil.
func ParamsFrom(r *http.Request) httprouter.Params {
	ps, _ := r.Context().Value(Params).(httprouter.Params)
	return ps
}
