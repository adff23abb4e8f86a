package handlers

import (
	"net/http"

	"hookdesk/internal/engine/navigation"
	"hookdesk/internal/pkg/errors"
)

type ViewHandler struct {
	nav *navigation.Navigator
}

func NewViewHandler(nav *navigation.Navigator) *ViewHandler {
	return &ViewHandler{nav: nav}
}

// Resolve maps a location fragment such as "#/edit/42" to the view to
// render, including the populated form for edit routes.
func (h *ViewHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	errors.WriteJSON(w, http.StatusOK, h.nav.Resolve(r.URL.Query().Get("fragment")))
}
