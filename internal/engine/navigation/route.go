package navigation

import (
	"strings"

	"hookdesk/internal/engine/subscriptions"
	"hookdesk/internal/platform/models"
)

type View string

const (
	ViewList   View = "list"
	ViewCreate View = "create"
	ViewEdit   View = "edit"
)

const ListFragment = "#/"

type Route struct {
	View           View   `json:"view"`
	SubscriptionID string `json:"subscription_id,omitempty"`
}

// Parse maps a location fragment such as "#/edit/42" to a route. Unknown
// fragments fall back to the list.
func Parse(fragment string) Route {
	if strings.Contains(fragment, "/edit/") {
		parts := strings.Split(fragment, "/")
		if id := parts[len(parts)-1]; id != "" {
			return Route{View: ViewEdit, SubscriptionID: id}
		}
		return Route{View: ViewCreate}
	}
	if strings.Contains(fragment, "/create") {
		return Route{View: ViewCreate}
	}
	return Route{View: ViewList}
}

type SubscriptionLookup interface {
	Get(id string) (models.Subscription, error)
}

type Notifier interface {
	Error(message string) string
}

// Resolution is the view to render. Redirect is set when the requested
// route could not be shown.
type Resolution struct {
	Route    Route               `json:"route"`
	Redirect string              `json:"redirect,omitempty"`
	Form     *subscriptions.Form `json:"form,omitempty"`
}

type Navigator struct {
	subs   SubscriptionLookup
	notify Notifier
}

func NewNavigator(subs SubscriptionLookup, notify Notifier) *Navigator {
	return &Navigator{subs: subs, notify: notify}
}

// Resolve parses fragment and prepares the form for create and edit views.
// An edit route for an unknown id raises an error toast and redirects to
// the list.
func (n *Navigator) Resolve(fragment string) Resolution {
	route := Parse(fragment)

	switch route.View {
	case ViewCreate:
		return Resolution{Route: route, Form: subscriptions.NewForm()}
	case ViewEdit:
		sub, err := n.subs.Get(route.SubscriptionID)
		if err != nil {
			n.notify.Error("Subscription not found")
			return Resolution{Route: Route{View: ViewList}, Redirect: ListFragment}
		}
		return Resolution{Route: route, Form: subscriptions.FormFromSubscription(sub)}
	default:
		return Resolution{Route: route}
	}
}
