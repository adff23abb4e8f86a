package subscriptions

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"hookdesk/internal/pkg/validator"
	"hookdesk/internal/platform/models"
)

var ErrValidation = errors.New("validation failed")

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string { return e.Fields.Error() }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for field, err := range e.Fields {
		out[field] = err.Error()
	}
	return out
}

// Form is the editable state behind the subscription form. Both credential
// groups live side by side; AuthType decides which one is required and
// which one Data emits.
type Form struct {
	ClientName    string             `json:"client_name"`
	WebhookURL    string             `json:"webhook_url"`
	AuthType      models.AuthType    `json:"auth_type"`
	Username      string             `json:"username"`
	Password      string             `json:"password"`
	ClientID      string             `json:"client_id"`
	ClientSecret  string             `json:"client_secret"`
	TokenEndpoint string             `json:"token_endpoint"`
	EventTypes    []models.EventType `json:"event_types"`
}

func NewForm() *Form {
	return &Form{
		AuthType:   models.AuthTypeBasic,
		EventTypes: []models.EventType{},
	}
}

// FormFromSubscription populates a form for editing sub.
func FormFromSubscription(sub models.Subscription) *Form {
	f := &Form{
		ClientName: sub.ClientName,
		WebhookURL: sub.WebhookURL,
		AuthType:   sub.AuthType,
		EventTypes: append([]models.EventType{}, sub.EventTypes...),
	}

	switch c := sub.AuthCredentials.(type) {
	case models.BasicAuthCredentials:
		f.Username, f.Password = c.Username, c.Password
	case models.OAuthCredentials:
		f.ClientID, f.ClientSecret, f.TokenEndpoint = c.ClientID, c.ClientSecret, c.TokenEndpoint
	}
	return f
}

// SetAuthType switches the required credential group. Values typed for the
// other group stay in the form and are dropped by Data.
func (f *Form) SetAuthType(t models.AuthType) {
	f.AuthType = t
}

func (f *Form) ToggleEventType(value models.EventType) {
	f.EventTypes = ToggleEventType(f.EventTypes, value)
}

func (f *Form) Reset() {
	*f = *NewForm()
}

func (f *Form) Validate() error {
	basic := f.AuthType == models.AuthTypeBasic
	oauth := f.AuthType == models.AuthTypeOAuth

	err := validation.ValidateStruct(f,
		validation.Field(&f.ClientName, validation.Required, validation.RuneLength(2, 0)),
		validation.Field(&f.WebhookURL, validation.Required, validator.HTTPURL),
		validation.Field(&f.AuthType, validation.Required, validation.In(models.AuthTypeBasic, models.AuthTypeOAuth)),
		validation.Field(&f.Username, validation.When(basic, validation.Required)),
		validation.Field(&f.Password, validation.When(basic, validation.Required)),
		validation.Field(&f.ClientID, validation.When(oauth, validation.Required)),
		validation.Field(&f.ClientSecret, validation.When(oauth, validation.Required)),
		validation.Field(&f.TokenEndpoint, validation.When(oauth, validation.Required, validator.HTTPURL)),
		validation.Field(&f.EventTypes,
			validation.Required,
			validation.Each(validation.In(knownEventTypes...)),
			validation.By(exclusiveBoth),
		),
	)

	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}

// Data validates the form and extracts the payload for the current auth
// type only.
func (f *Form) Data() (models.SubscriptionFormData, error) {
	if err := f.Validate(); err != nil {
		return models.SubscriptionFormData{}, err
	}

	var creds models.Credentials
	if f.AuthType == models.AuthTypeBasic {
		creds = models.BasicAuthCredentials{Username: f.Username, Password: f.Password}
	} else {
		creds = models.OAuthCredentials{
			ClientID:      f.ClientID,
			ClientSecret:  f.ClientSecret,
			TokenEndpoint: f.TokenEndpoint,
		}
	}

	return models.SubscriptionFormData{
		ClientName:      f.ClientName,
		WebhookURL:      f.WebhookURL,
		AuthType:        f.AuthType,
		AuthCredentials: creds,
		EventTypes:      append([]models.EventType(nil), f.EventTypes...),
	}, nil
}

// RequiredFields lists the JSON names of the fields the current auth type
// requires.
func (f *Form) RequiredFields() []string {
	fields := []string{"client_name", "webhook_url", "auth_type"}
	switch f.AuthType {
	case models.AuthTypeBasic:
		fields = append(fields, "username", "password")
	case models.AuthTypeOAuth:
		fields = append(fields, "client_id", "client_secret", "token_endpoint")
	}
	return append(fields, "event_types")
}
