package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

type AuthType string

const (
	AuthTypeBasic AuthType = "BasicAuth"
	AuthTypeOAuth AuthType = "OAuth"
)

func (t AuthType) Label() string {
	switch t {
	case AuthTypeBasic:
		return "Basic Auth"
	case AuthTypeOAuth:
		return "OAuth"
	default:
		return string(t)
	}
}

type EventType string

const (
	EventGeneralReport EventType = "GeneralReport"
	EventSpecialReport EventType = "SpecialReport"
	EventBoth          EventType = "Both"
)

// Credentials is either BasicAuthCredentials or OAuthCredentials.
type Credentials interface {
	AuthType() AuthType
}

type BasicAuthCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (BasicAuthCredentials) AuthType() AuthType { return AuthTypeBasic }

type OAuthCredentials struct {
	ClientID      string `json:"client_id"`
	ClientSecret  string `json:"client_secret"`
	TokenEndpoint string `json:"token_endpoint"`
}

func (OAuthCredentials) AuthType() AuthType { return AuthTypeOAuth }

type Subscription struct {
	ID              string      `json:"id"`
	ClientName      string      `json:"client_name"`
	WebhookURL      string      `json:"webhook_url"`
	AuthType        AuthType    `json:"auth_type"`
	AuthCredentials Credentials `json:"auth_credentials"`
	EventTypes      []EventType `json:"event_types"`
	PrivateKey      string      `json:"private_key"`
	CreatedAt       int64       `json:"created_at"`
	UpdatedAt       int64       `json:"updated_at"`
}

// SubscriptionFormData is the submitted payload of the subscription form.
type SubscriptionFormData struct {
	ClientName      string
	WebhookURL      string
	AuthType        AuthType
	AuthCredentials Credentials
	EventTypes      []EventType
}

// Clone returns a copy that shares no mutable state with s.
func (s Subscription) Clone() Subscription {
	c := s
	if s.EventTypes != nil {
		c.EventTypes = append([]EventType(nil), s.EventTypes...)
	}
	return c
}

func (s *Subscription) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID              string          `json:"id"`
		ClientName      string          `json:"client_name"`
		WebhookURL      string          `json:"webhook_url"`
		AuthType        AuthType        `json:"auth_type"`
		AuthCredentials json.RawMessage `json:"auth_credentials"`
		EventTypes      []EventType     `json:"event_types"`
		PrivateKey      string          `json:"private_key"`
		CreatedAt       int64           `json:"created_at"`
		UpdatedAt       int64           `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	creds, err := DecodeCredentials(wire.AuthType, wire.AuthCredentials)
	if err != nil {
		return err
	}

	*s = Subscription{
		ID:              wire.ID,
		ClientName:      wire.ClientName,
		WebhookURL:      wire.WebhookURL,
		AuthType:        wire.AuthType,
		AuthCredentials: creds,
		EventTypes:      wire.EventTypes,
		PrivateKey:      wire.PrivateKey,
		CreatedAt:       wire.CreatedAt,
		UpdatedAt:       wire.UpdatedAt,
	}
	return nil
}

// DecodeCredentials decodes raw into the credential shape of authType.
func DecodeCredentials(authType AuthType, raw []byte) (Credentials, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	switch authType {
	case AuthTypeBasic:
		var c BasicAuthCredentials
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case AuthTypeOAuth:
		var c OAuthCredentials
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown auth type %q", authType)
	}
}
