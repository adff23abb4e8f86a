package validator

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func TestHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "https", value: "https://client.com/webhook", wantErr: false},
		{name: "http", value: "http://localhost:9000", wantErr: false},
		{name: "empty passes", value: "", wantErr: false},
		{name: "scheme only", value: "https://", wantErr: true},
		{name: "ftp", value: "ftp://client.com", wantErr: true},
		{name: "no scheme", value: "client.com/webhook", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, HTTPURL)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestIsHTTPURL(t *testing.T) {
	if !IsHTTPURL("https://a") {
		t.Error("expected https://a to match")
	}
	if IsHTTPURL("mailto:a@b.c") {
		t.Error("expected mailto to be rejected")
	}
}
