package keys

import (
	"testing"
)

func TestQRCode(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		size    int
		wantErr bool
	}{
		{name: "Default Size", key: "9384756102837461", size: 0, wantErr: false},
		{name: "Valid Size", key: "9384756102837461", size: 512, wantErr: false},
		{name: "Size Too Small", key: "9384756102837461", size: 100, wantErr: true},
		{name: "Size Too Large", key: "9384756102837461", size: 5000, wantErr: true},
		{name: "Empty Key", key: "", size: 256, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QRCode(tt.key, tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("QRCode() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && len(got) == 0 {
				t.Errorf("QRCode() returned empty bytes")
			}
		})
	}
}
