package upload

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		wantErr bool
	}{
		{"valid", New("positions.csv", []byte("data"), KindPositions), false},
		{"missing name", New("", []byte("data"), KindPositions), true},
		{"empty content", New("positions.csv", nil, KindPositions), true},
		{"zero-length content", New("positions.csv", []byte{}, KindBudgets), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.file.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
