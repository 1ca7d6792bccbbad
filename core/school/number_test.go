package school

import (
	"encoding/json"
	"testing"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    float64
		wantErr bool
	}{
		{name: "integer", data: `12`, want: 12},
		{name: "float", data: `8.5`, want: 8.5},
		{name: "quoted integer", data: `"12"`, want: 12},
		{name: "quoted float", data: `"8.5"`, want: 8.5},
		{name: "empty string", data: `""`, wantErr: true},
		{name: "non-numeric string", data: `"twelve"`, wantErr: true},
		{name: "bool", data: `true`, wantErr: true},
		{name: "null", data: `null`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			err := json.Unmarshal([]byte(tt.data), &n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && n.Float64() != tt.want {
				t.Errorf("Unmarshal() = %v, want %v", n.Float64(), tt.want)
			}
		})
	}
}

func TestNumber_Int(t *testing.T) {
	if got := Number(11.9).Int(); got != 11 {
		t.Errorf("Int() = %v, want 11", got)
	}
}
