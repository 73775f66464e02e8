package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Name  string `validate:"required" json:"name"`
	Days  int    `validate:"min=1,max=365"`
	Rate  string `validate:"limiter_rate"`
	Site  string `validate:"omitempty,url"`
	Other int    `validate:"oneof=1 2"`
}

func TestStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       sample
		wantErr  bool
		contains []string
	}{
		{
			name: "valid",
			in:   sample{Name: "x", Days: 30, Rate: "60-M", Other: 1},
		},
		{
			name:     "missing required",
			in:       sample{Days: 30, Rate: "60-M", Other: 1},
			wantErr:  true,
			contains: []string{"Name is required"},
		},
		{
			name:     "out of range and bad rate",
			in:       sample{Name: "x", Days: 400, Rate: "often", Other: 1},
			wantErr:  true,
			contains: []string{"Days must be at most 365", `Rate must be a rate like 60-M or 5-S (got "often")`},
		},
		{
			name:     "bad url and unknown tag",
			in:       sample{Name: "x", Days: 1, Rate: "5-S", Site: "not a url", Other: 7},
			wantErr:  true,
			contains: []string{"Site must be a valid URL", "Other failed oneof validation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Struct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, c := range tt.contains {
				if !strings.Contains(err.Error(), c) {
					t.Errorf("Expected error to contain %q, got %q", c, err.Error())
				}
			}
		})
	}
}

func TestStruct_QueryTagName(t *testing.T) {
	t.Parallel()

	type params struct {
		Weeks int `query:"weeks" validate:"min=1,max=104"`
	}

	err := Struct(params{Weeks: 0})
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if got, want := err.Error(), "weeks must be at least 1"; got != want {
		t.Errorf("Struct() error = %q, want %q", got, want)
	}
}
