package stats

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  Classification
	}{
		{"Eve - Done", Classification{Owner: OwnerEve, Done: true}},
		{"EVE DONE", Classification{Owner: OwnerEve, Done: true}},
		{"Dima Today", Classification{Owner: OwnerDima, Pending: true}},
		{"dima this week", Classification{Owner: OwnerDima, Pending: true}},
		{"Backlog", Classification{Owner: OwnerUnknown}},
		{"Done", Classification{Owner: OwnerUnknown, Done: true}},
		// both owners: first check wins
		{"Eve & Dima Done", Classification{Owner: OwnerEve, Done: true}},
		// done and pending are independent
		{"Eve done this week", Classification{Owner: OwnerEve, Done: true, Pending: true}},
		// substring matching is literal; "Steven" contains "eve"
		{"Steven Today", Classification{Owner: OwnerEve, Pending: true}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.label); got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.label, got, tt.want)
			}
		})
	}
}
