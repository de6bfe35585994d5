package driver

import "testing"

type stubCarrier struct{ name string }

func (c stubCarrier) Extract(p []byte) (string, string, error) { return "", c.name, nil }
func (c stubCarrier) Embed(p []byte, text string, keywords []string) ([]byte, error) {
	return p, nil
}
func (c stubCarrier) Strip(p []byte) ([]byte, error) { return p, nil }

func TestLookup(t *testing.T) {
	RegisterCarrierFormat("stub", "STUB", stubCarrier{name: "stub"})
	RegisterCarrierFormat("wild", "WI??D!", stubCarrier{name: "wild"})

	tests := []struct {
		prefix string
		want   string
	}{
		{"STUBdata follows", "stub"},
		{"WIxxD!data", "wild"},
		{"WIxxDx", ""},
		{"STU", ""}, // shorter than magic
		{"", ""},
	}

	for _, tt := range tests {
		c, name := Lookup([]byte(tt.prefix))
		if name != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.prefix, name, tt.want)
		}
		if (c == nil) != (tt.want == "") {
			t.Errorf("Lookup(%q) carrier nil-ness mismatch", tt.prefix)
		}
	}

	if PeekLen() < len("WI??D!") {
		t.Errorf("PeekLen() = %d, want at least %d", PeekLen(), len("WI??D!"))
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration did not panic")
		}
	}()
	RegisterCarrierFormat("dup", "A", stubCarrier{})
	RegisterCarrierFormat("dup", "B", stubCarrier{})
}
