package source

import (
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
		ok   bool
	}{
		{"plain", []byte("data T : Type0 { }"), "data T : Type0 { }", true},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "x"...), "x", true},
		{"utf-16le bom", []byte{0xFF, 0xFE, 'x', 0, 'y', 0}, "xy", true},
		{"utf-16be bom", []byte{0xFE, 0xFF, 0, 'x', 0, 'y'}, "xy", true},
		{"non-ascii", []byte("λ → α"), "λ → α", true},
		{"invalid", []byte{'a', 0xC3, 0x28}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode("test.narc", tt.data)
			if !tt.ok {
				if err == nil {
					t.Errorf("decoded %q, want an error", f.Text)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if f.Text != tt.want {
				t.Errorf("got %q, want %q", f.Text, tt.want)
			}
		})
	}
}
