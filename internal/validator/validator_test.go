package validator

import (
	"testing"
)

func TestIsValid(t *testing.T) {
	v := New(nil)

	tests := []struct {
		name      string
		text      string
		lang      string
		wantValid bool
		wantErr   bool
	}{
		{"empty lang accepts anything", "Some translated text", "", true, false},
		{"empty text", "", "en", false, true},
		{"whitespace only", "   ", "en", false, true},
		{"short text skips detection", "Xin chào", "en", true, false},
		{"english as english", "This is a longer sentence that should be detected as English.", "en", true, false},
		{"case insensitive lang", "This is a longer sentence that should be detected as English.", "EN", true, false},
		{"vietnamese as vietnamese", "Hôm nay trời rất đẹp và chúng tôi đi dạo trong công viên.", "vi", true, false},
		{"vietnamese expected english", "Hôm nay trời rất đẹp và chúng tôi đi dạo trong công viên.", "en", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := v.IsValid(tt.text, tt.lang)
			if valid != tt.wantValid {
				t.Errorf("IsValid(%q, %q) = %v, want %v", tt.text, tt.lang, valid, tt.wantValid)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("IsValid(%q, %q) error = %v, wantErr %v", tt.text, tt.lang, err, tt.wantErr)
			}
		})
	}
}
