package discovery

import (
	"errors"
	"reflect"
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	paths := []string{
		"apps/api/phpunit.xml",
		"apps/billing/phpunit.xml",
		"libs/shared/phpunit.xml",
	}

	filter := NewFilter()

	tests := []struct {
		name     string
		input    []string
		pattern  string
		expected []string
	}{
		{
			name:     "empty pattern keeps everything",
			input:    paths,
			pattern:  "",
			expected: paths,
		},
		{
			name:     "wildcard pattern matches base name",
			input:    []string{"tests/UserTest.php", "tests/PaymentTest.php", "tests/helper.php"},
			pattern:  "*Test.php",
			expected: []string{"tests/UserTest.php", "tests/PaymentTest.php"},
		},
		{
			name:     "plain pattern matches anywhere in the path",
			input:    []string{"apps/api/phpunit.xml", "apps/billing/phpunit.xml"},
			pattern:  "billing",
			expected: []string{"apps/billing/phpunit.xml"},
		},
		{
			name:     "no matches yields empty",
			input:    paths,
			pattern:  "*.json",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := filter.FilterByName(tt.input, tt.pattern)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}

	t.Run("invalid pattern fails with PatternMatchError", func(t *testing.T) {
		_, err := filter.FilterByName(paths, "[oops")
		var patternErr *PatternMatchError
		if !errors.As(err, &patternErr) {
			t.Fatalf("expected PatternMatchError, got %v", err)
		}
	})
}
