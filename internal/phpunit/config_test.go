package phpunit

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		xml      string
		expected ParsedConfiguration
	}{
		{
			name: "full configuration",
			xml: `<?xml version="1.0" encoding="UTF-8"?>
<phpunit cacheResultFile="custom/out.cache">
  <coverage cacheDirectory="coverage"/>
  <testsuites>
    <testsuite name="Unit" directory="tests"/>
  </testsuites>
</phpunit>`,
			expected: ParsedConfiguration{
				CacheResultFile:        "custom/out.cache",
				CoverageCacheDirectory: "coverage",
				SuiteName:              "Unit",
				SuiteDirectory:         "tests",
			},
		},
		{
			name:     "minimal configuration",
			xml:      `<phpunit/>`,
			expected: ParsedConfiguration{},
		},
		{
			name: "coverage without cache directory",
			xml: `<phpunit>
  <coverage/>
  <testsuites>
    <testsuite name="Unit"/>
  </testsuites>
</phpunit>`,
			expected: ParsedConfiguration{SuiteName: "Unit"},
		},
		{
			name: "first testsuite wins",
			xml: `<phpunit>
  <testsuites>
    <testsuite name="Unit" directory="tests/unit"/>
    <testsuite name="Integration" directory="tests/integration"/>
  </testsuites>
</phpunit>`,
			expected: ParsedConfiguration{SuiteName: "Unit", SuiteDirectory: "tests/unit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.xml), "phpunit.xml")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *cfg != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, *cfg)
			}
		})
	}
}

func TestParse_MalformedXML(t *testing.T) {
	_, err := Parse([]byte(`<phpunit><testsuites></phpunit>`), "apps/api/phpunit.xml")
	if err == nil {
		t.Fatal("expected error for malformed XML")
	}

	var parseErr *ConfigParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ConfigParseError, got %T", err)
	}
	if parseErr.Path != "apps/api/phpunit.xml" {
		t.Errorf("expected offending path in error, got %s", parseErr.Path)
	}
}
