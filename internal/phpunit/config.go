// Package phpunit reads the declarative PHPUnit configuration file
// (phpunit.xml) into the structured view target inference works from.
package phpunit

import (
	"encoding/xml"
	"fmt"
	"os"
)

// ParsedConfiguration is the structured view of a phpunit.xml file. Only
// the shape needed for target inference is extracted; empty strings mean
// the attribute was absent.
type ParsedConfiguration struct {
	CacheResultFile        string // root cacheResultFile attribute
	CoverageCacheDirectory string // coverage element cacheDirectory attribute
	SuiteName              string // first testsuite name
	SuiteDirectory         string // first testsuite directory, empty defaults to project root
}

// ConfigParseError reports a phpunit.xml file that is not well-formed XML.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parse phpunit config %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

type document struct {
	XMLName         xml.Name      `xml:"phpunit"`
	CacheResultFile string        `xml:"cacheResultFile,attr"`
	Coverage        *coverageNode `xml:"coverage"`
	TestSuites      suitesNode    `xml:"testsuites"`
}

type coverageNode struct {
	CacheDirectory string `xml:"cacheDirectory,attr"`
}

type suitesNode struct {
	Suites []suiteNode `xml:"testsuite"`
}

type suiteNode struct {
	Name      string `xml:"name,attr"`
	Directory string `xml:"directory,attr"`
}

// ReadConfig loads and parses the phpunit.xml at path.
func ReadConfig(path string) (*ParsedConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read phpunit config: %w", err)
	}
	return Parse(data, path)
}

// Parse parses phpunit.xml content. Missing optional attributes are left
// empty, never treated as errors; only malformed XML fails. When the file
// declares several testsuites the first one wins.
func Parse(data []byte, path string) (*ParsedConfiguration, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigParseError{Path: path, Err: err}
	}

	cfg := &ParsedConfiguration{CacheResultFile: doc.CacheResultFile}
	if doc.Coverage != nil {
		cfg.CoverageCacheDirectory = doc.Coverage.CacheDirectory
	}
	if len(doc.TestSuites.Suites) > 0 {
		cfg.SuiteName = doc.TestSuites.Suites[0].Name
		cfg.SuiteDirectory = doc.TestSuites.Suites[0].Directory
	}
	return cfg, nil
}
