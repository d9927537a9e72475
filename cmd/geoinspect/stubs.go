package main

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/shashiranjanraj/geoinspect/config"
)

//go:embed stubs/*.stub
var defaultStubs embed.FS

var stubFuncs = template.FuncMap{
	"quote": strconv.Quote,
}

// renderStub locates the stub (user override first, embedded fallback),
// executes it with data and gofmts the result.
func renderStub(stubName string, data any) ([]byte, error) {
	var stubContent []byte
	var err error

	// 1. Try to load user override from the stub directory
	userPath := filepath.Join(config.StubDir(), stubName+".stub")
	if _, errStat := os.Stat(userPath); errStat == nil {
		stubContent, err = os.ReadFile(userPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read user stub %s: %v", userPath, err)
		}
	} else {
		// 2. Fallback to embedded stub
		stubContent, err = defaultStubs.ReadFile("stubs/" + stubName + ".stub")
		if err != nil {
			return nil, fmt.Errorf("embedded stub not found: %s", stubName)
		}
	}

	// 3. Compile as Go template
	t, err := template.New(stubName).Funcs(stubFuncs).Parse(string(stubContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %v", stubName, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %v", stubName, err)
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format %s output: %v", stubName, err)
	}
	return out, nil
}
