package sorter

import (
	"fmt"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"rowkit/internal/record"
)

// ScriptStrategy is a Strategy whose ordering comes from a user-supplied Go
// snippet interpreted at runtime. The snippet must define:
//
//	func Less(a, b map[string]any) bool
//
// Interpreting instead of compiling keeps custom orderings dependency-free
// and avoids shelling out to the toolchain. Imports are restricted to a
// small stdlib whitelist; anything touching the filesystem, network, or
// process is rejected before evaluation.
type ScriptStrategy struct {
	source string
	less   func(map[string]any, map[string]any) bool
}

// Allowed imports for strategy snippets.
var scriptAllowedImports = map[string]bool{
	"strings": true,
	"strconv": true,
	"fmt":     true,
	"math":    true,
	"sort":    true,
	"time":    true,
	"regexp":  true,
}

// CompileScript validates and evaluates a strategy snippet.
func CompileScript(source string) (*ScriptStrategy, error) {
	if err := validateScriptImports(source); err != nil {
		return nil, err
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("script: load stdlib: %w", err)
	}

	code := source
	if !strings.Contains(code, "package ") {
		code = "package main\n\n" + code
	}
	if _, err := i.Eval(code); err != nil {
		return nil, fmt.Errorf("script: evaluation failed: %w", err)
	}

	v, err := i.Eval("main.Less")
	if err != nil {
		return nil, fmt.Errorf("script: Less function not found: %w", err)
	}
	less, ok := v.Interface().(func(map[string]any, map[string]any) bool)
	if !ok {
		return nil, fmt.Errorf("script: Less has wrong signature (want func(a, b map[string]any) bool)")
	}

	return &ScriptStrategy{source: source, less: less}, nil
}

func (s *ScriptStrategy) Name() string { return "script" }

func (s *ScriptStrategy) Less(a, b record.Record) bool {
	return s.less(map[string]any(a), map[string]any(b))
}

// validateScriptImports rejects snippets importing anything outside the
// whitelist, before any code runs.
func validateScriptImports(source string) error {
	var imports []string
	inBlock := false
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
		case inBlock && strings.HasPrefix(trimmed, ")"):
			inBlock = false
		case inBlock:
			imports = append(imports, strings.Trim(trimmed, `"`))
		case strings.HasPrefix(trimmed, "import "):
			imports = append(imports, strings.Trim(strings.TrimPrefix(trimmed, "import "), `"`))
		}
	}

	var forbidden []string
	for _, pkg := range imports {
		if pkg == "" {
			continue
		}
		if !scriptAllowedImports[pkg] {
			forbidden = append(forbidden, pkg)
		}
	}
	if len(forbidden) > 0 {
		return fmt.Errorf("script: forbidden imports: %s", strings.Join(forbidden, ", "))
	}
	return nil
}
