// Package glsl prepares shader source text before it is handed to the driver.
package glsl

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	metaPattern    = regexp.MustCompile(`(?m)^//meta:(\w+)(.+)$`)
	definePattern  = regexp.MustCompile(`(?m)^[ \t]*(//)?[ \t]*#define ([\w\d]+)[ \t]*(.*)$`)
	versionPattern = regexp.MustCompile(`(?m)^[ \t]*#version.+$`)
)

var ErrNoVersion = errors.New("shader source has no #version directive")

type define struct {
	marker  string
	name    string
	value   string
	boolean bool
}

// Template is a parsed shader source whose #define directives can be overridden per compilation.
type Template struct {
	Name       string
	source     string
	defines    map[string]define
	versionEnd int
}

// Parse reads //meta: headers and #define lines. A commented out boolean define
// such as "// #define FOO" is treated as FOO=false.
func Parse(source string) (*Template, error) {
	t := &Template{Name: "untitled"}

	for _, match := range metaPattern.FindAllStringSubmatch(source, -1) {
		if strings.EqualFold(match[1], "name") {
			t.Name = strings.TrimSpace(match[2])
		}
	}

	matches := definePattern.FindAllStringSubmatch(source, -1)
	t.defines = make(map[string]define, len(matches))
	markers := make(map[string]string, len(matches))
	for i, match := range matches {
		value := strings.TrimSpace(match[3])
		boolean := value == ""
		if boolean && match[1] == "//" {
			value = "false"
		}
		marker := fmt.Sprintf("$def_%d$", i)
		t.defines[strings.ToLower(match[2])] = define{
			marker:  marker,
			name:    match[2],
			value:   value,
			boolean: boolean,
		}
		markers[match[0]] = marker
	}
	source = definePattern.ReplaceAllStringFunc(source, func(s string) string {
		return markers[s]
	})

	loc := versionPattern.FindStringIndex(source)
	if loc == nil {
		return nil, fmt.Errorf("%v: %w", t.Name, ErrNoVersion)
	}
	t.versionEnd = loc[1]
	t.source = source
	return t, nil
}

// Expand produces the final source. Known defines take the override value, unknown
// ones are inserted right after #version. Boolean defines are disabled by "false".
func (t *Template) Expand(overrides map[string]string) string {
	source := t.source
	applied := map[string]bool{}

	var extra strings.Builder
	for n, v := range overrides {
		def, ok := t.defines[strings.ToLower(n)]
		if !ok {
			fmt.Fprintf(&extra, "\n#define %v %v", n, v)
			continue
		}
		source = strings.Replace(source, def.marker, def.directive(v), 1)
		applied[def.marker] = true
	}
	for _, def := range t.defines {
		if applied[def.marker] {
			continue
		}
		source = strings.Replace(source, def.marker, def.directive(def.value), 1)
	}
	return source[:t.versionEnd] + extra.String() + source[t.versionEnd:]
}

func (d define) directive(value string) string {
	if !d.boolean {
		return fmt.Sprintf("#define %v %v", d.name, value)
	}
	if value == "false" {
		return "// #define " + d.name
	}
	return "#define " + d.name
}
