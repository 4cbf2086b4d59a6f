// Package embed generates Go source files that register Fluent resources
// with the static registry at init() time, so a binary can ship its
// translations baked in rather than reading them from disk.
package embed

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rs/zerolog/log"
)

// Generate walks localesDir for "*.ftl" files, grouping them by the name of
// their immediate parent directory (the locale), and writes one generated
// Go source file per locale into outDir. It returns the paths written.
func Generate(localesDir, outDir, pkg string) ([]string, error) {
	localesDir, err := filepath.Abs(localesDir)
	if err != nil {
		return nil, fmt.Errorf("resolve locales dir: %w", err)
	}

	info, err := os.Stat(localesDir)
	if err != nil {
		return nil, fmt.Errorf("stat locales dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("locales dir is not a directory: %s", localesDir)
	}

	resources := map[string][]resource{}

	err = filepath.Walk(localesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("error walking locales directory")
			return nil
		}
		if info.IsDir() || strings.ToLower(filepath.Ext(path)) != ".ftl" {
			return nil
		}

		locale := filepath.Base(filepath.Dir(path))

		content, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not read resource")
			return nil
		}

		resources[locale] = append(resources[locale], resource{
			SourceFile: path,
			Content:    string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk locales dir: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for locale, entries := range resources {
		path, err := writeLocale(outDir, pkg, locale, entries)
		if err != nil {
			return written, fmt.Errorf("generate locale %q: %w", locale, err)
		}
		written = append(written, path)
	}

	return written, nil
}

type resource struct {
	SourceFile string
	Content    string
}

var fileTemplate = template.Must(template.New("embedded").Parse(`// Code generated by fluentembed. DO NOT EDIT.

package {{ .Package }}

import (
	"github.com/arafato/fluentgo/fluent"
	"golang.org/x/text/language"
)

func init() {
	locale := language.MustParse({{ printf "%q" .Locale }})
{{ range .Resources }}
	if errs := fluent.AddStaticResource(locale, {{ printf "%q" .Content }}); len(errs) > 0 {
		panic(errs[0])
	}
{{- end }}
}
`))

func writeLocale(outDir, pkg, locale string, entries []resource) (string, error) {
	var buf bytes.Buffer
	err := fileTemplate.Execute(&buf, struct {
		Package   string
		Locale    string
		Resources []resource
	}{
		Package:   pkg,
		Locale:    locale,
		Resources: entries,
	})
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("format generated source: %w", err)
	}

	outPath := filepath.Join(outDir, fmt.Sprintf("%s.gen.go", locale))
	if err := os.WriteFile(outPath, formatted, 0o644); err != nil {
		return "", fmt.Errorf("write generated file: %w", err)
	}

	return outPath, nil
}
