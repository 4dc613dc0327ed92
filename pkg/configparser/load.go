package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrNoFilePath   = errors.New("no file path provided")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrMalformed    = errors.New("malformed line")
)

// LineError points at the YAML line that could not be applied.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// LoadYamlFile flattens a YAML file into environment variables
// (section: key: -> SECTION_KEY). Variables that are already set win.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}
	defer file.Close()

	entries, err := flattenYaml(file)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath, err)
	}

	for _, e := range entries {
		if os.Getenv(e.key) != "" {
			continue
		}
		if err := os.Setenv(e.key, e.value); err != nil {
			return fmt.Errorf("%s: %w", filepath, &LineError{Line: e.line, Err: err})
		}
	}
	return nil
}

type yamlEntry struct {
	key   string
	value string
	line  int
}

type yamlSection struct {
	indent int
	name   string
}

// flattenYaml reads the supported subset: nested mappings of scalars,
// comments and ${VAR:-default} values. Keys are returned in file order.
func flattenYaml(r io.Reader) ([]yamlEntry, error) {
	var (
		entries  []yamlEntry
		sections []yamlSection
		seen     = make(map[string]int)
		lineNo   int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		content := strings.TrimSpace(raw)
		if content == "" || strings.HasPrefix(content, "#") {
			continue
		}
		if strings.HasPrefix(raw, "\t") {
			return nil, &LineError{Line: lineNo, Err: fmt.Errorf("%w: tab indentation", ErrMalformed)}
		}

		indent := len(raw) - len(strings.TrimLeft(raw, " "))
		for len(sections) > 0 && sections[len(sections)-1].indent >= indent {
			sections = sections[:len(sections)-1]
		}

		key, value, ok := strings.Cut(content, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &LineError{Line: lineNo, Err: fmt.Errorf("%w: %q", ErrMalformed, content)}
		}

		fullKey := envName(sections, key)
		if first, dup := seen[fullKey]; dup {
			return nil, &LineError{Line: lineNo, Err: fmt.Errorf("%w %s (first defined on line %d)", ErrDuplicateKey, fullKey, first)}
		}
		seen[fullKey] = lineNo

		value = strings.TrimSpace(value)
		if value == "" {
			sections = append(sections, yamlSection{indent: indent, name: key})
			continue
		}

		entries = append(entries, yamlEntry{key: fullKey, value: expand(unquote(value)), line: lineNo})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading YAML file: %w", err)
	}
	return entries, nil
}

func envName(sections []yamlSection, key string) string {
	parts := make([]string, 0, len(sections)+1)
	for _, s := range sections {
		parts = append(parts, s.name)
	}
	return strings.ToUpper(strings.Join(append(parts, key), "_"))
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// expand resolves ${VAR:-default}. Anything else is returned as is.
func expand(v string) string {
	if !strings.HasPrefix(v, "${") || !strings.HasSuffix(v, "}") {
		return v
	}
	name, def, ok := strings.Cut(v[2:len(v)-1], ":-")
	if !ok {
		return v
	}
	if env := os.Getenv(strings.TrimSpace(name)); env != "" {
		return env
	}
	return strings.TrimSpace(def)
}
