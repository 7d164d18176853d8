package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every `env` tag when reading environment variables.
const EnvPrefix = "OPENLOGGER_"

// LoadConfig loads configuration with proper precedence: CLI args > env vars > config file.
// If cmd is provided, flags explicitly set via CLI will not be overwritten.
// The config file path is read from a string field named Config.
func LoadConfig(opts any, cmd *cobra.Command) error {
	v := reflect.ValueOf(opts).Elem()
	changed := changedFlags(cmd)

	var configPath string
	if f := v.FieldByName("Config"); f.IsValid() && f.Kind() == reflect.String {
		configPath = f.String()
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := applyFile(v, configPath, data, changed); err != nil {
				return err
			}
		case !os.IsNotExist(err):
			return fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	applyEnv(v, changed)
	return nil
}

// Reload re-applies the config file and environment on top of base and returns
// the result. Flags changed on cmd keep their values. Unlike LoadConfig a
// missing file is an error.
func Reload[T any](path string, base T, cmd *cobra.Command) (T, error) {
	out := base
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	v := reflect.ValueOf(&out).Elem()
	changed := changedFlags(cmd)
	if err := applyFile(v, path, data, changed); err != nil {
		return base, err
	}
	applyEnv(v, changed)
	return out, nil
}

func changedFlags(cmd *cobra.Command) map[string]bool {
	changed := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				changed[f.Name] = true
			}
		})
	}
	return changed
}

// decode parses TOML or YAML depending on the file extension.
func decode(path string, data []byte) (map[string]any, error) {
	var config map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	}
	return config, nil
}

func applyFile(v reflect.Value, path string, data []byte, changed map[string]bool) error {
	config, err := decode(path, data)
	if err != nil {
		return err
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fieldType := t.Field(i)
		if changed[fieldNameToFlag(fieldType.Name)] {
			continue
		}
		if tomlPath := fieldType.Tag.Get("toml"); tomlPath != "" {
			if value := getNestedValue(config, tomlPath); value != nil {
				setFieldValue(v.Field(i), value)
			}
		}
	}
	return nil
}

func applyEnv(v reflect.Value, changed map[string]bool) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fieldType := t.Field(i)
		if changed[fieldNameToFlag(fieldType.Name)] {
			continue
		}
		if envKey := fieldType.Tag.Get("env"); envKey != "" {
			if envValue, ok := os.LookupEnv(EnvPrefix + envKey); ok {
				setFieldValueFromString(v.Field(i), envValue)
			}
		}
	}
}

// fieldNameToFlag converts a struct field name to a CLI flag name.
// Example: "LoggingLevel" -> "logging-level", "Port" -> "port".
func fieldNameToFlag(fieldName string) string {
	var result []rune
	for i, r := range fieldName {
		if i > 0 && unicode.IsUpper(r) {
			result = append(result, '-')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

// getNestedValue retrieves a value from nested map using dot notation.
func getNestedValue(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data

	for i, part := range parts {
		if i == len(parts)-1 {
			return current[part]
		}
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			return nil
		}
	}
	return nil
}

// setFieldValue sets a field value using reflection.
// Scalars are coerced to strings for string fields so `level = 3` or
// `filename = false` behave like their quoted forms.
func setFieldValue(field reflect.Value, value any) {
	if !field.CanSet() {
		return
	}

	switch field.Kind() {
	case reflect.String:
		switch s := value.(type) {
		case string:
			field.SetString(s)
		case bool, int, int64, float64, uint64:
			field.SetString(fmt.Sprint(s))
		}
	case reflect.Bool:
		switch b := value.(type) {
		case bool:
			field.SetBool(b)
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				field.SetBool(parsed)
			}
		}
	case reflect.Int:
		switch i := value.(type) {
		case int64:
			field.SetInt(i)
		case int:
			field.SetInt(int64(i))
		case uint64:
			field.SetInt(int64(i))
		case float64:
			field.SetInt(int64(i))
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			if arr, ok := value.([]any); ok {
				slice := make([]string, len(arr))
				for i, v := range arr {
					if s, strOk := v.(string); strOk {
						slice[i] = s
					}
				}
				field.Set(reflect.ValueOf(slice))
			}
		}
	}
}

// setFieldValueFromString sets a field value from string (for env vars).
func setFieldValueFromString(field reflect.Value, value string) {
	if !field.CanSet() {
		return
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		if b, err := strconv.ParseBool(value); err == nil {
			field.SetBool(b)
		}
	case reflect.Int:
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			field.SetInt(i)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			slice := make([]string, len(parts))
			for i, part := range parts {
				slice[i] = strings.TrimSpace(part)
			}
			field.Set(reflect.ValueOf(slice))
		}
	}
}
