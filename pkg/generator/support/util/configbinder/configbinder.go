// Package configbinder binds loosely typed key/value maps (form posts, stored options)
// onto typed structs.
package configbinder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// BindProperties binds a map of properties to a target struct using mapstructure.
// It uses the "yaml" tag for binding and allows weakly typed input (e.g., string to int conversion).
// Checkbox style values ("yes", "no", "on", "off") are accepted for bool fields.
//
// Parameters:
//
//	properties: The map of properties to bind.
//	target: A pointer to the struct receiving the values.
//
// Returns:
//
//	An error if binding fails.
func BindProperties(properties map[string]interface{}, target interface{}) error {
	if len(properties) == 0 {
		return nil
	}

	decoderConfig := &mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook:       checkboxHook,
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(properties); err != nil {
		targetType := reflect.TypeOf(target)
		if targetType.Kind() == reflect.Ptr {
			targetType = targetType.Elem()
		}
		return fmt.Errorf("failed to bind properties to struct %s: %w", targetType.Name(), err)
	}
	return nil
}

// BindStrings is BindProperties for map[string]string sources.
func BindStrings(properties map[string]string, target interface{}) error {
	intermediate := make(map[string]interface{}, len(properties))
	for k, v := range properties {
		intermediate[k] = v
	}
	return BindProperties(intermediate, target)
}

func checkboxHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	switch strings.ToLower(strings.TrimSpace(data.(string))) {
	case "yes", "on", "checked":
		return true, nil
	case "no", "off", "":
		return false, nil
	}
	return data, nil
}
