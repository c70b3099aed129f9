package db

import (
	"fmt"
	"reflect"
	"strings"

	"regress-core/svc/models"
)

// typeRegistry maps persisted type names to their reflect.Type so a
// file-backed store can rebuild typed records.
var typeRegistry = map[string]reflect.Type{
	"models.Scenario":       reflect.TypeOf(models.Scenario{}),
	"models.ScenarioReport": reflect.TypeOf(models.ScenarioReport{}),
}

// RegisterType registers a type with the type registry.
func RegisterType(v interface{}) {
	t := reflect.TypeOf(v)
	typeRegistry[t.String()] = t
}

// getTypeFromName resolves a persisted type name, tolerating a leading
// pointer marker and qualified package paths.
func getTypeFromName(name string) (reflect.Type, error) {
	isPtr := strings.HasPrefix(name, "*")
	if isPtr {
		name = name[1:]
	}

	t, ok := typeRegistry[name]
	if !ok {
		parts := strings.Split(name, ".")
		t, ok = typeRegistry["models."+parts[len(parts)-1]]
	}
	if !ok {
		return nil, fmt.Errorf("unknown type: %s", name)
	}

	if isPtr {
		return reflect.PointerTo(t), nil
	}
	return t, nil
}
