package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"sync"
)

var (
	// ErrNotFound is returned when a scenario or key is not found in the store
	ErrNotFound = errors.New("not found")
)

// KeyValueStore holds versioned records per scenario and a mutex for
// thread-safe access. When constructed with a path it flushes a JSON
// image of the store to disk after every write.
type KeyValueStore struct {
	store map[string]map[string][]storedValue // scenario -> key -> []storedValue (slice to hold versions)
	path  string
	mu    sync.Mutex
}

// storedValue holds the JSON string, the type of the original object, and the version.
type storedValue struct {
	JsonData string
	Type     reflect.Type
	Version  int
}

// persistedValue is the on-disk form of storedValue; reflect.Type is
// replaced by a registered type name.
type persistedValue struct {
	JsonData string `json:"json_data"`
	TypeName string `json:"type_name"`
	Version  int    `json:"version"`
}

// NewKeyValueStore initializes and returns a new in-memory KeyValueStore.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{
		store: make(map[string]map[string][]storedValue),
	}
}

// NewPersistentKeyValueStore initializes a KeyValueStore backed by a JSON
// file at the given path, loading any existing image first.
func NewPersistentKeyValueStore(path string) (*KeyValueStore, error) {
	kvs := &KeyValueStore{
		store: make(map[string]map[string][]storedValue),
		path:  path,
	}
	if err := kvs.load(); err != nil {
		return nil, err
	}
	return kvs, nil
}

// Store checks that all fields in the given struct have JSON tags and
// stores the struct as JSON under the given scenario, key and version.
func (kvs *KeyValueStore) Store(scenarioID, key string, value interface{}, version int) error {
	log.Printf("Storing value of type %T for scenario %s with key %s and version %d", value, scenarioID, key, version)

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("value must be a struct")
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if _, ok := field.Tag.Lookup("json"); !ok {
			return fmt.Errorf("field %s does not have a json tag", field.Name)
		}
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	kvs.mu.Lock()
	defer kvs.mu.Unlock()

	if _, exists := kvs.store[scenarioID]; !exists {
		kvs.store[scenarioID] = make(map[string][]storedValue)
	}

	existingValues := kvs.store[scenarioID][key]

	replaced := false
	for i, storedVal := range existingValues {
		if storedVal.Version == version {
			kvs.store[scenarioID][key][i] = storedValue{
				JsonData: string(jsonData),
				Type:     t,
				Version:  version,
			}
			replaced = true
			break
		}
	}

	if !replaced {
		kvs.store[scenarioID][key] = append(existingValues, storedValue{
			JsonData: string(jsonData),
			Type:     t,
			Version:  version,
		})
		kvs.sortByVersion(scenarioID, key)
	}

	return kvs.flushLocked()
}

// sortByVersion sorts the versions of a key in ascending order, in case
// versions are added out of order.
func (kvs *KeyValueStore) sortByVersion(scenarioID, key string) {
	values := kvs.store[scenarioID][key]
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j-1].Version > values[j].Version; j-- {
			values[j-1], values[j] = values[j], values[j-1]
		}
	}
}

// Retrieve gets the latest stored value under the given scenario and key,
// deserialized into a pointer to the original type.
func (kvs *KeyValueStore) Retrieve(scenarioID, key string) (interface{}, error) {
	kvs.mu.Lock()
	defer kvs.mu.Unlock()

	scenarioStore, exists := kvs.store[scenarioID]
	if !exists {
		return nil, ErrNotFound
	}

	storedValues, keyExists := scenarioStore[key]
	if !keyExists || len(storedValues) == 0 {
		return nil, ErrNotFound
	}

	latestValue := storedValues[len(storedValues)-1]

	v := reflect.New(latestValue.Type).Interface()
	if err := json.Unmarshal([]byte(latestValue.JsonData), v); err != nil {
		return nil, err
	}

	return v, nil
}

// LatestVersion returns the highest stored version for the given scenario
// and key, or 0 when nothing is stored yet.
func (kvs *KeyValueStore) LatestVersion(scenarioID, key string) int {
	kvs.mu.Lock()
	defer kvs.mu.Unlock()

	scenarioStore, exists := kvs.store[scenarioID]
	if !exists {
		return 0
	}
	storedValues := scenarioStore[key]
	if len(storedValues) == 0 {
		return 0
	}
	return storedValues[len(storedValues)-1].Version
}

// ListByKey returns the latest version of the value stored under the
// given key for every scenario that has one.
func (kvs *KeyValueStore) ListByKey(key string) ([]interface{}, error) {
	kvs.mu.Lock()
	defer kvs.mu.Unlock()

	var result []interface{}
	for _, scenarioStore := range kvs.store {
		storedValues, keyExists := scenarioStore[key]
		if !keyExists || len(storedValues) == 0 {
			continue
		}
		latestValue := storedValues[len(storedValues)-1]
		v := reflect.New(latestValue.Type).Interface()
		if err := json.Unmarshal([]byte(latestValue.JsonData), v); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// flushLocked writes the JSON image to disk when the store is persistent.
// Caller must hold the mutex.
func (kvs *KeyValueStore) flushLocked() error {
	if kvs.path == "" {
		return nil
	}

	image := make(map[string]map[string][]persistedValue, len(kvs.store))
	for scenarioID, scenarioStore := range kvs.store {
		image[scenarioID] = make(map[string][]persistedValue, len(scenarioStore))
		for key, values := range scenarioStore {
			persisted := make([]persistedValue, len(values))
			for i, val := range values {
				persisted[i] = persistedValue{
					JsonData: val.JsonData,
					TypeName: val.Type.String(),
					Version:  val.Version,
				}
			}
			image[scenarioID][key] = persisted
		}
	}

	data, err := json.MarshalIndent(image, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(kvs.path, data, 0644)
}

// load reads the JSON image from disk, resolving type names through the
// type registry. A missing file is not an error.
func (kvs *KeyValueStore) load() error {
	data, err := os.ReadFile(kvs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var image map[string]map[string][]persistedValue
	if err := json.Unmarshal(data, &image); err != nil {
		return fmt.Errorf("error reading store image %s: %v", kvs.path, err)
	}

	kvs.mu.Lock()
	defer kvs.mu.Unlock()
	for scenarioID, scenarioStore := range image {
		kvs.store[scenarioID] = make(map[string][]storedValue, len(scenarioStore))
		for key, values := range scenarioStore {
			restored := make([]storedValue, len(values))
			for i, val := range values {
				t, err := getTypeFromName(val.TypeName)
				if err != nil {
					return err
				}
				restored[i] = storedValue{
					JsonData: val.JsonData,
					Type:     t,
					Version:  val.Version,
				}
			}
			kvs.store[scenarioID][key] = restored
		}
	}
	return nil
}
