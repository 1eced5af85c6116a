package domain

// StatField is one key/value pair of a tagged result record.
type StatField struct {
	Key   string
	Value string
}

// StatRecord is one tagged result record in the order the backend emitted
// its fields. Order matters to consumers that rebuild spec forms, so this
// is a slice rather than a map.
type StatRecord []StatField

func (r StatRecord) Get(key string) (string, bool) {
	for _, field := range r {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

// Split returns parallel key and value slices of equal length, the shape
// the boundary callback surface expects.
func (r StatRecord) Split() (keys []string, values []string) {
	keys = make([]string, 0, len(r))
	values = make([]string, 0, len(r))
	for _, field := range r {
		keys = append(keys, field.Key)
		values = append(values, field.Value)
	}
	return keys, values
}
