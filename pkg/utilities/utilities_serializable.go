package utilities

import "encoding/json"

// Serializable is anything that can be put on a queue.
type Serializable interface {
	Serialize() ([]byte, error)
}

func Serialize[T any](content T) ([]byte, error) {
	return json.Marshal(content)
}
