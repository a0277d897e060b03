package utilities

import (
	"encoding/json"
	"fmt"
	"os"
)

// JsonConfigObj is a json config section that maps onto its domain form.
type JsonConfigObj[T any] interface {
	ConvertToDomain() T
}

// ReadConfig decodes file into T and returns its domain form U.
func ReadConfig[T JsonConfigObj[U], U any](file string) (U, error) {
	var empty U

	fileContent, err := os.ReadFile(file)
	if err != nil {
		return empty, fmt.Errorf("reading config %s: %w", file, err)
	}

	var config T
	if err := json.Unmarshal(fileContent, &config); err != nil {
		return empty, fmt.Errorf("decoding config %s: %w", file, err)
	}

	return config.ConvertToDomain(), nil
}

// ConvertJsonArrayToDomain never returns nil.
func ConvertJsonArrayToDomain[T JsonConfigObj[U], U any](jsonArray []T) []U {
	domainArray := make([]U, 0, len(jsonArray))
	for _, item := range jsonArray {
		domainArray = append(domainArray, item.ConvertToDomain())
	}
	return domainArray
}
