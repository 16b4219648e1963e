package extract

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode converts an extracted document into T using the json struct tags.
// Decoding is weakly typed because models quote numbers and booleans at
// random: "age": "25" fills an int field and "careerAdvancement": "true" a
// bool one.
func Decode[T any](value any) (T, error) {
	var out T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, fmt.Errorf("build decoder for %T: %w", out, err)
	}

	if err := decoder.Decode(value); err != nil {
		return out, fmt.Errorf("decode into %T: %w", out, err)
	}

	return out, nil
}

// ParseAs extracts a document from raw and decodes it into T.
//
//	type Poet struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	poets, err := extract.ParseAs[[]Poet](reply)
func ParseAs[T any](raw string, opts ...Option) (T, error) {
	result, err := Extract(raw, opts...)
	if err != nil {
		var zero T
		return zero, err
	}

	return Decode[T](result.Value)
}
