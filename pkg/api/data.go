package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type JSON map[string]any

type Array []JSON

func (j JSON) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(j)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewBuffer(b), "application/json", nil
}

func (m JSON) GetJSON(key string) (JSON, error) {
	value, err := m.Get(key)
	if err != nil {
		return nil, err
	}

	if value == nil {
		return nil, nil
	}

	switch t := value.(type) {
	case JSON:
		return t, nil
	case map[string]any:
		return JSON(t), nil
	}

	return nil, fmt.Errorf("invalid type of field %s (%T)", key, value)
}

func (m JSON) GetArray(key string) ([]any, error) {
	value, err := m.Get(key)
	if err != nil {
		return nil, err
	}

	if value == nil {
		return nil, nil
	}

	if a, ok := value.([]any); ok {
		return a, nil
	}

	return nil, fmt.Errorf("invalid type of field %s (%T)", key, value)
}

// Get supports dotted keys to reach into nested objects, e.g. "data.user".
func (m JSON) Get(key string) (any, error) {
	key, subKey, found := strings.Cut(key, ".")

	value, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("not found field %s", key)
	}

	if found {
		if mvalue, ok := value.(map[string]any); ok {
			return JSON(mvalue).Get(subKey)
		}
		return nil, fmt.Errorf("invalid type of field %s (%T)", key, value)
	}

	return value, nil
}

// Numbers are kept as json.Number so large integers survive decoding.
func bytesToJSON(body []byte) (JSON, error) {
	result := JSON{}
	if err := decodeNumbers(body, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func bytesToArray(body []byte) (Array, error) {
	result := Array{}
	if err := decodeNumbers(body, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func decodeNumbers(body []byte, v any) error {
	d := json.NewDecoder(bytes.NewReader(body))
	d.UseNumber()
	if err := d.Decode(v); err != nil {
		return err
	}

	if d.More() {
		return errors.New("unexpected trailing data")
	}

	return nil
}

type Response struct {
	Code    int
	Header  http.Header
	Body    any
	RawBody []byte
}
