package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// Tags — упорядоченный набор тегов. В БД хранится как TEXT с JSON-массивом.
type Tags []string

// Value сериализует теги в JSON без HTML-экранирования, чтобы поиск по подстроке
// видел символы вроде & и < как есть.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]string(t)); err != nil {
		return nil, err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Scan читает JSON-массив из колонки. Битое или пустое значение даёт пустой список.
func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	}
	*t = ParseTags(raw)
	return nil
}

// MarshalJSON всегда отдаёт массив, даже для nil.
func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON принимает как массив строк, так и строку с JSON-массивом внутри
// (формат старого веб-клиента).
func (t *Tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = ParseTags([]byte(s))
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*t = Tags{}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = Tags(list)
	return nil
}

// ParseTags разбирает JSON-массив строк; при ошибке возвращает пустой список.
func ParseTags(raw []byte) Tags {
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		return Tags{}
	}
	return Tags(list)
}

// NormalizeTags приводит теги к нижнему регистру, убирает пробелы по краям,
// пустые значения и дубликаты. Порядок первого вхождения сохраняется.
func NormalizeTags(in []string) Tags {
	out := make(Tags, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, tag := range in {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// SplitTags разбирает строку вида "docker, go, k8s" из HTML-формы.
func SplitTags(s string) Tags {
	return NormalizeTags(strings.Split(s, ","))
}
