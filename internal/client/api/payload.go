package api

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"
)

// PayloadKind tags the shape of an error body returned by the server.
type PayloadKind string

const (
	// PayloadDetail is a single message: {"detail": "..."} or {"error": "..."}
	PayloadDetail PayloadKind = "detail"
	// PayloadFieldErrors is a per-field map: {"email": ["..."], "password": "..."}
	PayloadFieldErrors PayloadKind = "fieldErrors"
	// PayloadPlain is anything else (HTML error page, plain text, empty body)
	PayloadPlain PayloadKind = "plain"
)

// maxPlainLen ограничивает длину текста, который мы показываем пользователю
const maxPlainLen = 200

// FieldError holds the messages reported for one request field.
type FieldError struct {
	Field    string
	Messages []string
}

// ErrorPayload is the normalized error body.
type ErrorPayload struct {
	Kind   PayloadKind
	Detail string       // PayloadDetail
	Fields []FieldError // PayloadFieldErrors, in server order
	Text   string       // PayloadPlain
}

// ParseErrorPayload classifies a raw error body.
func ParseErrorPayload(body []byte) ErrorPayload {
	body = bytes.TrimSpace(body)

	if fields, ok := parseObject(body); ok {
		for _, f := range fields {
			if (f.Field == "detail" || f.Field == "error") && len(f.Messages) > 0 {
				return ErrorPayload{Kind: PayloadDetail, Detail: f.Messages[0]}
			}
		}
		if len(fields) > 0 {
			return ErrorPayload{Kind: PayloadFieldErrors, Fields: fields}
		}
		return ErrorPayload{Kind: PayloadPlain}
	}

	// JSON строка или массив строк верхнего уровня
	if json.Valid(body) {
		if msgs := flatten(body); len(msgs) > 0 {
			return ErrorPayload{Kind: PayloadDetail, Detail: strings.Join(msgs, ", ")}
		}
	}

	return ErrorPayload{Kind: PayloadPlain, Text: truncate(string(body), maxPlainLen)}
}

// Message renders the payload as one human-readable line.
func (p ErrorPayload) Message() string {
	switch p.Kind {
	case PayloadDetail:
		return p.Detail
	case PayloadFieldErrors:
		msgs := make([]string, 0, len(p.Fields))
		for _, f := range p.Fields {
			msgs = append(msgs, f.Messages...)
		}
		return strings.Join(msgs, ", ")
	default:
		return p.Text
	}
}

// parseObject decodes a top-level JSON object keeping the key order.
func parseObject(body []byte) ([]FieldError, bool) {
	if len(body) == 0 || body[0] != '{' {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return nil, false
	}

	var fields []FieldError
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, false
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false
		}

		if msgs := flatten(raw); len(msgs) > 0 {
			fields = append(fields, FieldError{Field: key, Messages: msgs})
		}
	}

	return fields, true
}

// flatten collects every leaf message from a JSON value.
func flatten(raw json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return []string{s}
		}
		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		var out []string
		for _, item := range list {
			out = append(out, flatten(item)...)
		}
		return out
	}

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err == nil {
		keys := make([]string, 0, len(nested))
		for k := range nested {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var out []string
		for _, k := range keys {
			out = append(out, flatten(nested[k])...)
		}
		return out
	}

	// числа, bool, null
	if text := strings.TrimSpace(string(raw)); text != "" && text != "null" {
		return []string{text}
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	// не режем посреди UTF-8 последовательности
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
