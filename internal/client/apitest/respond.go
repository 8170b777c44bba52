package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// sendJSON отправляет JSON ответ
func sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// sendError отправляет ответ вида {"error": "..."}
func sendError(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, map[string]string{"error": message}, statusCode)
}

// sendDetail отправляет ответ вида {"detail": "..."}
func sendDetail(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, map[string]string{"detail": message}, statusCode)
}

func sendTokenInvalid(w http.ResponseWriter) {
	sendJSON(w, map[string]string{
		"detail": "Given token not valid for any token type",
		"code":   "token_not_valid",
	}, http.StatusUnauthorized)
}

// fieldErrors is a per-field error body that keeps insertion order.
type fieldErrors struct {
	keys []string
	msgs map[string][]string
}

func (f *fieldErrors) add(field, msg string) {
	if f.msgs == nil {
		f.msgs = make(map[string][]string)
	}
	if _, ok := f.msgs[field]; !ok {
		f.keys = append(f.keys, field)
	}
	f.msgs[field] = append(f.msgs[field], msg)
}

func (f *fieldErrors) empty() bool {
	return len(f.keys) == 0
}

// MarshalJSON пишет поля в порядке добавления
func (f *fieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.msgs[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
