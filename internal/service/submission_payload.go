package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Mochytk/INF225-Informagicos/internal/util"
)

// Keys accepted for each answer field, English first.
var (
	questionKeys = []string{"question_id", "pregunta_id"}
	optionKeys   = []string{"option_id", "opcion_id"}
	textKeys     = []string{"text", "texto"}
	listKeys     = []string{"answers", "respuestas"}
)

var (
	errItemNotObject   = errors.New("item must be an object")
	errQuestionMissing = errors.New("question_id is required")
	errQuestionInvalid = errors.New("question_id must be a positive integer")
	errOptionInvalid   = errors.New("option_id must be a positive integer")
	errTextInvalid     = errors.New("text must be a string")
)

// ItemError reports why one element of a submission was not recorded as expected.
type ItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// DecodeSubmissionPayload accepts either a bare JSON array of answers or an object carrying the
// array under "answers" or "respuestas". Any other shape fails with util.ErrInvalidPayload.
func DecodeSubmissionPayload(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", util.ErrInvalidPayload)
	}

	switch trimmed[0] {
	case '[':
		return decodeList(trimmed)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrInvalidPayload, err)
		}
		for _, key := range listKeys {
			if raw, ok := obj[key]; ok {
				return decodeList(raw)
			}
		}
		return nil, fmt.Errorf("%w: expected an answers list", util.ErrInvalidPayload)
	}
	return nil, fmt.Errorf("%w: expected a list or an object with answers", util.ErrInvalidPayload)
}

func decodeList(raw json.RawMessage) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: answers must be a list", util.ErrInvalidPayload)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidPayload, err)
	}
	return items, nil
}

// answerFields is one decoded answer element.
type answerFields map[string]json.RawMessage

// decodeAnswerItem accepts an object or a JSON string holding an encoded object.
func decodeAnswerItem(raw json.RawMessage) (answerFields, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, errItemNotObject
		}
		raw = bytes.TrimSpace([]byte(inner))
	}
	if len(raw) == 0 || raw[0] != '{' {
		return nil, errItemNotObject
	}

	var fields answerFields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errItemNotObject
	}
	return fields, nil
}

func (f answerFields) lookup(keys []string) (json.RawMessage, bool) {
	for _, key := range keys {
		if raw, ok := f[key]; ok && !isNull(raw) {
			return raw, true
		}
	}
	return nil, false
}

func (f answerFields) questionID() (uint, error) {
	raw, ok := f.lookup(questionKeys)
	if !ok {
		return 0, errQuestionMissing
	}
	id, empty, err := parseRef(raw)
	if err != nil || empty {
		return 0, errQuestionInvalid
	}
	return id, nil
}

// optionID returns nil when no option was chosen; null, "" and 0 count as no choice.
func (f answerFields) optionID() (*uint, error) {
	raw, ok := f.lookup(optionKeys)
	if !ok {
		return nil, nil
	}
	id, empty, err := parseRef(raw)
	if err != nil {
		return nil, errOptionInvalid
	}
	if empty {
		return nil, nil
	}
	return &id, nil
}

func (f answerFields) text() (string, error) {
	raw, ok := f.lookup(textKeys)
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errTextInvalid
	}
	return s, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// parseRef reads an identifier written as a JSON number or a numeric string.
// empty reports "" or 0.
func parseRef(raw json.RawMessage) (id uint, empty bool, err error) {
	raw = bytes.TrimSpace(raw)
	literal := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false, err
		}
		literal = strings.TrimSpace(s)
		if literal == "" {
			return 0, true, nil
		}
	}

	if n, err := strconv.ParseUint(literal, 10, 32); err == nil {
		return uint(n), n == 0, nil
	}
	// 3.0 is accepted, 3.5 is not
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxUint32 {
		return 0, false, fmt.Errorf("invalid identifier %q", literal)
	}
	return uint(f), f == 0, nil
}
