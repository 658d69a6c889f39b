package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Mochytk/INF225-Informagicos/internal/util"
)

func TestDecodeSubmissionPayloadShapes(t *testing.T) {
	valid := map[string]int{
		`[]`:                                     0,
		`[{"question_id": 1}]`:                   1,
		`{"answers": [{"question_id": 1}, 2]}`:   2,
		`{"respuestas": [{"pregunta_id": "3"}]}`: 1,
		`  [ "{\"question_id\": 4}" ]  `:         1,
	}
	for body, n := range valid {
		items, err := DecodeSubmissionPayload([]byte(body))
		if err != nil {
			t.Errorf("%s: unexpected error %v", body, err)
			continue
		}
		if len(items) != n {
			t.Errorf("%s: got %d items, want %d", body, len(items), n)
		}
	}

	invalid := []string{
		``,
		`not json`,
		`42`,
		`"answers"`,
		`null`,
		`{}`,
		`{"answers": {"question_id": 1}}`,
		`{"answers": null}`,
		`{"respuestas": "x"}`,
		`[{"question_id": 1}`,
	}
	for _, body := range invalid {
		if _, err := DecodeSubmissionPayload([]byte(body)); !errors.Is(err, util.ErrInvalidPayload) {
			t.Errorf("%q: err = %v, want ErrInvalidPayload", body, err)
		}
	}
}

func TestDecodeAnswerItem(t *testing.T) {
	fields, err := decodeAnswerItem(json.RawMessage(`"{\"pregunta_id\": \"7\", \"opcion_id\": 9, \"texto\": \"hola\"}"`))
	if err != nil {
		t.Fatalf("string-encoded object: %v", err)
	}
	qid, err := fields.questionID()
	if err != nil || qid != 7 {
		t.Fatalf("questionID = %d, %v", qid, err)
	}
	oid, err := fields.optionID()
	if err != nil || oid == nil || *oid != 9 {
		t.Fatalf("optionID = %v, %v", oid, err)
	}
	text, err := fields.text()
	if err != nil || text != "hola" {
		t.Fatalf("text = %q, %v", text, err)
	}

	for _, raw := range []string{`5`, `"plain text"`, `[1]`, `null`, `"[]"`} {
		if _, err := decodeAnswerItem(json.RawMessage(raw)); !errors.Is(err, errItemNotObject) {
			t.Errorf("%s: err = %v, want errItemNotObject", raw, err)
		}
	}
}

func TestAnswerFieldRules(t *testing.T) {
	parse := func(raw string) answerFields {
		t.Helper()
		f, err := decodeAnswerItem(json.RawMessage(raw))
		if err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		return f
	}

	if _, err := parse(`{"option_id": 1}`).questionID(); !errors.Is(err, errQuestionMissing) {
		t.Errorf("missing question: %v", err)
	}
	for _, raw := range []string{`{"question_id": 0}`, `{"question_id": -2}`, `{"question_id": "x"}`, `{"question_id": 1.5}`, `{"question_id": ""}`} {
		if _, err := parse(raw).questionID(); !errors.Is(err, errQuestionInvalid) {
			t.Errorf("%s: err = %v, want errQuestionInvalid", raw, err)
		}
	}
	if id, err := parse(`{"question_id": 3.0}`).questionID(); err != nil || id != 3 {
		t.Errorf("integral float: %d, %v", id, err)
	}

	for _, raw := range []string{`{"option_id": null}`, `{"option_id": ""}`, `{"option_id": 0}`, `{"opcion_id": "0"}`, `{}`} {
		oid, err := parse(raw).optionID()
		if err != nil || oid != nil {
			t.Errorf("%s: want no option, got %v, %v", raw, oid, err)
		}
	}
	if _, err := parse(`{"option_id": "abc"}`).optionID(); !errors.Is(err, errOptionInvalid) {
		t.Errorf("unparseable option: %v", err)
	}

	if _, err := parse(`{"text": 12}`).text(); !errors.Is(err, errTextInvalid) {
		t.Errorf("numeric text: %v", err)
	}
	if s, err := parse(`{"text": null}`).text(); err != nil || s != "" {
		t.Errorf("null text: %q, %v", s, err)
	}
}
