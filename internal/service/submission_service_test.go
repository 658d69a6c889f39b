package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/internal/testutil"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
)

func TestSubmitAllCorrect(t *testing.T) {
	f := newFixture(t)
	student := testutil.CreateUser(t, f.db, "ana", model.Student)
	exam := testutil.CreateExam(t, f.db, "Ensayo PAES 1")
	q1 := testutil.CreateChoiceQuestion(t, f.db, exam.ID, "2+2", []string{"4", "5"})
	q2 := testutil.CreateChoiceQuestion(t, f.db, exam.ID, "3*3", []string{"9", "6"})

	body := fmt.Sprintf(`[{"question_id": %d, "option_id": %d}, {"question_id": %d, "option_id": %d}]`,
		q1.ID, q1.Options[0].ID, q2.ID, q2.Options[0].ID)

	res, err := f.submission.Submit(context.Background(), student.ID, exam.ID, []byte(body))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 1000 {
		t.Fatalf("score = %d, want 1000", res.Score)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected item errors: %+v", res.Errors)
	}
	if res.ResultID == 0 || res.Timestamp.IsZero() {
		t.Fatalf("result header not filled: %+v", res)
	}
	if n := f.countRows(t, &model.Answer{}); n != 2 {
		t.Fatalf("answers stored = %d, want 2", n)
	}
	if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != exam.ID {
		t.Fatalf("summary cache not invalidated: %v", f.cache.invalidated)
	}
}

func TestSubmitScoreFloorsAndCountsQuestionsOnce(t *testing.T) {
	f := newFixture(t)
	student := testutil.CreateUser(t, f.db, "beto", model.Student)
	exam := testutil.CreateExam(t, f.db, "Ensayo")
	q1 := testutil.CreateChoiceQuestion(t, f.db, exam.ID, "a", []string{"ok", "no"})
	testutil.CreateChoiceQuestion(t, f.db, exam.ID, "b", []string{"ok", "no"})
	testutil.CreateChoiceQuestion(t, f.db, exam.ID, "c", []string{"ok", "no"})

	// the same correct answer twice still counts as one question out of three
	body := fmt.Sprintf(`{"answers": [{"question_id": %[1]d, "option_id": %[2]d}, {"question_id": %[1]d, "option_id": %[2]d}]}`,
		q1.ID, q1.Options[0].ID)

	res, err := f.submission.Submit(context.Background(), student.ID, exam.ID, []byte(body))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 333 {
		t.Fatalf("score = %d, want 333", res.Score)
	}
	if n := f.countRows(t, &model.Answer{}); n != 2 {
		t.Fatalf("answers stored = %d, want 2", n)
	}
}

func TestSubmitZeroQuestionExam(t *testing.T) {
	f := newFixture(t)
	student := testutil.CreateUser(t, f.db, "carla", model.Student)
	exam := testutil.CreateExam(t, f.db, "Vacío")

	res, err := f.submission.Submit(context.Background(), student.ID, exam.ID, []byte(`[]`))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 0 {
		t.Fatalf("score = %d, want 0", res.Score)
	}
	if n := f.countRows(t, &model.Result{}); n != 1 {
		t.Fatalf("results stored = %d, want 1", n)
	}
}

func TestSubmitBadQuestionReferenceKeepsLaterItems(t *testing.T) {
	f := newFixture(t)
	student := testutil.CreateUser(t, f.db, "diego", model.Student)
	exam := testutil.CreateExam(t, f.db, "Ensayo")
	other := testutil.CreateExam(t, f.db, "Otro")
	q := testutil.CreateChoiceQuestion(t, f.db, exam.ID, "a", []string{"ok", "no"})
	foreign := testutil.CreateChoiceQuestion(t, f.db, other.ID, "x", []string{"ok"})

	body := fmt.Sprintf(`[
		{"question_id": 999999},
		{"question_id": %d},
		"not an object",
		{"option_id": %d},
		{"question_id": %d, "option_id": %d}
	]`, foreign.ID, q.Options[0].ID, q.ID, q.Options[0].ID)

	res, err := f.submission.Submit(context.Background(), student.ID, exam.ID, []byte(body))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(res.Errors) != 4 {
		t.Fatalf("errors = %+v, want 4", res.Errors)
	}
	for i, e := range res.Errors {
		if e.Index != i {
			t.Errorf("error %d has index %d", i, e.Index)
		}
	}
	if res.Errors[2].Error != "item must be an object" {
		t.Errorf("non-object message = %q", res.Errors[2].Error)
	}
	if res.Score != 1000 {
		t.Fatalf("score = %d, want 1000", res.Score)
	}
	if n := f.countRows(t, &model.Answer{}); n != 1 {
		t.Fatalf("answers stored = %d, want 1", n)
	}
}

func TestSubmitOptionOfAnotherQuestion(t *testing.T) {
	f := newFixture(t)
	student := testutil.CreateUser(t, f.db, "elena", model.Student)
	exam := testutil.CreateExam(t, f.db, "Ensayo")
	q1 := testutil.CreateChoiceQuestion(t, f.db, exam.ID, "a", []string{"ok", "no"})
	q2 := testutil.CreateChoiceQuestion(t, f.db, exam.ID, "b", []string{"ok", "no"})

	// correct option of q2 submitted for q1
	body := fmt.Sprintf(`[{"pregunta_id": "%d", "opcion_id": "%d"}]`, q1.ID, q2.Options[0].ID)

	res, err := f.submission.Submit(context.Background(), student.ID, exam.ID, []byte(body))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0].Error, "does not belong to question") {
		t.Fatalf("errors = %+v, want one mismatch error", res.Errors)
	}
	if res.Score != 0 {
		t.Fatalf("score = %d, want 0", res.Score)
	}

	var answers []model.Answer
	if err := f.db.Find(&answers).Error; err != nil {
		t.Fatal(err)
	}
	if len(answers) != 1 {
		t.Fatalf("answers stored = %d, want 1", len(answers))
	}
	if answers[0].OptionID != nil || answers[0].Correct || answers[0].QuestionID != q1.ID {
		t.Fatalf("stored answer = %+v, want q1 without option and incorrect", answers[0])
	}
}

func TestSubmitUnparseableOptionIsNotRecorded(t *testing.T) {
	f := newFixture(t)
	student := testutil.CreateUser(t, f.db, "fede", model.Student)
	exam := testutil.CreateExam(t, f.db, "Ensayo")
	q := testutil.CreateChoiceQuestion(t, f.db, exam.ID, "a", []string{"ok"})

	body := fmt.Sprintf(`[{"question_id": %d, "option_id": "abc"}]`, q.ID)
	res, err := f.submission.Submit(context.Background(), student.ID, exam.ID, []byte(body))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %+v", res.Errors)
	}
	if n := f.countRows(t, &model.Answer{}); n != 0 {
		t.Fatalf("answers stored = %d, want 0", n)
	}
}

func TestSubmitOpenAnswerIsIncorrect(t *testing.T) {
	f := newFixture(t)
	student := testutil.CreateUser(t, f.db, "gabi", model.Student)
	exam := testutil.CreateExam(t, f.db, "Ensayo")
	q := testutil.CreateOpenQuestion(t, f.db, exam.ID, "Explique")

	body := fmt.Sprintf(`[{"question_id": %d, "texto": "porque sí"}]`, q.ID)
	res, err := f.submission.Submit(context.Background(), student.ID, exam.ID, []byte(body))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 0 || len(res.Errors) != 0 {
		t.Fatalf("result = %+v", res)
	}
	var answer model.Answer
	if err := f.db.First(&answer).Error; err != nil {
		t.Fatal(err)
	}
	if answer.Text != "porque sí" || answer.Correct {
		t.Fatalf("stored answer = %+v", answer)
	}
}

func TestSubmitRejectsShapeWithoutPersisting(t *testing.T) {
	f := newFixture(t)
	student := testutil.CreateUser(t, f.db, "hugo", model.Student)
	exam := testutil.CreateExam(t, f.db, "Ensayo")

	_, err := f.submission.Submit(context.Background(), student.ID, exam.ID, []byte(`{"foo": []}`))
	if !errors.Is(err, util.ErrInvalidPayload) {
		t.Fatalf("err = %v, want ErrInvalidPayload", err)
	}
	if n := f.countRows(t, &model.Result{}); n != 0 {
		t.Fatalf("results stored = %d, want 0", n)
	}
}

func TestSubmitUnknownExam(t *testing.T) {
	f := newFixture(t)
	student := testutil.CreateUser(t, f.db, "ines", model.Student)

	_, err := f.submission.Submit(context.Background(), student.ID, 4242, []byte(`[]`))
	if !errors.Is(err, util.ErrExamNotFound) {
		t.Fatalf("err = %v, want ErrExamNotFound", err)
	}
}

func TestComputeScore(t *testing.T) {
	answers := []model.Answer{
		{QuestionID: 1, Correct: true},
		{QuestionID: 2, Correct: false},
		{QuestionID: 3, Correct: true},
	}
	if got := computeScore(answers, 3); got != 666 {
		t.Fatalf("computeScore = %d, want 666", got)
	}
	if got := computeScore(answers[:1], 1); got != 1000 {
		t.Fatalf("1 of 1 = %d, want 1000", got)
	}
	if got := computeScore(nil, 0); got != 0 {
		t.Fatalf("no questions = %d, want 0", got)
	}
}
