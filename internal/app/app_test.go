package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/internal/testutil"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	app    *App
	db     *gorm.DB
	tokens map[string]string
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := testutil.Config(t)
	db := testutil.OpenDB(t, &cfg.Database)
	return &testServer{t: t, app: New(cfg, db, nil), db: db, tokens: map[string]string{}}
}

func (s *testServer) login(u *model.User) string {
	s.t.Helper()
	tok, err := util.GenerateJWT(u, testutil.JWTSecret, time.Hour)
	if err != nil {
		s.t.Fatalf("GenerateJWT: %v", err)
	}
	return tok
}

func (s *testServer) do(method, path, token, contentType string, body []byte) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w, env
}

func (s *testServer) json(method, path, token string, body string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	return s.do(method, path, token, "application/json", []byte(body))
}

type scenario struct {
	student  *model.User
	teacher  *model.User
	exam     *model.Exam
	q1, q2   *model.Question
	algebra  *model.Tag
	studentT string
	teacherT string
}

func seed(s *testServer) scenario {
	s.t.Helper()
	student := testutil.CreateUser(s.t, s.db, "ana", model.Student)
	teacher := testutil.CreateUser(s.t, s.db, "profe", model.Teacher)
	algebra := testutil.CreateTag(s.t, s.db, "Álgebra")
	exam := testutil.CreateExam(s.t, s.db, "Ensayo PAES M1")
	q1 := testutil.CreateChoiceQuestion(s.t, s.db, exam.ID, "x + 1 = 3", []string{"2", "3"}, *algebra)
	q2 := testutil.CreateChoiceQuestion(s.t, s.db, exam.ID, "2 · 3", []string{"6", "5"})
	return scenario{
		student: student, teacher: teacher, exam: exam, q1: q1, q2: q2, algebra: algebra,
		studentT: s.login(student), teacherT: s.login(teacher),
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	if w, _ := s.json(http.MethodGet, "/api/health", "", ""); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRegisterAndLoginOverHTTP(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.json(http.MethodPost, "/api/register", "",
		`{"name": "Ana", "username": "ana", "email": "ana@example.test", "password": "secreto123"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", w.Code, w.Body.String())
	}
	w, _ = s.json(http.MethodPost, "/api/register", "",
		`{"name": "Ana", "username": "ana2", "email": "ana@example.test", "password": "secreto123"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d", w.Code)
	}

	w, env := s.json(http.MethodPost, "/api/login", "", `{"username": "ana", "password": "secreto123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	var data struct {
		Token string `json:"token"`
	}
	json.Unmarshal(env.Data, &data)
	if data.Token == "" {
		t.Fatal("login returned no token")
	}

	if w, _ := s.json(http.MethodGet, "/api/current_user", data.Token, ""); w.Code != http.StatusOK {
		t.Errorf("current_user status = %d", w.Code)
	}
	if w, _ := s.json(http.MethodPost, "/api/login", "", `{"email": "ana@example.test", "password": "nope"}`); w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d", w.Code)
	}
}

func TestSubmitOverHTTP(t *testing.T) {
	s := newTestServer(t)
	sc := seed(s)
	path := fmt.Sprintf("/api/exams/%d/submit", sc.exam.ID)

	body := fmt.Sprintf(`{"answers": [{"question_id": %d, "option_id": %d}, {"question_id": %d, "option_id": %d}]}`,
		sc.q1.ID, sc.q1.Options[0].ID, sc.q2.ID, sc.q2.Options[1].ID)
	w, env := s.json(http.MethodPost, path, sc.studentT, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var res struct {
		ResultID uint `json:"result_id"`
		Score    int  `json:"score"`
	}
	json.Unmarshal(env.Data, &res)
	if res.Score != 500 || res.ResultID == 0 {
		t.Errorf("result = %+v", res)
	}

	// alias path and Spanish keys
	alias := fmt.Sprintf("/api/ensayos/%d/submit", sc.exam.ID)
	body = fmt.Sprintf(`{"respuestas": [{"pregunta_id": "%d", "opcion_id": "%d"}]}`, sc.q1.ID, sc.q1.Options[0].ID)
	if w, _ := s.json(http.MethodPost, alias, sc.studentT, body); w.Code != http.StatusCreated {
		t.Errorf("alias status = %d: %s", w.Code, w.Body.String())
	}

	cases := []struct {
		name  string
		path  string
		token string
		body  string
		want  int
	}{
		{"no token", path, "", `[]`, http.StatusUnauthorized},
		{"scalar body", path, sc.studentT, `42`, http.StatusBadRequest},
		{"answers not a list", path, sc.studentT, `{"answers": {}}`, http.StatusBadRequest},
		{"invalid json", path, sc.studentT, `{"answers": [`, http.StatusBadRequest},
		{"unknown exam", "/api/exams/9999/submit", sc.studentT, `[]`, http.StatusNotFound},
		{"malformed exam id", "/api/exams/abc/submit", sc.studentT, `[]`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w, _ := s.json(http.MethodPost, tc.path, tc.token, tc.body); w.Code != tc.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tc.want, w.Body.String())
			}
		})
	}

	var n int64
	s.db.Model(&model.Result{}).Count(&n)
	if n != 2 {
		t.Errorf("results stored = %d, want 2", n)
	}
}

func TestSummaryOverHTTP(t *testing.T) {
	s := newTestServer(t)
	sc := seed(s)

	body := fmt.Sprintf(`[{"question_id": %d, "option_id": %d}, {"question_id": %d, "option_id": %d}]`,
		sc.q1.ID, sc.q1.Options[0].ID, sc.q2.ID, sc.q2.Options[0].ID)
	if w, _ := s.json(http.MethodPost, fmt.Sprintf("/api/exams/%d/submit", sc.exam.ID), sc.studentT, body); w.Code != http.StatusCreated {
		t.Fatalf("submit status = %d", w.Code)
	}

	path := fmt.Sprintf("/api/exams/%d/results/summary", sc.exam.ID)
	if w, _ := s.json(http.MethodGet, path, "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d", w.Code)
	}
	if w, _ := s.json(http.MethodGet, path, sc.studentT, ""); w.Code != http.StatusForbidden {
		t.Errorf("student status = %d", w.Code)
	}
	// role check comes before the lookup
	if w, _ := s.json(http.MethodGet, "/api/exams/9999/results/summary", sc.studentT, ""); w.Code != http.StatusForbidden {
		t.Errorf("student on unknown exam status = %d", w.Code)
	}
	if w, _ := s.json(http.MethodGet, "/api/exams/9999/results/summary", sc.teacherT, ""); w.Code != http.StatusNotFound {
		t.Errorf("teacher on unknown exam status = %d", w.Code)
	}

	for _, p := range []string{path, fmt.Sprintf("/api/ensayos/%d/results/summary", sc.exam.ID)} {
		w, env := s.json(http.MethodGet, p, sc.teacherT, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s status = %d: %s", p, w.Code, w.Body.String())
		}
		var summary model.ExamSummary
		if err := json.Unmarshal(env.Data, &summary); err != nil {
			t.Fatalf("decode summary: %v", err)
		}
		if summary.ParticipantCount != 1 || len(summary.ByType) != 1 {
			t.Fatalf("summary = %+v", summary)
		}
		bt := summary.ByType[0]
		if bt.Answered != 2 || bt.Correct != 2 || bt.PctCorrect != 100.0 {
			t.Errorf("by_type = %+v", bt)
		}
		if len(summary.ByTag) != 2 || summary.ByTag[0].Tag != "Álgebra" && summary.ByTag[1].Tag != "Álgebra" {
			t.Errorf("by_tag = %+v", summary.ByTag)
		}
	}

	bpath := fmt.Sprintf("/api/ensayos/%d/questions/%d/breakdown", sc.exam.ID, sc.q1.ID)
	w, env := s.json(http.MethodGet, bpath, sc.teacherT, "")
	if w.Code != http.StatusOK {
		t.Fatalf("breakdown status = %d: %s", w.Code, w.Body.String())
	}
	var b model.QuestionBreakdown
	json.Unmarshal(env.Data, &b)
	if b.TotalAnswered != 1 || len(b.Options) != 2 || b.Options[0].Percentage != 100.0 {
		t.Errorf("breakdown = %+v", b)
	}

	other := testutil.CreateExam(t, s.db, "Otro")
	wrong := fmt.Sprintf("/api/exams/%d/questions/%d/breakdown", other.ID, sc.q1.ID)
	if w, _ := s.json(http.MethodGet, wrong, sc.teacherT, ""); w.Code != http.StatusNotFound {
		t.Errorf("foreign question status = %d", w.Code)
	}
}

func TestReviewOverHTTP(t *testing.T) {
	s := newTestServer(t)
	sc := seed(s)

	body := fmt.Sprintf(`[{"question_id": %d, "option_id": %d}]`, sc.q1.ID, sc.q1.Options[1].ID)
	_, env := s.json(http.MethodPost, fmt.Sprintf("/api/exams/%d/submit", sc.exam.ID), sc.studentT, body)
	var res struct {
		ResultID uint `json:"result_id"`
	}
	json.Unmarshal(env.Data, &res)

	path := fmt.Sprintf("/api/ensayos/%d/results/%d/review", sc.exam.ID, res.ResultID)
	w, env := s.json(http.MethodGet, path, sc.studentT, "")
	if w.Code != http.StatusOK {
		t.Fatalf("review status = %d: %s", w.Code, w.Body.String())
	}
	var review model.ResultReview
	json.Unmarshal(env.Data, &review)
	if len(review.Answers) != 1 || review.Answers[0].CorrectOption == nil || review.Answers[0].CorrectOption.Text != "2" {
		t.Errorf("review = %+v", review)
	}

	intruder := testutil.CreateUser(t, s.db, "beto", model.Student)
	if w, _ := s.json(http.MethodGet, path, s.login(intruder), ""); w.Code != http.StatusForbidden {
		t.Errorf("other student status = %d", w.Code)
	}
	if w, _ := s.json(http.MethodGet, path, sc.teacherT, ""); w.Code != http.StatusOK {
		t.Errorf("teacher status = %d", w.Code)
	}

	w, env = s.json(http.MethodGet, "/api/ensayos/completados", sc.studentT, "")
	if w.Code != http.StatusOK {
		t.Fatalf("completados status = %d", w.Code)
	}
	var completed []model.CompletedExam
	json.Unmarshal(env.Data, &completed)
	if len(completed) != 1 || completed[0].ResultID != res.ResultID {
		t.Errorf("completed = %+v", completed)
	}
	if w, _ := s.json(http.MethodGet, "/api/ensayos/completados", "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous completados status = %d", w.Code)
	}
}

func TestExplanationOverHTTP(t *testing.T) {
	s := newTestServer(t)
	sc := seed(s)

	path := fmt.Sprintf("/api/preguntas/%d/explicacion", sc.q1.ID)
	if w, _ := s.json(http.MethodPatch, path, sc.studentT, `{"texto": "x"}`); w.Code != http.StatusForbidden {
		t.Errorf("student status = %d", w.Code)
	}
	if w, _ := s.json(http.MethodPatch, path, sc.teacherT, `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d", w.Code)
	}
	if w, _ := s.json(http.MethodPatch, "/api/preguntas/9999/explicacion", sc.teacherT, `{"texto": "x"}`); w.Code != http.StatusNotFound {
		t.Errorf("unknown question status = %d", w.Code)
	}

	w, _ := s.json(http.MethodPatch, path, sc.teacherT, `{"texto": "despejar x", "explanation_text": "gana", "url": "https://example.test/v"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var q model.Question
	s.db.First(&q, sc.q1.ID)
	if q.ExplanationText != "gana" || q.ExplanationURL != "https://example.test/v" {
		t.Errorf("stored = %q / %q", q.ExplanationText, q.ExplanationURL)
	}
}

func TestExamVisibilityOverHTTP(t *testing.T) {
	s := newTestServer(t)
	sc := seed(s)
	path := fmt.Sprintf("/api/exams/%d", sc.exam.ID)

	_, env := s.json(http.MethodGet, path, "", "")
	if strings.Contains(string(env.Data), "is_correct") {
		t.Errorf("anonymous detail reveals answers: %s", env.Data)
	}
	_, env = s.json(http.MethodGet, path, sc.studentT, "")
	if strings.Contains(string(env.Data), "is_correct") {
		t.Errorf("student detail reveals answers: %s", env.Data)
	}
	_, env = s.json(http.MethodGet, path, sc.teacherT, "")
	if !strings.Contains(string(env.Data), "is_correct") {
		t.Errorf("teacher detail hides answers: %s", env.Data)
	}
}

func TestAuthoringOverHTTP(t *testing.T) {
	s := newTestServer(t)
	sc := seed(s)

	w, env := s.json(http.MethodPost, "/api/exams", sc.teacherT, `{"title": "Ensayo nuevo", "subject": "Lenguaje"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create exam status = %d: %s", w.Code, w.Body.String())
	}
	var exam struct {
		ID uint `json:"id"`
	}
	json.Unmarshal(env.Data, &exam)

	if w, _ := s.json(http.MethodPost, "/api/exams", sc.studentT, `{"title": "x"}`); w.Code != http.StatusForbidden {
		t.Errorf("student create status = %d", w.Code)
	}

	qbody := fmt.Sprintf(`{"statement": "¿Idea principal?", "type": "alternativa_simple", "tag_ids": [%d],
		"options": [{"text": "A", "is_correct": true}, {"text": "B"}]}`, sc.algebra.ID)
	w, env = s.json(http.MethodPost, fmt.Sprintf("/api/exams/%d/questions", exam.ID), sc.teacherT, qbody)
	if w.Code != http.StatusCreated {
		t.Fatalf("create question status = %d: %s", w.Code, w.Body.String())
	}
	var q struct {
		ID uint `json:"id"`
	}
	json.Unmarshal(env.Data, &q)

	bad := `{"statement": "x", "type": "verdadero_falso"}`
	if w, _ := s.json(http.MethodPost, fmt.Sprintf("/api/exams/%d/questions", exam.ID), sc.teacherT, bad); w.Code != http.StatusBadRequest {
		t.Errorf("invalid type status = %d", w.Code)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("image", "q.png")
	fw.Write([]byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
		0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
	})
	mw.Close()
	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/questions/%d/image", q.ID), sc.teacherT, mw.FormDataContentType(), buf.Bytes())
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", w.Code, w.Body.String())
	}
	var up struct {
		URL string `json:"image_url"`
	}
	json.Unmarshal(env.Data, &up)
	if up.URL == "" {
		t.Fatalf("upload data = %s", env.Data)
	}
	if w, _ := s.do(http.MethodGet, up.URL, "", "", nil); w.Code != http.StatusOK {
		t.Errorf("serve uploaded image status = %d", w.Code)
	}

	if w, _ := s.json(http.MethodDelete, fmt.Sprintf("/api/exams/%d", exam.ID), sc.teacherT, ""); w.Code != http.StatusOK {
		t.Errorf("delete status = %d: %s", w.Code, w.Body.String())
	}
	if w, _ := s.json(http.MethodGet, fmt.Sprintf("/api/exams/%d", exam.ID), "", ""); w.Code != http.StatusNotFound {
		t.Errorf("deleted exam status = %d", w.Code)
	}
}

func TestSelfRegistrationCannotClaimTeacherRole(t *testing.T) {
	s := newTestServer(t)
	sc := seed(s)

	w, _ := s.json(http.MethodPost, "/api/register", "",
		`{"name": "Mal", "username": "mal", "email": "mal@example.test", "password": "secreto123", "role": "teacher", "is_staff": true}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", w.Code, w.Body.String())
	}
	_, env := s.json(http.MethodPost, "/api/login", "", `{"username": "mal", "password": "secreto123"}`)
	var data struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	json.Unmarshal(env.Data, &data)
	if data.User.Role != model.Student || data.User.IsStaff {
		t.Fatalf("self-registered user = %+v", data.User)
	}

	summary := fmt.Sprintf("/api/exams/%d/results/summary", sc.exam.ID)
	if w, _ := s.json(http.MethodGet, summary, data.Token, ""); w.Code != http.StatusForbidden {
		t.Errorf("summary status = %d, want 403", w.Code)
	}
	explain := fmt.Sprintf("/api/preguntas/%d/explicacion", sc.q1.ID)
	if w, _ := s.json(http.MethodPatch, explain, data.Token, `{"texto": "x"}`); w.Code != http.StatusForbidden {
		t.Errorf("explanation status = %d, want 403", w.Code)
	}
	if w, _ := s.json(http.MethodDelete, fmt.Sprintf("/api/exams/%d", sc.exam.ID), data.Token, ""); w.Code != http.StatusForbidden {
		t.Errorf("delete exam status = %d, want 403", w.Code)
	}
}

func TestRolePromotionByAdmin(t *testing.T) {
	s := newTestServer(t)
	sc := seed(s)
	admin := testutil.CreateUser(t, s.db, "root", model.Admin)
	path := fmt.Sprintf("/api/users/%d/role", sc.student.ID)

	if w, _ := s.json(http.MethodPut, path, sc.studentT, `{"role": "teacher"}`); w.Code != http.StatusForbidden {
		t.Errorf("student promoting self status = %d", w.Code)
	}
	if w, _ := s.json(http.MethodPut, path, sc.teacherT, `{"role": "teacher"}`); w.Code != http.StatusForbidden {
		t.Errorf("teacher promoting status = %d", w.Code)
	}
	if w, _ := s.json(http.MethodPut, path, s.login(admin), `{"role": "wizard"}`); w.Code != http.StatusBadRequest {
		t.Errorf("unknown role status = %d", w.Code)
	}
	if w, _ := s.json(http.MethodPut, "/api/users/9999/role", s.login(admin), `{"role": "teacher"}`); w.Code != http.StatusNotFound {
		t.Errorf("unknown user status = %d", w.Code)
	}

	if w, _ := s.json(http.MethodPut, path, s.login(admin), `{"role": "teacher"}`); w.Code != http.StatusOK {
		t.Fatalf("promotion status = %d: %s", w.Code, w.Body.String())
	}
	var stored model.User
	s.db.First(&stored, sc.student.ID)
	if stored.Role != model.Teacher {
		t.Fatalf("role = %q", stored.Role)
	}

	// a fresh token carries the new role
	summary := fmt.Sprintf("/api/exams/%d/results/summary", sc.exam.ID)
	if w, _ := s.json(http.MethodGet, summary, s.login(&stored), ""); w.Code != http.StatusOK {
		t.Errorf("promoted summary status = %d", w.Code)
	}
}
