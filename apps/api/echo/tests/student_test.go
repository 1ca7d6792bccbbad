package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	echoapi "github.com/Daisy2077/ICS4U/apps/api/echo"
	"github.com/Daisy2077/ICS4U/core/school"
	testutil "github.com/Daisy2077/ICS4U/tests"
)

func Test_studentApi_query(t *testing.T) {
	app := setup(t)

	empty := marchallList(t, []interface{}{}...)

	req, rec := newRequest(http.MethodGet, "/v1/students")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantData: empty}, rec)

	zoe := testutil.CreateStudent(t, studentRepo, "Zoe", "Banza", 9, "1")
	amy := testutil.CreateStudent(t, studentRepo, "Amy", "Abalo", 11, "2")

	req, rec = newRequest(http.MethodGet, "/v1/students")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantData: marchallList(t, amy, zoe)}, rec)
}

func Test_studentApi_create(t *testing.T) {
	app := setup(t)

	requiredErrs := map[string]string{
		"first_name":     "this field is required",
		"last_name":      "this field is required",
		"grade":          "this field is required",
		"student_number": "this field is required",
	}

	tests := []httpTest{
		{
			name: "empty payload", method: http.MethodPost, path: "/v1/students", body: []byte(`{}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, requiredErrs),
		},
		{
			name:   "grade out of range",
			method: http.MethodPost, path: "/v1/students",
			body:     []byte(`{"first_name":"Ada","last_name":"Ilunga","grade":13,"student_number":"337913"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"grade": "grade must be 12 or less"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("valid", func(t *testing.T) {
		body := []byte(`{"first_name":"Ada","last_name":"Ilunga","grade":12,"student_number":"337913","homeroom":"204"}`)
		req, rec := newRequest(http.MethodPost, "/v1/students", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var std school.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &std); err != nil {
			t.Fatalf("unmarshalling response failed: %v", err)
		}
		if std.ID == "" {
			t.Error("response has no id")
		}
		if std.FirstName != "Ada" || std.LastName != "Ilunga" || std.Grade != 12 || std.StudentNumber != "337913" {
			t.Errorf("unexpected student: %+v", std)
		}
	})

	t.Run("stringified grade accepted", func(t *testing.T) {
		body := []byte(`{"first_name":"Sam","last_name":"Tshilobo","grade":"11","student_number":"340021"}`)
		req, rec := newRequest(http.MethodPost, "/v1/students", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var std school.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &std); err != nil {
			t.Fatalf("unmarshalling response failed: %v", err)
		}
		if std.Grade != 11 {
			t.Errorf("Grade = %v, want 11", std.Grade)
		}
	})
}

func Test_studentApi_retrieve(t *testing.T) {
	app := setup(t)

	std := testutil.CreateStudent(t, studentRepo, "Ada", "Ilunga", 12, "337913")

	tests := []httpTest{
		{name: "found", path: "/v1/students/" + std.ID, wantData: marchallObj(t, std)},
		{
			name: "not found", path: "/v1/students/nope",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_update(t *testing.T) {
	app := setup(t)

	std := testutil.CreateStudent(t, studentRepo, "Ada", "Ilunga", 11, "337913")

	// partial payload: only the grade moves
	req, rec := newRequest(http.MethodPut, "/v1/students/"+std.ID, []byte(`{"grade":12}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var got school.Student
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshalling response failed: %v", err)
	}
	if got.Grade != 12 {
		t.Errorf("Grade = %v, want 12", got.Grade)
	}
	if got.FirstName != "Ada" || got.LastName != "Ilunga" || got.StudentNumber != "337913" {
		t.Errorf("update changed untouched fields: %+v", got)
	}

	// unknown student
	req, rec = newRequest(http.MethodPut, "/v1/students/nope", []byte(`{"grade":12}`))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: marchallObj(t, httpErr{Error: "student not found"}),
	}, rec)
}

func Test_studentApi_destroy(t *testing.T) {
	app := setup(t)

	std := testutil.CreateStudent(t, studentRepo, "Ada", "Ilunga", 12, "337913")
	blocked := testutil.CreateStudent(t, studentRepo, "Sam", "Tshilobo", 11, "340021")
	crs := testutil.CreateCourse(t, courseRepo, "ICS4U", "CS", "", 1)
	testutil.CreateTest(t, testRepo, blocked.ID, crs.ID, "Quiz", "2026-02-10", 8, 10)

	t.Run("free student deletes", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/students/"+std.ID)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v, want %v", rec.Code, http.StatusNoContent)
		}
	})

	t.Run("student with tests is protected", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/students/"+blocked.ID)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "student still has tests recorded"}),
		}, rec)
	})
}

func Test_studentApi_tests(t *testing.T) {
	app := setup(t)

	std := testutil.CreateStudent(t, studentRepo, "Ada", "Ilunga", 12, "337913")
	crs := testutil.CreateCourse(t, courseRepo, "ICS4U", "CS", "", 1)
	quiz := testutil.CreateTest(t, testRepo, std.ID, crs.ID, "Quiz", "2026-02-10", 8, 10)
	exam := testutil.CreateTest(t, testRepo, std.ID, crs.ID, "Exam", "2026-06-20", 40, 50)

	tests := []httpTest{
		{name: "listed by date", path: "/v1/students/" + std.ID + "/tests", wantData: marchallList(t, quiz, exam)},
		{
			name: "unknown student", path: "/v1/students/nope/tests",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_average(t *testing.T) {
	app := setup(t)

	std := testutil.CreateStudent(t, studentRepo, "Ada", "Ilunga", 12, "337913")
	crs := testutil.CreateCourse(t, courseRepo, "ICS4U", "CS", "", 1)

	tests := []httpTest{
		{
			name: "no tests averages zero", path: "/v1/students/" + std.ID + "/average",
			wantData: marchallObj(t, echoapi.AverageResponse{StudentID: std.ID, Average: 0}),
		},
		{
			name: "unknown student", path: "/v1/students/nope/average",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("two marks average", func(t *testing.T) {
		testutil.CreateTest(t, testRepo, std.ID, crs.ID, "Quiz 1", "2026-02-10", 8, 10)
		testutil.CreateTest(t, testRepo, std.ID, crs.ID, "Quiz 2", "2026-03-10", 9, 10)

		req, rec := newRequest(http.MethodGet, "/v1/students/"+std.ID+"/average")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantData: marchallObj(t, echoapi.AverageResponse{StudentID: std.ID, Average: 85}),
		}, rec)
	})
}
