package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Daisy2077/ICS4U/core/school"
	inmemdb "github.com/Daisy2077/ICS4U/storage/database/inmem"
	testutil "github.com/Daisy2077/ICS4U/tests"
)

func Test_testApi_create(t *testing.T) {
	app := setup(t)

	std := testutil.CreateStudent(t, studentRepo, "Ada", "Ilunga", 12, "337913")
	crs := testutil.CreateCourse(t, courseRepo, "ICS4U", "CS", "", 1)

	tests := []httpTest{
		{
			name:   "unknown student",
			method: http.MethodPost, path: "/v1/tests",
			body:     []byte(`{"student_id":"nope","course_id":"` + crs.ID + `","name":"Quiz","date":"2026-02-10","mark":8,"out_of":10}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"student_id": "referenced student does not exist"}),
		},
		{
			name:   "unknown course",
			method: http.MethodPost, path: "/v1/tests",
			body:     []byte(`{"student_id":"` + std.ID + `","course_id":"nope","name":"Quiz","date":"2026-02-10","mark":8,"out_of":10}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"course_id": "referenced course does not exist"}),
		},
		{
			name:   "zero out_of",
			method: http.MethodPost, path: "/v1/tests",
			body:     []byte(`{"student_id":"` + std.ID + `","course_id":"` + crs.ID + `","name":"Quiz","date":"2026-02-10","mark":0,"out_of":0}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"out_of": "this field is required"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			// nothing was written
			all, err := testRepo.QueryAllTests(req.Context())
			if err != nil {
				t.Fatalf("QueryAllTests() failed: %v", err)
			}
			if len(all) != 0 {
				t.Errorf("rejected create persisted a test: %+v", all)
			}
		})
	}

	t.Run("valid with stringified marks", func(t *testing.T) {
		body := []byte(`{"student_id":"` + std.ID + `","course_id":"` + crs.ID + `","name":"Quiz","date":"2026-02-10","mark":"8","out_of":"10"}`)
		req, rec := newRequest(http.MethodPost, "/v1/tests", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var tst school.Test
		if err := json.Unmarshal(rec.Body.Bytes(), &tst); err != nil {
			t.Fatalf("unmarshalling response failed: %v", err)
		}
		if tst.ID == "" || tst.Mark != 8 || tst.OutOf != 10 {
			t.Errorf("unexpected test: %+v", tst)
		}
	})
}

func Test_testApi_update(t *testing.T) {
	app := setup(t)

	std := testutil.CreateStudent(t, studentRepo, "Ada", "Ilunga", 12, "337913")
	crs := testutil.CreateCourse(t, courseRepo, "ICS4U", "CS", "", 1)
	tst := testutil.CreateTest(t, testRepo, std.ID, crs.ID, "Quiz", "2026-02-10", 8, 10)

	t.Run("mark only", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/tests/"+tst.ID, []byte(`{"mark":9}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var got school.Test
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshalling response failed: %v", err)
		}
		if got.Mark != 9 || got.OutOf != 10 || got.Name != "Quiz" {
			t.Errorf("unexpected test: %+v", got)
		}
	})

	t.Run("move to unknown course", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/tests/"+tst.ID, []byte(`{"course_id":"nope"}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"course_id": "referenced course does not exist"}),
		}, rec)
	})
}

func Test_testApi_query_embeddedStorage(t *testing.T) {
	app := setup(t, inmemdb.Options{IDPolicy: school.IDPolicySequential, EmbedTests: true})

	std := testutil.CreateStudent(t, studentRepo, "Ada", "Ilunga", 12, "337913")
	crs := testutil.CreateCourse(t, courseRepo, "ICS4U", "CS", "", 1)
	other := testutil.CreateCourse(t, courseRepo, "MCV4U", "Calc", "", 2)

	// ids issued from a single counter across courses
	t1 := testutil.CreateTest(t, testRepo, std.ID, crs.ID, "Quiz", "2026-06-20", 8, 10)
	t2 := testutil.CreateTest(t, testRepo, std.ID, other.ID, "Quiz", "2026-02-10", 9, 10)
	if t1.ID != "1" || t2.ID != "2" {
		t.Fatalf("ids = %v, %v; want 1, 2", t1.ID, t2.ID)
	}

	// embedded listings order by id, even when dates disagree
	req, rec := newRequest(http.MethodGet, "/v1/tests")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantData: marchallList(t, t1, t2)}, rec)

	// per-course view
	req, rec = newRequest(http.MethodGet, "/v1/courses/"+crs.ID+"/tests")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantData: marchallList(t, t1)}, rec)
}

func Test_testApi_retrieve_destroy(t *testing.T) {
	app := setup(t)

	std := testutil.CreateStudent(t, studentRepo, "Ada", "Ilunga", 12, "337913")
	crs := testutil.CreateCourse(t, courseRepo, "ICS4U", "CS", "", 1)
	tst := testutil.CreateTest(t, testRepo, std.ID, crs.ID, "Quiz", "2026-02-10", 8, 10)

	tests := []httpTest{
		{name: "found", path: "/v1/tests/" + tst.ID, wantData: marchallObj(t, tst)},
		{
			name: "not found", path: "/v1/tests/nope",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "test not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	req, rec := newRequest(http.MethodDelete, "/v1/tests/"+tst.ID)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v, want %v", rec.Code, http.StatusNoContent)
	}

	req, rec = newRequest(http.MethodGet, "/v1/tests/"+tst.ID)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: marchallObj(t, httpErr{Error: "test not found"}),
	}, rec)
}
