package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Daisy2077/ICS4U/core/school"
	testutil "github.com/Daisy2077/ICS4U/tests"
)

func Test_courseApi_query(t *testing.T) {
	app := setup(t)

	mcv := testutil.CreateCourse(t, courseRepo, "MCV4U", "Calculus", "", 2)
	eng := testutil.CreateCourse(t, courseRepo, "ENG4U", "English", "", 1)
	ics := testutil.CreateCourse(t, courseRepo, "ICS4U", "Computer Science", "", 1)

	// code ascending
	req, rec := newRequest(http.MethodGet, "/v1/courses")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantData: marchallList(t, eng, ics, mcv)}, rec)
}

func Test_courseApi_create(t *testing.T) {
	app := setup(t)

	tch := testutil.CreateTeacher(t, teacherRepo, "Papy", "Mukeba", "CS")

	tests := []httpTest{
		{
			name:   "invalid code",
			method: http.MethodPost, path: "/v1/courses",
			body:     []byte(`{"code":"4UICS","name":"CS","semester":1}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"code": "must be a valid course code"}),
		},
		{
			name:   "unknown teacher",
			method: http.MethodPost, path: "/v1/courses",
			body:     []byte(`{"code":"ICS4U","name":"CS","teacher_id":"nope","semester":1}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"teacher_id": "referenced teacher does not exist"}),
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
		body := []byte(`{"code":"ICS4U","name":"Computer Science","teacher_id":"` + tch.ID + `","semester":1,"room":"Lab 2"}`)
		req, rec := newRequest(http.MethodPost, "/v1/courses", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var crs school.Course
		if err := json.Unmarshal(rec.Body.Bytes(), &crs); err != nil {
			t.Fatalf("unmarshalling response failed: %v", err)
		}
		if crs.ID == "" || crs.Code != "ICS4U" || crs.TeacherID != tch.ID || crs.Semester != 1 {
			t.Errorf("unexpected course: %+v", crs)
		}
	})
}

func Test_courseApi_update_detachTeacher(t *testing.T) {
	app := setup(t)

	tch := testutil.CreateTeacher(t, teacherRepo, "Papy", "Mukeba", "CS")
	crs := testutil.CreateCourse(t, courseRepo, "ICS4U", "CS", tch.ID, 1)

	// explicit empty teacher_id detaches the teacher
	req, rec := newRequest(http.MethodPut, "/v1/courses/"+crs.ID, []byte(`{"teacher_id":""}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var got school.Course
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshalling response failed: %v", err)
	}
	if got.TeacherID != "" {
		t.Errorf("TeacherID = %v, want empty", got.TeacherID)
	}
	if got.Code != "ICS4U" {
		t.Errorf("update changed untouched fields: %+v", got)
	}

	// the teacher can now be deleted
	req, rec = newRequest(http.MethodDelete, "/v1/teachers/"+tch.ID)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}
}

func Test_courseApi_destroy(t *testing.T) {
	app := setup(t)

	std := testutil.CreateStudent(t, studentRepo, "Ada", "Ilunga", 12, "337913")
	crs := testutil.CreateCourse(t, courseRepo, "ICS4U", "CS", "", 1)
	tst := testutil.CreateTest(t, testRepo, std.ID, crs.ID, "Quiz", "2026-02-10", 8, 10)

	t.Run("course with tests is protected", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/courses/"+crs.ID)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "course still has tests recorded"}),
		}, rec)
	})

	t.Run("removing the tests unblocks it", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/tests/"+tst.ID)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v, want %v", rec.Code, http.StatusNoContent)
		}

		req, rec = newRequest(http.MethodDelete, "/v1/courses/"+crs.ID)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}
	})
}

func Test_teacherApi_destroy_protected(t *testing.T) {
	app := setup(t)

	tch := testutil.CreateTeacher(t, teacherRepo, "Papy", "Mukeba", "CS")
	testutil.CreateCourse(t, courseRepo, "ICS4U", "CS", tch.ID, 1)

	req, rec := newRequest(http.MethodDelete, "/v1/teachers/"+tch.ID)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, httpErr{Error: "teacher is still assigned to courses"}),
	}, rec)
}
