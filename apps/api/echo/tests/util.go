package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/Daisy2077/ICS4U/apps/api/echo"
	"github.com/Daisy2077/ICS4U/core"
	"github.com/Daisy2077/ICS4U/core/school"
	inmemdb "github.com/Daisy2077/ICS4U/storage/database/inmem"
	testutil "github.com/Daisy2077/ICS4U/tests"
)

var (
	studentRepo school.StudentRepository
	teacherRepo school.TeacherRepository
	courseRepo  school.CourseRepository
	testRepo    school.TestRepository
)

func setup(t *testing.T, opts ...inmemdb.Options) Server {
	t.Helper()

	// set up DB & repos
	db, err := inmemdb.Open(opts...)
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	studentRepo = inmemdb.NewStudentRepository(db)
	teacherRepo = inmemdb.NewTeacherRepository(db)
	courseRepo = inmemdb.NewCourseRepository(db)
	testRepo = inmemdb.NewTestRepository(db)

	// set up services
	conf := &core.Config{TestMode: true}
	svc := school.NewService(conf, studentRepo, teacherRepo, courseRepo, testRepo, nil)

	validate, translator := testutil.NewValidate(t)

	// set up server
	return NewServer(
		ServerDeps{
			Conf:       conf,
			Logger:     core.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags)),
			SchoolSvc:  svc,
			Validate:   validate,
			Translator: translator,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

// nolint
func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

// nolint
func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
