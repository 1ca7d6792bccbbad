// Package inmemdb provides mutex-guarded in-memory repositories. It backs the
// unit tests and the zero-dependency dev mode, and is the only backend
// implementing the sequential identifier policy and the embedded-tests layout.
package inmemdb

import (
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/Daisy2077/ICS4U/core/school"
)

type Options struct {
	IDPolicy   school.IDPolicy
	EmbedTests bool // tests live inside their owning course record
}

type (
	DB struct {
		opts    Options
		student *studentTable
		teacher *teacherTable
		course  *courseTable
		test    *testTable
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*school.Student
	}

	teacherTable struct {
		sync.RWMutex
		table map[string]*school.Teacher
	}

	// courseRecord carries the embedded test sequence when Options.EmbedTests
	// is set; the sequence is rewritten whole on every test mutation, like a
	// document store rewriting the parent document.
	courseRecord struct {
		course school.Course
		tests  []school.Test
	}

	courseTable struct {
		sync.RWMutex
		table map[string]*courseRecord
	}

	testTable struct {
		sync.RWMutex
		table map[string]*school.Test
	}
)

func Open(opts ...Options) (*DB, error) {
	db := &DB{
		opts:    Options{IDPolicy: school.IDPolicyUUID},
		student: &studentTable{table: make(map[string]*school.Student)},
		teacher: &teacherTable{table: make(map[string]*school.Teacher)},
		course:  &courseTable{table: make(map[string]*courseRecord)},
		test:    &testTable{table: make(map[string]*school.Test)},
	}
	if len(opts) > 0 {
		db.opts = opts[0]
		if db.opts.IDPolicy == "" {
			db.opts.IDPolicy = school.IDPolicyUUID
		}
	}
	return db, nil
}

// nextID must be called with the owning table's write lock held so the
// sequential max+1 scan and the insert are one critical section here (the
// documented allocation race only exists on engines without such a lock).
func (db *DB) nextID(existingIDs []string) string {
	if db.opts.IDPolicy == school.IDPolicySequential {
		return school.NextSequentialID(existingIDs)
	}
	return uuid.New().String()
}

// idLess orders identifiers numerically when both parse as integers
// (sequential policy), lexicographically otherwise.
func idLess(a, b string) bool {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
