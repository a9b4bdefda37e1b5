package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Score bounds for the three graded components.
const (
	ScoreMin = 0
	ScoreMax = 10
)

// Enrollment is a student's membership and score record inside one course.
// It only ever exists embedded in a Course document.
//
// The bson field names (asistencia/tareas/examen) are the stored names of the
// attendance/homework/exam scores and must be preserved for compatibility
// with existing course documents.
type Enrollment struct {
	StudentID  string  `json:"student_id" bson:"studentId"`
	Attendance float64 `json:"attendance" bson:"asistencia"`
	Homework   float64 `json:"homework" bson:"tareas"`
	Exam       float64 `json:"exam" bson:"examen"`
}

// UnmarshalBSONValue accepts both the current embedded-document shape and the
// legacy shape where an entry is a bare studentId string. Legacy entries
// decode with all scores at zero.
func (e *Enrollment) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeString:
		rv := bson.RawValue{Type: t, Value: data}
		id, ok := rv.StringValueOK()
		if !ok {
			return fmt.Errorf("enrollment: malformed string entry")
		}
		*e = Enrollment{StudentID: id}
		return nil
	case bson.TypeEmbeddedDocument:
		// Alias avoids recursing back into this method.
		type plain Enrollment
		var p plain
		if err := bson.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("enrollment: %w", err)
		}
		*e = Enrollment(p)
		return nil
	default:
		return fmt.Errorf("enrollment: unexpected bson type %s", t)
	}
}

// Course owns its enrollment list; teacherId is a weak reference into the
// users collection and is never cascaded.
//
// Stored shape: courses/{id} = {name, teacherId, createdAt, students: [...]}.
type Course struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	TeacherID string             `json:"teacher_id" bson:"teacherId"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
	Students  []Enrollment       `json:"students" bson:"students,omitempty"`

	// Resolved via the directory when listing; not stored.
	TeacherName string `json:"teacher_name,omitempty" bson:"-"`
}

// EnrollmentFor returns the enrollment for studentID, if present.
func (c *Course) EnrollmentFor(studentID string) (Enrollment, bool) {
	for _, e := range c.Students {
		if e.StudentID == studentID {
			return e, true
		}
	}
	return Enrollment{}, false
}
