package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edubase/school-service/internal/models"
	"github.com/edubase/school-service/internal/repositories"
)

// CourseMongo persists courses with their embedded enrollment arrays.
// Enrollment mutations target a single array element so concurrent edits to
// different students never read-modify-write the whole list.
type CourseMongo struct {
	c *mongo.Collection
}

func NewCourseMongo(db *mongo.Database) repositories.CourseRepository {
	return &CourseMongo{c: db.Collection("courses")}
}

func (r *CourseMongo) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	course.ID = primitive.NewObjectID()
	course.CreatedAt = time.Now().UTC()

	if _, err := r.c.InsertOne(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

func (r *CourseMongo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrNotFound
	}

	var course models.Course
	if err := r.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&course); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &course, nil
}

func (r *CourseMongo) List(ctx context.Context) ([]*models.Course, error) {
	return r.find(ctx, bson.M{})
}

func (r *CourseMongo) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error) {
	return r.find(ctx, bson.M{"teacherId": teacherID})
}

func (r *CourseMongo) ListByStudent(ctx context.Context, studentID string) ([]*models.Course, error) {
	// The second branch matches legacy documents where an entry is the bare
	// studentId string instead of an embedded record.
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"students.studentId": studentID},
		bson.M{"students": studentID},
	}})
}

func (r *CourseMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrNotFound
	}

	res, err := r.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *CourseMongo) AddEnrollment(ctx context.Context, courseID string, enrollment models.Enrollment) error {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return repositories.ErrNotFound
	}

	// The filter only matches when the student has no entry yet, in either
	// the embedded-document or the legacy bare-string shape; the push and
	// the duplicate check are a single atomic operation.
	filter := bson.M{
		"_id":                oid,
		"students.studentId": bson.M{"$ne": enrollment.StudentID},
		"students":           bson.M{"$ne": enrollment.StudentID},
	}
	res, err := r.c.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"students": enrollment}})
	if err != nil {
		return fmt.Errorf("add enrollment: %w", err)
	}
	if res.MatchedCount == 0 {
		exists, err := r.exists(ctx, oid)
		if err != nil {
			return err
		}
		if !exists {
			return repositories.ErrNotFound
		}
		return repositories.ErrDuplicateEnrollment
	}
	return nil
}

func (r *CourseMongo) RemoveEnrollment(ctx context.Context, courseID, studentID string) error {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return repositories.ErrNotFound
	}

	res, err := r.c.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"students": bson.M{"studentId": studentID}}})
	if err != nil {
		return fmt.Errorf("remove enrollment: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		// Nothing pulled: either the student is not enrolled (a no-op) or
		// the entry is a legacy bare string.
		if _, err := r.c.UpdateOne(ctx, bson.M{"_id": oid},
			bson.M{"$pull": bson.M{"students": studentID}}); err != nil {
			return fmt.Errorf("remove legacy enrollment: %w", err)
		}
	}
	return nil
}

func (r *CourseMongo) UpdateScores(ctx context.Context, courseID, studentID string, attendance, homework, exam float64) error {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return repositories.ErrNotFound
	}

	// All three fields land in one $set on one array element; readers never
	// observe a partial triple.
	update := bson.M{"$set": bson.M{
		"students.$[s].asistencia": attendance,
		"students.$[s].tareas":     homework,
		"students.$[s].examen":     exam,
	}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"s.studentId": studentID}},
	})

	res, err := r.c.UpdateOne(ctx, bson.M{"_id": oid}, update, opts)
	if err != nil {
		return fmt.Errorf("update scores: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		// The array filter cannot match a legacy bare-string entry. Upgrade
		// such an entry to the full document shape, scores included.
		legacy, err := r.c.UpdateOne(ctx, bson.M{"_id": oid, "students": studentID},
			bson.M{"$set": bson.M{"students.$": models.Enrollment{
				StudentID:  studentID,
				Attendance: attendance,
				Homework:   homework,
				Exam:       exam,
			}}})
		if err != nil {
			return fmt.Errorf("update legacy scores: %w", err)
		}
		if legacy.ModifiedCount > 0 {
			return nil
		}

		// Either the values were already current or the student is not
		// enrolled; only the latter is an error.
		course, err := r.GetByID(ctx, courseID)
		if err != nil {
			return err
		}
		if _, ok := course.EnrollmentFor(studentID); !ok {
			return repositories.ErrNotFound
		}
	}
	return nil
}

func (r *CourseMongo) exists(ctx context.Context, oid primitive.ObjectID) (bool, error) {
	count, err := r.c.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("course exists: %w", err)
	}
	return count > 0, nil
}

func (r *CourseMongo) find(ctx context.Context, filter bson.M) ([]*models.Course, error) {
	cur, err := r.c.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer cur.Close(ctx)

	var courses []*models.Course
	for cur.Next(ctx) {
		var course models.Course
		if err := cur.Decode(&course); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		courses = append(courses, &course)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return courses, nil
}
