package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edubase/school-service/internal/models"
	"github.com/edubase/school-service/internal/repositories"
)

// mockRepository is an in-memory repositories.Repository for service tests.
type mockRepository struct {
	users   *mockUserRepo
	courses *mockCourseRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:   &mockUserRepo{byID: make(map[string]models.User)},
		courses: &mockCourseRepo{byID: make(map[string]models.Course)},
	}
}

func (m *mockRepository) User() repositories.UserRepository     { return m.users }
func (m *mockRepository) Course() repositories.CourseRepository { return m.courses }
func (m *mockRepository) Ping(ctx context.Context) error        { return nil }
func (m *mockRepository) Close(ctx context.Context) error       { return nil }

func (m *mockRepository) addUser(u models.User) {
	m.users.mu.Lock()
	defer m.users.mu.Unlock()
	m.users.byID[u.ID] = u
}

func (m *mockRepository) addCourse(c models.Course) string {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.courses.mu.Lock()
	defer m.courses.mu.Unlock()
	m.courses.byID[c.ID.Hex()] = c
	return c.ID.Hex()
}

type mockUserRepo struct {
	mu   sync.Mutex
	byID map[string]models.User
}

func (r *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *mockUserRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			u := u
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *mockUserRepo) List(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0, len(r.byID))
	for _, u := range r.byID {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (r *mockUserRepo) ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0)
	for _, u := range r.byID {
		if u.Role == role {
			u := u
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; ok {
		return repositories.ErrDuplicateKey
	}
	r.byID[user.ID] = *user
	return nil
}

func (r *mockUserRepo) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Role = role
	r.byID[id] = u
	return nil
}

func (r *mockUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byID[id]
	return ok, nil
}

type mockCourseRepo struct {
	mu   sync.Mutex
	byID map[string]models.Course
}

func (r *mockCourseRepo) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *course
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	r.byID[c.ID.Hex()] = c
	return &c, nil
}

func (r *mockCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *mockCourseRepo) List(ctx context.Context) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Course, 0, len(r.byID))
	for _, c := range r.byID {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r *mockCourseRepo) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Course, 0)
	for _, c := range r.byID {
		if c.TeacherID == teacherID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *mockCourseRepo) ListByStudent(ctx context.Context, studentID string) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Course, 0)
	for _, c := range r.byID {
		if _, ok := enrollmentIndex(c.Students, studentID); ok {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *mockCourseRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *mockCourseRepo) AddEnrollment(ctx context.Context, courseID string, enrollment models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[courseID]
	if !ok {
		return repositories.ErrNotFound
	}
	if _, ok := enrollmentIndex(c.Students, enrollment.StudentID); ok {
		return repositories.ErrDuplicateEnrollment
	}
	c.Students = append(c.Students, enrollment)
	r.byID[courseID] = c
	return nil
}

func (r *mockCourseRepo) RemoveEnrollment(ctx context.Context, courseID, studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[courseID]
	if !ok {
		return repositories.ErrNotFound
	}
	if i, ok := enrollmentIndex(c.Students, studentID); ok {
		c.Students = append(c.Students[:i], c.Students[i+1:]...)
		r.byID[courseID] = c
	}
	return nil
}

func (r *mockCourseRepo) UpdateScores(ctx context.Context, courseID, studentID string, attendance, homework, exam float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[courseID]
	if !ok {
		return repositories.ErrNotFound
	}
	i, ok := enrollmentIndex(c.Students, studentID)
	if !ok {
		return repositories.ErrNotFound
	}
	c.Students[i].Attendance = attendance
	c.Students[i].Homework = homework
	c.Students[i].Exam = exam
	r.byID[courseID] = c
	return nil
}

func enrollmentIndex(students []models.Enrollment, studentID string) (int, bool) {
	for i, e := range students {
		if e.StudentID == studentID {
			return i, true
		}
	}
	return 0, false
}
