package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

const testPayload = `{
	"branches": [
		{"branchId": 1, "name": "Thăng Long Hà Nội", "address": "25 Lê Duẩn, Hà Nội"},
		{"branchId": 2, "name": "Thăng Long Đà Nẵng", "address": "10 Bạch Đằng, Đà Nẵng"}
	],
	"grades": [
		{"gradeId": 7, "code": 10, "name": "Lớp 10"},
		{"gradeId": 8, "code": 11, "name": "Lớp 11"}
	],
	"classes": [
		{
			"classId": 100, "name": "Toán 10A", "branchId": 1, "gradeId": 7,
			"subject": {"name": "Toán"}, "fee": 500000,
			"classSchedules": [
				{"dayOfWeek": 1, "lessonSlot": {"name": "Ca 1", "startTime": "18:00", "endTime": "19:30"}, "room": {"name": "P201"}},
				{"dayOfWeek": 7, "lessonSlot": {"name": "Ca 2", "startTime": "08:00", "endTime": "09:30"}, "room": {"name": "P202"}}
			],
			"startDate": "2026-09-01", "endDate": "2026-12-31", "status": "OPEN"
		},
		{
			"classId": 101, "name": "Văn 10A", "branchId": 1, "gradeId": 7,
			"subject": {"name": "Ngữ Văn"}, "fee": 450000,
			"classSchedules": [], "startDate": "2026-09-01", "endDate": "2026-12-31", "status": "OPEN"
		}
	],
	"teachers": [
		{
			"user": {"fullName": "Nguyễn Văn A"}, "qualification": "Thạc sĩ", "experienceYears": 8,
			"teacherSubjects": [{"subject": {"name": "Toán"}}],
			"teachingAssignments": [{"classId": 100}]
		},
		{
			"user": {"fullName": "Trần Thị B"}, "qualification": "Cử nhân", "experienceYears": 3,
			"teacherSubjects": [{"subject": {"name": "Tiếng Anh"}}],
			"teachingAssignments": [{"classId": 999}]
		}
	],
	"holidays": [{"name": "Quốc Khánh", "description": "Nghỉ 2/9"}],
	"semesters": [{"name": "Học kì 1"}]
}`

func newTestCache(t *testing.T, payload string) *Cache {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return NewCache(NewClient(srv.URL, nil), nopLogger{})
}

func TestAccessors(t *testing.T) {
	c := newTestCache(t, testPayload)
	ctx := context.Background()

	branches := c.GetAllBranches(ctx)
	if len(branches) != 2 || branches[0] != "25 Lê Duẩn, Hà Nội" {
		t.Errorf("branches = %v", branches)
	}

	grades := c.GetAllGrades(ctx)
	if len(grades) != 2 || grades[0] != "10" {
		t.Errorf("grades = %v", grades)
	}

	subjects := c.GetAllSubjects(ctx)
	if len(subjects) != 2 {
		t.Errorf("subjects = %v", subjects)
	}
}

func TestDefaultsWhenUpstreamEmpty(t *testing.T) {
	c := newTestCache(t, `{}`)
	ctx := context.Background()

	if branches := c.GetAllBranches(ctx); len(branches) != 1 || branches[0] != "[Đang cập nhật]" {
		t.Errorf("branches = %v", branches)
	}
	if grades := c.GetAllGrades(ctx); len(grades) != 3 || grades[0] != "10" {
		t.Errorf("grades = %v", grades)
	}
}

func TestFuzzyBranchMatching(t *testing.T) {
	c := newTestCache(t, testPayload)
	ctx := context.Background()

	if !c.CheckValidBranch(ctx, "hà nội") {
		t.Error("name substring must match")
	}
	if !c.CheckValidBranch(ctx, "25 Lê Duẩn, Hà Nội") {
		t.Error("address must match")
	}
	if !c.CheckValidBranch(ctx, "em muốn học ở Thăng Long Đà Nẵng ạ") {
		t.Error("reverse substring must match")
	}
	if c.CheckValidBranch(ctx, "Cần Thơ") {
		t.Error("unknown branch must not match")
	}
}

func TestFuzzyGradeMatching(t *testing.T) {
	c := newTestCache(t, testPayload)
	ctx := context.Background()

	for _, q := range []string{"10", "Lớp 10", "khối 10"} {
		if !c.CheckValidGrade(ctx, q) {
			t.Errorf("grade query %q must match", q)
		}
	}
	if c.CheckValidGrade(ctx, "12") {
		t.Error("grade 12 is not in the catalog")
	}
}

func TestGetFilteredData(t *testing.T) {
	c := newTestCache(t, testPayload)
	ctx := context.Background()

	data := c.GetFilteredData(ctx, "hà nội", "10", "")
	if data.Message != "" {
		t.Fatalf("unexpected message: %q", data.Message)
	}
	if data.QueryContext == nil || data.QueryContext.Branch != "Thăng Long Hà Nội" {
		t.Errorf("query context = %+v", data.QueryContext)
	}
	if len(data.Classes) != 2 {
		t.Fatalf("classes = %d, want 2", len(data.Classes))
	}
	if len(data.Teachers) != 1 || data.Teachers[0].Name != "Nguyễn Văn A" {
		t.Errorf("teachers = %+v", data.Teachers)
	}
	if len(data.Holidays) != 1 || !strings.Contains(data.Holidays[0], "Quốc Khánh") {
		t.Errorf("holidays = %v", data.Holidays)
	}

	// dayOfWeek 1 -> Thứ 2, 7 -> Chủ Nhật
	sched := data.Classes[0].Schedules
	if len(sched) != 2 {
		t.Fatalf("schedules = %v", sched)
	}
	if !strings.HasPrefix(sched[0], "Thứ 2 - Ca 1 (18:00-19:30) tại P201") {
		t.Errorf("schedule[0] = %q", sched[0])
	}
	if !strings.HasPrefix(sched[1], "Chủ Nhật") {
		t.Errorf("schedule[1] = %q", sched[1])
	}
}

func TestGetFilteredDataSubjectFilter(t *testing.T) {
	c := newTestCache(t, testPayload)
	data := c.GetFilteredData(context.Background(), "hà nội", "10", "toán")

	if len(data.Classes) != 1 || data.Classes[0].Name != "Toán 10A" {
		t.Errorf("classes = %+v", data.Classes)
	}
}

func TestGetFilteredDataNotFound(t *testing.T) {
	c := newTestCache(t, testPayload)
	ctx := context.Background()

	if data := c.GetFilteredData(ctx, "Cần Thơ", "10", ""); !strings.Contains(data.Message, "Cần Thơ") {
		t.Errorf("branch miss message = %q", data.Message)
	}
	if data := c.GetFilteredData(ctx, "hà nội", "12", ""); !strings.Contains(data.Message, "12") {
		t.Errorf("grade miss message = %q", data.Message)
	}
	// grade 11 resolves but has no classes
	if data := c.GetFilteredData(ctx, "hà nội", "11", ""); data.Message == "" {
		t.Error("expected no-classes message")
	}
}

func TestFormatDay(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{float64(1), "Thứ 2"},
		{float64(6), "Thứ 7"},
		{float64(7), "Chủ Nhật"},
		{"3", "Thứ 4"},
		{"x", "Thứ x"},
	}
	for _, tt := range tests {
		if got := formatDay(tt.in); got != tt.want {
			t.Errorf("formatDay(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
