package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"admissions-chatbot-be/internal/pkg/logger"
)

const payloadKey = "catalog:payload"

// Cache holds the school catalog in process memory. The payload is
// loaded once (startup or first use) and kept until Refresh.
type Cache struct {
	client *Client
	store  *gocache.Cache
	log    logger.ILogger
}

func NewCache(client *Client, log logger.ILogger) *Cache {
	return &Cache{
		client: client,
		store:  gocache.New(gocache.NoExpiration, 0),
		log:    log,
	}
}

// Refresh forces a reload from upstream.
func (c *Cache) Refresh(ctx context.Context) error {
	payload, err := c.client.FetchAll(ctx)
	if err != nil {
		return err
	}
	c.store.Set(payloadKey, payload, gocache.NoExpiration)
	c.log.Info("catalog", "catalog refreshed", map[string]interface{}{
		"branches": len(payload.Branches),
		"grades":   len(payload.Grades),
		"classes":  len(payload.Classes),
	})
	return nil
}

// payload returns the cached catalog, fetching on first use. A fetch
// failure yields an empty payload so callers fall back to defaults.
func (c *Cache) payload(ctx context.Context) *Payload {
	if v, ok := c.store.Get(payloadKey); ok {
		return v.(*Payload)
	}
	payload, err := c.client.FetchAll(ctx)
	if err != nil {
		c.log.Error("catalog", "catalog fetch failed", map[string]interface{}{"error": err.Error()})
		return &Payload{}
	}
	c.store.Set(payloadKey, payload, gocache.NoExpiration)
	return payload
}

// GetAllBranches lists branch addresses for clarification options.
// Falls back to a placeholder when the upstream has nothing.
func (c *Cache) GetAllBranches(ctx context.Context) []string {
	p := c.payload(ctx)
	if len(p.Branches) == 0 {
		return []string{"[Đang cập nhật]"}
	}
	out := make([]string, 0, len(p.Branches))
	for _, b := range p.Branches {
		out = append(out, b.Address)
	}
	return out
}

// GetAllGrades lists grade codes. Defaults to the three school grades
// when the upstream has nothing.
func (c *Cache) GetAllGrades(ctx context.Context) []string {
	p := c.payload(ctx)
	if len(p.Grades) == 0 {
		return []string{"10", "11", "12"}
	}
	out := make([]string, 0, len(p.Grades))
	for _, g := range p.Grades {
		out = append(out, strconv.Itoa(g.Code))
	}
	return out
}

// GetAllSubjects collects distinct subject names across classes.
func (c *Cache) GetAllSubjects(ctx context.Context) []string {
	p := c.payload(ctx)
	seen := map[string]bool{}
	var out []string
	for _, class := range p.Classes {
		if class.Subject != nil && class.Subject.Name != "" && !seen[class.Subject.Name] {
			seen[class.Subject.Name] = true
			out = append(out, class.Subject.Name)
		}
	}
	sort.Strings(out)
	return out
}

// CheckValidBranch reports whether the user's wording matches any
// branch by name or address, substring either direction.
func (c *Cache) CheckValidBranch(ctx context.Context, branchName string) bool {
	p := c.payload(ctx)
	return resolveBranch(p.Branches, branchName) != nil
}

// CheckValidGrade reports whether the user's wording matches any grade
// code or display name.
func (c *Cache) CheckValidGrade(ctx context.Context, gradeName string) bool {
	p := c.payload(ctx)
	return resolveGrade(p.Grades, gradeName) != nil
}

func resolveBranch(branches []Branch, query string) *Branch {
	q := strings.ToLower(query)
	for i := range branches {
		name := strings.ToLower(branches[i].Name)
		addr := strings.ToLower(branches[i].Address)
		if strings.Contains(name, q) || strings.Contains(q, name) ||
			strings.Contains(addr, q) || strings.Contains(q, addr) {
			return &branches[i]
		}
	}
	return nil
}

func resolveGrade(grades []Grade, query string) *Grade {
	for i := range grades {
		code := strconv.Itoa(grades[i].Code)
		if strings.Contains(query, code) || strings.Contains(code, query) ||
			strings.Contains(grades[i].Name, query) {
			return &grades[i]
		}
	}
	return nil
}

// formatDay turns the upstream dayOfWeek code into Vietnamese.
// Code n means "Thứ n+1"; the eighth day is Sunday.
func formatDay(dayCode interface{}) string {
	var val int
	switch v := dayCode.(type) {
	case float64: // JSON numbers decode as float64
		val = int(v)
	case int:
		val = v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Sprintf("Thứ %s", v)
		}
		val = n
	default:
		return fmt.Sprintf("Thứ %v", dayCode)
	}
	display := val + 1
	if display == 8 {
		return "Chủ Nhật"
	}
	return fmt.Sprintf("Thứ %d", display)
}

// GetFilteredData assembles everything relevant to a resolved
// (branch, grade, optional subject): matching classes with formatted
// schedules, their teachers, plus global holidays and semesters.
// Lookup misses come back as a Message, never an error.
func (c *Cache) GetFilteredData(ctx context.Context, branch, grade, subject string) *FilteredData {
	p := c.payload(ctx)
	if len(p.Branches) == 0 && len(p.Grades) == 0 && len(p.Classes) == 0 {
		return &FilteredData{Message: "Không thể kết nối đến hệ thống."}
	}

	branchInfo := resolveBranch(p.Branches, branch)
	if branchInfo == nil {
		return &FilteredData{Message: fmt.Sprintf("Không tìm thấy chi nhánh nào khớp với '%s'.", branch)}
	}
	gradeInfo := resolveGrade(p.Grades, grade)
	if gradeInfo == nil {
		return &FilteredData{Message: fmt.Sprintf("Không tìm thấy khối nào khớp với '%s'.", grade)}
	}

	var classes []ClassInfo
	relevantIds := map[int]bool{}
	for _, class := range p.Classes {
		if class.BranchId != branchInfo.BranchId || class.GradeId != gradeInfo.GradeId {
			continue
		}
		if subject != "" {
			name := ""
			if class.Subject != nil {
				name = class.Subject.Name
			}
			sLower := strings.ToLower(subject)
			nLower := strings.ToLower(name)
			if !strings.Contains(nLower, sLower) && !strings.Contains(sLower, nLower) {
				continue
			}
		}

		schedules := make([]string, 0, len(class.Schedules))
		for _, s := range class.Schedules {
			slot := s.LessonSlot
			if slot == nil {
				slot = &LessonSlot{}
			}
			room := s.Room
			if room == nil {
				room = &Room{}
			}
			schedules = append(schedules, fmt.Sprintf("%s - %s (%s-%s) tại %s",
				formatDay(s.DayOfWeek), slot.Name, slot.StartTime, slot.EndTime, room.Name))
		}

		subjectName := ""
		if class.Subject != nil {
			subjectName = class.Subject.Name
		}
		classes = append(classes, ClassInfo{
			Id:        class.ClassId,
			Name:      class.Name,
			Subject:   subjectName,
			Fee:       class.Fee,
			Schedules: schedules,
			StartDate: class.StartDate,
			EndDate:   class.EndDate,
			Status:    class.Status,
		})
		relevantIds[class.ClassId] = true
	}

	var teachers []TeacherInfo
	for _, t := range p.Teachers {
		matched := false
		for _, assign := range t.Assignments {
			if relevantIds[assign.ClassId] {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		subjects := make([]string, 0, len(t.Subjects))
		for _, ts := range t.Subjects {
			if ts.Subject != nil {
				subjects = append(subjects, ts.Subject.Name)
			}
		}
		teachers = append(teachers, TeacherInfo{
			Name:            t.User.FullName,
			Qualification:   t.Qualification,
			ExperienceYears: t.ExperienceYears,
			Subjects:        subjects,
		})
	}

	holidays := make([]string, 0, len(p.Holidays))
	for _, h := range p.Holidays {
		holidays = append(holidays, fmt.Sprintf("%s (%s)", h.Name, h.Description))
	}
	semesters := make([]string, 0, len(p.Semesters))
	for _, s := range p.Semesters {
		semesters = append(semesters, s.Name)
	}

	result := &FilteredData{
		QueryContext: &QueryContext{
			Branch:  branchInfo.Name,
			Address: branchInfo.Address,
			Grade:   gradeInfo.Name,
		},
		Classes:   classes,
		Teachers:  teachers,
		Holidays:  holidays,
		Semesters: semesters,
	}
	if len(classes) == 0 {
		result.Message = "Hiện tại chưa có lớp học nào mở cho Khối và Chi nhánh này."
	}
	return result
}
