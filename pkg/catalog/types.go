package catalog

// Payload mirrors the school common-data API response.
type Payload struct {
	Branches  []Branch   `json:"branches"`
	Grades    []Grade    `json:"grades"`
	Classes   []Class    `json:"classes"`
	Teachers  []Teacher  `json:"teachers"`
	Holidays  []Holiday  `json:"holidays"`
	Semesters []Semester `json:"semesters"`
}

type Branch struct {
	BranchId int    `json:"branchId"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

type Grade struct {
	GradeId int    `json:"gradeId"`
	Code    int    `json:"code"`
	Name    string `json:"name"`
}

type Subject struct {
	Name string `json:"name"`
}

type LessonSlot struct {
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Room struct {
	Name string `json:"name"`
}

type ClassSchedule struct {
	DayOfWeek  interface{} `json:"dayOfWeek"`
	LessonSlot *LessonSlot `json:"lessonSlot"`
	Room       *Room       `json:"room"`
}

type Class struct {
	ClassId   int             `json:"classId"`
	Name      string          `json:"name"`
	BranchId  int             `json:"branchId"`
	GradeId   int             `json:"gradeId"`
	Subject   *Subject        `json:"subject"`
	Fee       float64         `json:"fee"`
	Schedules []ClassSchedule `json:"classSchedules"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Status    string          `json:"status"`
}

type TeacherUser struct {
	FullName string `json:"fullName"`
}

type TeacherSubject struct {
	Subject *Subject `json:"subject"`
}

type TeachingAssignment struct {
	ClassId int `json:"classId"`
}

type Teacher struct {
	User            TeacherUser          `json:"user"`
	Qualification   string               `json:"qualification"`
	ExperienceYears int                  `json:"experienceYears"`
	Subjects        []TeacherSubject     `json:"teacherSubjects"`
	Assignments     []TeachingAssignment `json:"teachingAssignments"`
}

type Holiday struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Semester struct {
	Name string `json:"name"`
}

// --- Filtered query result ---

// ClassInfo is a class flattened for prompt consumption, with schedule
// lines already formatted in Vietnamese.
type ClassInfo struct {
	Id        int      `json:"id"`
	Name      string   `json:"name"`
	Subject   string   `json:"subject"`
	Fee       float64  `json:"fee"`
	Schedules []string `json:"schedules"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Status    string   `json:"status"`
}

type TeacherInfo struct {
	Name            string   `json:"name"`
	Qualification   string   `json:"qualification"`
	ExperienceYears int      `json:"experience"`
	Subjects        []string `json:"subjects"`
}

type QueryContext struct {
	Branch  string `json:"branch"`
	Address string `json:"address"`
	Grade   string `json:"grade"`
}

// FilteredData is the structured answer to a (branch, grade, subject?)
// query. Message is set instead of data when nothing matched.
type FilteredData struct {
	QueryContext *QueryContext `json:"query_context,omitempty"`
	Classes      []ClassInfo   `json:"classes_found,omitempty"`
	Teachers     []TeacherInfo `json:"teachers,omitempty"`
	Holidays     []string      `json:"holidays,omitempty"`
	Semesters    []string      `json:"semesters,omitempty"`
	Message      string        `json:"message,omitempty"`
}
