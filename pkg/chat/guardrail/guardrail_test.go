package guardrail

import "testing"

func TestScan(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   SlotKind
	}{
		{"grade phrasing", "Em đang học khối nào vậy?", SlotGrade},
		{"branch phrasing", "Em muốn học ở chi nhánh nào?", SlotBranch},
		{"subject phrasing", "Em quan tâm môn nào?", SlotSubject},
		{"case insensitive", "Em chọn KHỐI NÀO?", SlotGrade},
		{"plain answer matches nothing", "Trung tâm thành lập năm 2010.", SlotNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scan(tt.answer); got != tt.want {
				t.Errorf("Scan(%q) = %q, want %q", tt.answer, got, tt.want)
			}
		})
	}
}

func TestScanPriorityGradeOverBranchOverSubject(t *testing.T) {
	answer := "Em học khối nào và ở chi nhánh nào, thích môn nào?"
	if got := Scan(answer); got != SlotGrade {
		t.Errorf("multi-match must pick grade, got %q", got)
	}

	answer = "Em ở chi nhánh nào và thích môn nào?"
	if got := Scan(answer); got != SlotBranch {
		t.Errorf("branch outranks subject, got %q", got)
	}
}
