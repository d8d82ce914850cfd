package models

import "testing"

func TestAverageSGPA(t *testing.T) {
	tests := []struct {
		name     string
		odd      float64
		even     float64
		expected float64
	}{
		{"both semesters present", 8.0, 9.0, 8.5},
		{"only odd semester", 9.0, 0, 9.0},
		{"only even semester", 0, 7.0, 7.0},
		{"no results yet", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &StudentProfile{SGPAOdd: tt.odd, SGPAEven: tt.even}
			if got := p.AverageSGPA(); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCohortGender(t *testing.T) {
	if CohortGender(HostelBoys) != GenderMale {
		t.Error("Expected boys hostel cohort to be MALE")
	}
	if CohortGender(HostelGirls) != GenderFemale {
		t.Error("Expected girls hostel cohort to be FEMALE")
	}
}
