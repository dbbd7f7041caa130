package governance

import "testing"

// testPolicy mirrors a small hospital role hierarchy: nurses clear
// clinical codes (phi) routinely but not patient identifiers (pii);
// doctors and admins clear both, up to the restricted tier.
func testPolicy() Policy {
	return Policy{
		DefaultRole: "patient",
		Roles: map[string]RoleConfig{
			"patient":    {MaxClassification: ClassificationInternal},
			"researcher": {MaxClassification: ClassificationInternal, Inherits: []string{"patient"}},
			"nurse":      {MaxClassification: ClassificationConfidential, AllowedTags: []Tag{TagPHI}, Inherits: []string{"researcher"}},
			"doctor":     {MaxClassification: ClassificationRestricted, AllowedTags: []Tag{TagPII, TagPHI}, Inherits: []string{"nurse"}},
			"admin":      {MaxClassification: ClassificationRestricted, AllowedTags: []Tag{TagPII, TagPHI}, Inherits: []string{"doctor"}},
		},
	}
}

func TestPolicy_Allows(t *testing.T) {
	p := testPolicy()

	tests := []struct {
		name string
		role string
		fc   FieldClassification
		want bool
	}{
		{"nurse denied confidential pii", "nurse", FieldClassification{Path: "ssn", Classification: ClassificationConfidential, Tags: []Tag{TagPII}}, false},
		{"nurse sees confidential phi", "nurse", FieldClassification{Path: "medical.codes.icd10", Classification: ClassificationConfidential, Tags: []Tag{TagPHI}}, true},
		{"doctor sees restricted phi", "doctor", FieldClassification{Path: "medical.codes.restrictedPanel", Classification: ClassificationRestricted, Tags: []Tag{TagPHI}}, true},
		{"patient denied confidential", "patient", FieldClassification{Path: "ssn", Classification: ClassificationConfidential, Tags: []Tag{TagPII}}, false},
		{"unknown role falls through", "ghost", FieldClassification{Path: "x", Classification: ClassificationPublic}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Allows([]string{tt.role}, tt.fc); got != tt.want {
				t.Errorf("Allows(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestPolicy_Inheritance(t *testing.T) {
	p := testPolicy()
	// admin inherits doctor -> nurse -> researcher -> patient, so it
	// should be allowed everything doctor is allowed.
	fc := FieldClassification{Path: "medical.codes.restrictedPanel", Classification: ClassificationRestricted, Tags: []Tag{TagPHI}}
	if !p.Allows([]string{"admin"}, fc) {
		t.Fatal("expected admin to inherit doctor's restricted phi clearance")
	}
}

func TestValidateDataAccess_Partitions(t *testing.T) {
	p := testPolicy()
	fields := []FieldClassification{
		{Path: "title", Classification: ClassificationPublic},
		{Path: "ssn", Classification: ClassificationConfidential, Tags: []Tag{TagPII}},
		{Path: "medical.codes.icd10", Classification: ClassificationConfidential, Tags: []Tag{TagPHI}},
	}

	allowed, denied := ValidateDataAccess(p, []string{"nurse"}, fields)

	if len(allowed) != 2 {
		t.Errorf("expected 2 allowed paths, got %d: %v", len(allowed), allowed)
	}
	if len(denied) != 1 || denied[0] != "ssn" {
		t.Errorf("expected ssn denied, got %v", denied)
	}
}

func TestClassification_AtLeast(t *testing.T) {
	if !ClassificationRestricted.AtLeast(ClassificationConfidential) {
		t.Error("restricted should be at least confidential")
	}
	if ClassificationPublic.AtLeast(ClassificationInternal) {
		t.Error("public should not be at least internal")
	}
}
