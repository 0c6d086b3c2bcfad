package normalize_test

import (
	"reflect"
	"testing"

	"remote-jobs-pipeline/internal/models"
	"remote-jobs-pipeline/internal/normalize"
)

func intp(v int) *int { return &v }

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func fmtIntPtr(p *int) any {
	if p == nil {
		return "nil"
	}
	return *p
}

// ── NormalizeSalary ────────────────────────────────────────────────────────

func TestNormalizeSalary(t *testing.T) {
	cases := []struct {
		name               string
		min, max, interval string
		wantMin, wantMax   *int
	}{
		{"hourly annualized", "50", "60", "hour", intp(104000), intp(124800)},
		{"monthly annualized", "5000", "7000", "monthly", intp(60000), intp(84000)},
		{"yearly untouched", "90000", "120000", "yearly", intp(90000), intp(120000)},
		{"min too small, max kept", "5", "80000", "year", nil, intp(80000)},
		{"min too large, max absent", "5000000", "", "year", nil, nil},
		{"bounds inclusive", "10000", "1000000", "year", intp(10000), intp(1000000)},
		{"both absent", "", "", "year", nil, nil},
		{"unparseable discards range", "competitive", "90000", "year", nil, nil},
		{"decimal hourly", "42.5", "", "hourly", intp(88400), nil},
		{"zero is absent", "0", "95000", "", nil, intp(95000)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gotMin, gotMax := normalize.NormalizeSalary(c.min, c.max, c.interval)
			if !equalIntPtr(gotMin, c.wantMin) || !equalIntPtr(gotMax, c.wantMax) {
				t.Errorf("NormalizeSalary(%q, %q, %q) = (%v, %v), want (%v, %v)",
					c.min, c.max, c.interval,
					fmtIntPtr(gotMin), fmtIntPtr(gotMax), fmtIntPtr(c.wantMin), fmtIntPtr(c.wantMax))
			}
		})
	}
}

// ── Classification ─────────────────────────────────────────────────────────

func TestClassifyCategory(t *testing.T) {
	cases := map[string]string{
		"Senior Data Product Manager":  models.CategoryData,
		"Product Manager, Payments":    models.CategoryProduct,
		"Senior Backend Engineer":      models.CategoryEngineering,
		"Technical Writer":             models.CategoryWriting,
		"Customer Success Lead":        models.CategorySupport,
		"Senior Product Designer":      models.CategoryDesign,
		"Growth Marketing Manager":     models.CategoryMarketing,
		"Online English Tutor":         models.CategoryEducation,
		"Chief Happiness Officer":      models.CategoryEngineering,
		"Machine Learning Scientist":   models.CategoryData,
		"Program Manager, Engineering": models.CategoryProduct,
	}
	for title, want := range cases {
		if got := normalize.ClassifyCategory(title); got != want {
			t.Errorf("ClassifyCategory(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestClassifyExperience(t *testing.T) {
	cases := []struct {
		title, description string
		want               models.Experience
	}{
		{"Junior Frontend Developer", "", models.ExperienceJunior},
		{"Senior Backend Engineer", "", models.ExperienceSenior},
		{"Engineering Manager", "", models.ExperienceLead},
		{"Chief Technology Officer", "", models.ExperienceExecutive},
		{"Backend Engineer", "", models.ExperienceMid},
		{"Backend Engineer", "We want a senior person.", models.ExperienceSenior},
	}
	for _, c := range cases {
		if got := normalize.ClassifyExperience(c.title, c.description); got != c.want {
			t.Errorf("ClassifyExperience(%q, %q) = %q, want %q", c.title, c.description, got, c.want)
		}
	}
}

func TestClassifyExperience_OnlyReadsDescriptionPrefix(t *testing.T) {
	desc := make([]byte, 600)
	for i := range desc {
		desc[i] = 'x'
	}
	tail := string(desc) + " senior"
	if got := normalize.ClassifyExperience("Backend Engineer", tail); got != models.ExperienceMid {
		t.Errorf("keyword beyond 500 chars classified as %q, want mid", got)
	}
}

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
		ok    bool
	}{
		{"Senior Software Engineer", "software engineer", true},
		{"Front-End Developer (React)", "frontend engineer", true},
		{"Fullstack Engineer", "full stack engineer", true},
		{"Site Reliability Engineer", "devops engineer", true},
		{"Staff Data Scientist", "data scientist", true},
		{"ML Engineer", "machine learning engineer", true},
		{"Tech Lead", "engineering manager", true},
		{"Office Coordinator", "", false},
	}
	for _, c := range cases {
		got, ok := normalize.NormalizeTitle(c.title)
		if ok != c.ok || got != c.want {
			t.Errorf("NormalizeTitle(%q) = (%q, %v), want (%q, %v)", c.title, got, ok, c.want, c.ok)
		}
	}
}

func TestNormalizeTitle_FirstListedWins(t *testing.T) {
	// matches both "software engineer" and "backend engineer"
	got, _ := normalize.NormalizeTitle("Backend Software Engineer")
	if got != "software engineer" {
		t.Errorf("got %q, want software engineer", got)
	}
}

func TestRoleCategory(t *testing.T) {
	cases := map[string]string{
		"data scientist":    models.CategoryData,
		"ux designer":       models.CategoryDesign,
		"product manager":   models.CategoryProduct,
		"marketing manager": models.CategoryMarketing,
		"content writer":    models.CategoryWriting,
		"customer success":  models.CategorySupport,
		"software engineer": models.CategoryEngineering,
		"security engineer": models.CategoryEngineering,
	}
	for title, want := range cases {
		if got := normalize.RoleCategory(title); got != want {
			t.Errorf("RoleCategory(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestFirstMatch_Order(t *testing.T) {
	rules := []normalize.Rule[int]{
		{Label: 1, Match: normalize.ContainsAny("go")},
		{Label: 2, Match: normalize.ContainsAny("golang")},
	}
	if got, ok := normalize.FirstMatch(rules, "GOLANG developer"); !ok || got != 1 {
		t.Errorf("FirstMatch = (%d, %v), want (1, true)", got, ok)
	}
	if _, ok := normalize.FirstMatch(rules, "rust"); ok {
		t.Error("FirstMatch on no match should report false")
	}
}

// ── Tech stack and flags ───────────────────────────────────────────────────

func TestExtractTechStack(t *testing.T) {
	// plain substring matching: "django" also yields Go
	got := normalize.ExtractTechStack("We use Python, Django and PostgreSQL on AWS with Docker.")
	want := []string{"Django", "Python", "Go", "PostgreSQL", "AWS", "Docker"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractTechStack = %v, want %v", got, want)
	}
}

func TestExtractTechStack_CappedAtTen(t *testing.T) {
	got := normalize.ExtractTechStack("react next.js vue angular svelte node.js express django flask fastapi python")
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10: %v", len(got), got)
	}
	if got[0] != "React" || got[9] != "FastAPI" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestExtractTechStack_Empty(t *testing.T) {
	if got := normalize.ExtractTechStack(""); len(got) != 0 {
		t.Errorf("ExtractTechStack(\"\") = %v, want empty", got)
	}
}

func TestDetectFlags(t *testing.T) {
	if !normalize.DetectVisaSponsorship("We offer Visa Sponsorship for the right candidate") {
		t.Error("visa sponsorship not detected")
	}
	if normalize.DetectVisaSponsorship("US citizens only") {
		t.Error("visa sponsorship falsely detected")
	}
	if !normalize.DetectAsyncFriendly("Async-first team, work in any timezone") {
		t.Error("async-friendly not detected")
	}
	if normalize.DetectAsyncFriendly("") {
		t.Error("async-friendly detected in empty text")
	}
}

// ── Slugs, text and logos ──────────────────────────────────────────────────

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Senior Go Engineer":  "senior-go-engineer",
		"  C++ / Rust Dev!! ": "c-rust-dev",
		"snake_case_title":    "snake-case-title",
		"--Acme, Inc.--":      "acme-inc",
		"Café Développeur":    "café-développeur",
		"":                    "",
	}
	for in, want := range cases {
		if got := normalize.Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := normalize.Truncate("héllo", 2); got != "hé" {
		t.Errorf("Truncate = %q, want hé", got)
	}
	if got := normalize.Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate = %q, want abc", got)
	}
}

func TestPlainText(t *testing.T) {
	got := normalize.PlainText("<p>Build <b>APIs</b> in Go &amp; Rust</p>")
	if got != "Build APIs in Go & Rust" {
		t.Errorf("PlainText = %q", got)
	}
	if normalize.PlainText("   ") != "" {
		t.Error("PlainText of blank input should be empty")
	}
}

func TestDeriveLogoURL(t *testing.T) {
	cases := []struct {
		website, name, want string
	}{
		{"https://www.stripe.com/jobs", "Stripe", "https://logo.clearbit.com/stripe.com"},
		{"http://careers.acme.io", "Acme Corp", "https://logo.clearbit.com/careers.acme.io"},
		{"https://www.linkedin.com/company/foo", "Foo", "https://logo.clearbit.com/foo.com"},
		{"https://uk.linkedin.com/company/foo", "Foo Bar", ""},
		{"https://indeed.com/cmp/x", "Globex!", "https://logo.clearbit.com/globex.com"},
		{"", "Hooli", "https://logo.clearbit.com/hooli.com"},
		{"", "IO", ""},
		{"", "Averyveryverylongcompanyname", ""},
		{"", "Square Inc", "https://logo.clearbit.com/squareup.com"},
		{"https://www.linkedin.com/company/shippo", "Shippo (Goshippo)", "https://logo.clearbit.com/goshippo.com"},
		{"", "Nucleus Security Labs", "https://logo.clearbit.com/nucleussec.com"},
		{"https://www.example.com", "Hooli", "https://logo.clearbit.com/hooli.com"},
		{"https://jobs.example.com/acme", "Acme Labs", ""},
	}
	for _, c := range cases {
		if got := normalize.DeriveLogoURL(c.website, c.name); got != c.want {
			t.Errorf("DeriveLogoURL(%q, %q) = %q, want %q", c.website, c.name, got, c.want)
		}
	}
}

func TestIsBadLogoURL(t *testing.T) {
	cases := []struct {
		logo string
		want bool
	}{
		{"https://logo.clearbit.com/linkedin.com", true},
		{"https://logo.clearbit.com/uk.linkedin.com", true},
		{"https://logo.clearbit.com/indeed.com", true},
		{"https://logo.clearbit.com/glassdoor.com", true},
		{"https://logo.clearbit.com/example.com", true},
		{"https://cdn.example.com/logo.png", true},
		{"https://logo.clearbit.com/stripe.com", false},
		{"https://media.licdn.com/dms/image/acme.png", false},
		{"", false},
	}
	for _, c := range cases {
		if got := normalize.IsBadLogoURL(c.logo); got != c.want {
			t.Errorf("IsBadLogoURL(%q) = %v, want %v", c.logo, got, c.want)
		}
	}
}
