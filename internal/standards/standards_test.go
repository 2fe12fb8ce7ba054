package standards

import "testing"

func TestPolicyForKnownLanguages(t *testing.T) {
	cases := []struct {
		code  string
		ideal float64
		tight float64
		found bool
	}{
		{"is", 14.0, 17.0, true},
		{"isl", 14.0, 17.0, true},
		{"is-IS", 14.0, 17.0, true},
		{"en", 17.0, 20.0, true},
		{"es", 18.0, 21.0, true},
		{"fr", 17.0, 20.0, false},
		{"", 17.0, 20.0, false},
	}
	for _, tc := range cases {
		policy, found := PolicyFor(tc.code)
		if found != tc.found {
			t.Errorf("PolicyFor(%q) found = %v, want %v", tc.code, found, tc.found)
		}
		if policy.IdealCPS != tc.ideal || policy.TightCPS != tc.tight {
			t.Errorf("PolicyFor(%q) = %v/%v, want %v/%v", tc.code, policy.IdealCPS, policy.TightCPS, tc.ideal, tc.tight)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"IS":    "is",
		"isl":   "is",
		"en-GB": "en",
		"spa":   "es",
		"":      "",
	}
	for input, want := range cases {
		if got := NormalizeLanguage(input); got != want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestOrphanStopWordsIcelandic(t *testing.T) {
	set := OrphanStopWords("is")
	if set == nil {
		t.Fatal("expected Icelandic stop-set")
	}
	for _, word := range []string{"og", "en", "sem", "að", "því", "er", "var"} {
		if _, ok := set[word]; !ok {
			t.Errorf("missing stop word %q", word)
		}
	}
	if OrphanStopWords("fr") != nil {
		t.Error("expected nil stop-set for uncurated language")
	}
}

func TestStandardMaxChars(t *testing.T) {
	if got := Broadcast().MaxChars(); got != 84 {
		t.Fatalf("Broadcast().MaxChars() = %d, want 84", got)
	}
	if got := Teletext().MaxChars(); got != 74 {
		t.Fatalf("Teletext().MaxChars() = %d, want 74", got)
	}
}
