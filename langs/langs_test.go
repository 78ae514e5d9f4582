package langs

import "testing"

func TestCatalog(t *testing.T) {
	all := All()
	if len(all) != 17 {
		t.Fatalf("expected 17 languages, got %d", len(all))
	}
	if all[0].Code != "en" {
		t.Errorf("expected English first, got %s", all[0].Code)
	}

	all[0].Code = "xx"
	if All()[0].Code != "en" {
		t.Error("All must return a copy")
	}

	labels := Labels()
	if labels[1] != "Chinese Simplified (zh-CHS)" {
		t.Errorf("unexpected label %q", labels[1])
	}
	seen := map[string]bool{}
	for _, l := range labels {
		if seen[l] {
			t.Errorf("duplicate label %q", l)
		}
		seen[l] = true
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"French (fr)", "fr", true},
		{"fr", "fr", true},
		{"zh-chs", "zh-CHS", true},
		{"german", "de", true},
		{" ja ", "ja", true},
		{"", "", false},
		{"Klingon", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Resolve(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLookupIsExact(t *testing.T) {
	if _, ok := Lookup("fr"); ok {
		t.Error("Lookup must only accept display labels")
	}
	if code, ok := Lookup("Vietnamese (vi)"); !ok || code != "vi" {
		t.Errorf("Lookup(Vietnamese) = (%q, %v)", code, ok)
	}
	if !Valid("zh-CHT") || Valid("zh") {
		t.Error("Valid gave an unexpected answer")
	}
}
