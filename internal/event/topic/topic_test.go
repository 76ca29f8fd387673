package topic

import "testing"

func TestTopic_Segments(t *testing.T) {
	tests := []struct {
		topic    Topic
		expected []string
	}{
		{Topic("document.content.changed"), []string{"document", "content", "changed"}},
		{Topic("single"), []string{"single"}},
		{Topic(""), nil},
	}

	for _, tt := range tests {
		t.Run(tt.topic.String(), func(t *testing.T) {
			got := tt.topic.Segments()
			if len(got) != len(tt.expected) {
				t.Fatalf("Segments() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Segments()[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTopic_Child(t *testing.T) {
	if got := Topic("").Child("view"); got != "view" {
		t.Errorf("Child on empty = %q, want view", got)
	}
	if got := Topic("view").Child("active"); got != "view.active" {
		t.Errorf("Child = %q, want view.active", got)
	}
}

func TestTopic_IsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		valid bool
	}{
		{"view.active.changed", true},
		{"decoration.*", true},
		{"", false},
		{".leading", false},
		{"trailing.", false},
		{"double..dot", false},
	}

	for _, tt := range tests {
		if got := tt.topic.IsValid(); got != tt.valid {
			t.Errorf("%q.IsValid() = %v, want %v", tt.topic, got, tt.valid)
		}
	}
}

func TestTopic_Matches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"decoration.shown", "decoration.shown", true},
		{"decoration.shown", "decoration.*", true},
		{"decoration.shown", "decoration.released", false},
		{"document.content.changed", "document.*", false},
		{"document.content.changed", "document.**", true},
		{"document.content.changed", "**", true},
		{"document.content.changed", "*.content.*", true},
		{"document", "document.**", true},
		{"view.active.changed", "**.changed", true},
		{"view.active.changed", "view.*.*.changed", false},
	}

	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestTopic_IsWildcard(t *testing.T) {
	if !Topic("a.*").IsWildcard() || !Topic("**").IsWildcard() {
		t.Error("expected wildcard patterns to report true")
	}
	if Topic("a.b").IsWildcard() {
		t.Error("expected plain topic to report false")
	}
}
