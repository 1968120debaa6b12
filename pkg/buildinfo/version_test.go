package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	oldV, oldC := Version, Commit
	defer func() { Version, Commit = oldV, oldC }()

	Version, Commit = "v1.2.3", "0123456789abcdef"
	if got, want := UserAgent(), "protoboard/v1.2.3 (+0123456)"; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}

	Commit = "none"
	if got := UserAgent(); !strings.HasSuffix(got, "(+none)") {
		t.Errorf("UserAgent() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
}
