package context

import (
	"strings"
	"testing"
)

func TestBraceResolverBlockEnd(t *testing.T) {
	src := strings.Split(`function login(user) {
  if (!user) {
    return null;
  }
  return session(user);
}

function logout() {
  clear();
}`, "\n")

	r := braceResolver{}

	if end := r.BlockEnd(src, 0); end != 5 {
		t.Errorf("login block end = %d, want 5", end)
	}
	if end := r.BlockEnd(src, 7); end != 9 {
		t.Errorf("logout block end = %d, want 9", end)
	}
}

func TestBraceResolverOneLiner(t *testing.T) {
	src := []string{"const x = () => ({});", "const y = 2;"}
	r := braceResolver{}
	if end := r.BlockEnd(src, 0); end != 0 {
		t.Errorf("one-liner block end = %d, want 0", end)
	}
}

func TestBraceResolverUnclosedRunsToEOF(t *testing.T) {
	src := []string{"function f() {", "  a();", "  b();"}
	r := braceResolver{}
	if end := r.BlockEnd(src, 0); end != 2 {
		t.Errorf("unclosed block end = %d, want 2", end)
	}
}

func TestBraceResolverOutOfRange(t *testing.T) {
	r := braceResolver{}
	if end := r.BlockEnd([]string{"x"}, 5); end != 5 {
		t.Errorf("out-of-range start should pass through, got %d", end)
	}
}

func TestIndentResolverBlockEnd(t *testing.T) {
	src := strings.Split(`def login(user):
    if not user:
        return None
    return session(user)

def logout():
    clear()`, "\n")

	r := indentResolver{}

	if end := r.BlockEnd(src, 0); end != 3 {
		t.Errorf("login block end = %d, want 3", end)
	}
	if end := r.BlockEnd(src, 5); end != 6 {
		t.Errorf("logout block end = %d, want 6", end)
	}
}

func TestIndentResolverSkipsBlankLines(t *testing.T) {
	src := strings.Split(`def f():
    a()

    b()
done = 1`, "\n")

	r := indentResolver{}
	if end := r.BlockEnd(src, 0); end != 3 {
		t.Errorf("block end = %d, want 3 (blank lines inside body)", end)
	}
}

func TestResolverFor(t *testing.T) {
	if _, ok := ResolverFor("python").(indentResolver); !ok {
		t.Error("python should use the indent resolver")
	}
	if _, ok := ResolverFor("javascript").(braceResolver); !ok {
		t.Error("javascript should use the brace resolver")
	}
	if _, ok := ResolverFor("unknown-lang").(braceResolver); !ok {
		t.Error("unknown languages default to the brace resolver")
	}
}
