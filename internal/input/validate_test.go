package input

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateOK(t *testing.T) {
	p := filepath.Join(t.TempDir(), "users.csv")
	if err := os.WriteFile(p, []byte("john.doe,sp-1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Validate(p); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateNotFound(t *testing.T) {
	err := Validate(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestValidateNotReadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read anything")
	}
	p := filepath.Join(t.TempDir(), "locked.csv")
	if err := os.WriteFile(p, []byte("x"), 0o000); err != nil {
		t.Fatal(err)
	}
	err := Validate(p)
	if !errors.Is(err, ErrNotReadable) {
		t.Fatalf("err=%v, want ErrNotReadable", err)
	}
}

func TestValidateSkipsRemote(t *testing.T) {
	if err := Validate("s3://bucket/users.csv"); err != nil {
		t.Fatalf("Validate s3 uri: %v", err)
	}
}
