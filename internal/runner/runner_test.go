package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/yourorg/connect-profile-updater/internal/input"
)

// fakeService maps usernames to user ids and records calls. A missing entry
// resolves to "no user found"; ids listed in failUpdate fail the update call.
type fakeService struct {
	users      map[string]string
	failUpdate map[string]string // user id -> reason
	resolved   []string
	updated    [][2]string // user id, profile id
}

func (f *fakeService) ResolveUserID(_ context.Context, username string) (string, error) {
	f.resolved = append(f.resolved, username)
	id, ok := f.users[username]
	if !ok {
		return "", fmt.Errorf("no user found with username: %s", username)
	}
	return id, nil
}

func (f *fakeService) UpdateSecurityProfile(_ context.Context, userID, profileID string) error {
	if reason, ok := f.failUpdate[userID]; ok {
		return errors.New(reason)
	}
	f.updated = append(f.updated, [2]string{userID, profileID})
	return nil
}

func runCSV(t *testing.T, svc *fakeService, csv string) Summary {
	t.Helper()
	sum, err := New(svc, zap.NewNop()).Run(context.Background(), input.NewReader(strings.NewReader(csv)))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return sum
}

func TestHeaderPlusSuccessfulRow(t *testing.T) {
	svc := &fakeService{users: map[string]string{"john.doe": "u-9"}}
	sum := runCSV(t, svc, "username,security_profile_id\njohn.doe,sp-1\n")
	if sum.Succeeded != 1 || sum.Failed != 0 || sum.Skipped != 0 {
		t.Fatalf("summary=%+v", sum)
	}
	if len(svc.updated) != 1 || svc.updated[0] != [2]string{"u-9", "sp-1"} {
		t.Fatalf("updated=%v", svc.updated)
	}
}

func TestUnresolvedUserSkipsUpdate(t *testing.T) {
	svc := &fakeService{users: map[string]string{}}
	sum := runCSV(t, svc, "missing.user,sp-1\n")
	if sum.Failed != 1 || sum.Succeeded != 0 {
		t.Fatalf("summary=%+v", sum)
	}
	if len(svc.updated) != 0 {
		t.Fatalf("update must not be called, got %v", svc.updated)
	}
}

func TestUpdateFailureCounted(t *testing.T) {
	svc := &fakeService{
		users:      map[string]string{"john.doe": "u-9"},
		failUpdate: map[string]string{"u-9": "update failed: throttled"},
	}
	sum := runCSV(t, svc, "john.doe,sp-1\n")
	if sum.Failed != 1 || sum.Succeeded != 0 {
		t.Fatalf("summary=%+v", sum)
	}
}

func TestEmptyFile(t *testing.T) {
	svc := &fakeService{}
	sum := runCSV(t, svc, "")
	if sum != (Summary{}) {
		t.Fatalf("summary=%+v", sum)
	}
	if len(svc.resolved) != 0 {
		t.Fatalf("resolved=%v", svc.resolved)
	}
}

func TestCountersAccountForEveryDataRow(t *testing.T) {
	svc := &fakeService{users: map[string]string{
		"a.user": "u-1",
		"b.user": "u-2",
	}}
	csv := strings.Join([]string{
		"username,security_profile_id", // header, excluded
		"a.user,sp-1",                  // success
		"short",                        // skipped
		"missing.user,sp-2",            // failure
		" , ",                          // skipped
		"b.user,sp-3",                  // success
	}, "\n")
	sum := runCSV(t, svc, csv)
	if sum.Succeeded != 2 || sum.Failed != 1 || sum.Skipped != 2 {
		t.Fatalf("summary=%+v", sum)
	}
	if got := sum.Attempted() + sum.Skipped; got != 5 {
		t.Fatalf("accounted rows=%d, want 5", got)
	}
}

func TestRowsProcessedInFileOrder(t *testing.T) {
	svc := &fakeService{users: map[string]string{
		"first": "u-1", "second": "u-2", "third": "u-3",
	}}
	runCSV(t, svc, "first,sp-1\nsecond,sp-2\nthird,sp-3\n")
	want := []string{"first", "second", "third"}
	for i, u := range want {
		if svc.resolved[i] != u {
			t.Fatalf("resolved=%v, want %v", svc.resolved, want)
		}
	}
}

func TestDuplicateUsernamesProcessedIndependently(t *testing.T) {
	svc := &fakeService{users: map[string]string{"john.doe": "u-9"}}
	sum := runCSV(t, svc, "john.doe,sp-1\njohn.doe,sp-2\n")
	if sum.Succeeded != 2 {
		t.Fatalf("summary=%+v", sum)
	}
	if len(svc.updated) != 2 || svc.updated[1][1] != "sp-2" {
		t.Fatalf("updated=%v", svc.updated)
	}
}

func TestCancelledContextAbortsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := &fakeService{users: map[string]string{"john.doe": "u-9"}}
	sum, err := New(svc, zap.NewNop()).Run(ctx, input.NewReader(strings.NewReader("john.doe,sp-1\n")))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
	if sum.Attempted() != 0 {
		t.Fatalf("summary=%+v", sum)
	}
}
