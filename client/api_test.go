package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SatuPadu/fses-client/client"
	"github.com/SatuPadu/fses-client/core/session"
	"github.com/SatuPadu/fses-client/storage/state"
	testutil "github.com/SatuPadu/fses-client/tests"
)

const testPassword = "Str0ng!Pass"

func defaultRoles() []session.Role {
	return []session.Role{
		testutil.RoleWithPerms(1, "OfficeAssistant", map[string][]string{
			"students": {"view", "import"},
		}),
	}
}

// loggedInAPI wires the full stack (client, session store, API surface)
// against the fake backend and signs in.
func loggedInAPI(t *testing.T, f *testutil.FakeAPI) (*client.API, *session.Store) {
	t.Helper()
	c := testutil.NewClient(f)
	store := session.NewStore(client.NewAuthClient(c), state.NewMemory(), testutil.DiscardLogger())
	if _, err := store.Login(context.Background(), session.Credentials{
		Email:    testutil.DefaultUser().Email,
		Password: testPassword,
	}); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	return client.NewAPI(c, store), store
}

func TestAPI_requiresToken(t *testing.T) {
	f := testutil.NewFakeAPI(testutil.DefaultUser(), defaultRoles(), testPassword)
	defer f.Close()

	c := testutil.NewClient(f)
	store := session.NewStore(client.NewAuthClient(c), state.NewMemory(), testutil.DiscardLogger())
	api := client.NewAPI(c, store)

	_, _, err := api.GetStudents(context.Background(), client.ListOptions{})
	if !errors.Is(err, client.ErrAuthRequired) {
		t.Errorf("GetStudents() error = %v, want ErrAuthRequired", err)
	}
	if f.RefreshCalls != 0 {
		t.Errorf("refresh calls = %d, want 0", f.RefreshCalls)
	}
}

func TestAPI_refreshRetryOn401(t *testing.T) {
	f := testutil.NewFakeAPI(testutil.DefaultUser(), defaultRoles(), testPassword)
	defer f.Close()
	api, store := loggedInAPI(t, f)

	// the store's token is now stale: the first call 401s, the refresh
	// must run exactly once and the retried call succeed
	stale := store.Token()
	f.ExpireToken()
	// refresh is only checked against FailRefresh, so rotating works even
	// though the old token is dead
	students, pg, err := api.GetStudents(context.Background(), client.ListOptions{})
	if err != nil {
		t.Fatalf("GetStudents() unexpected error = %v", err)
	}
	if students == nil && pg == nil {
		t.Error("GetStudents() returned nothing")
	}
	if f.RefreshCalls != 1 {
		t.Errorf("refresh calls = %d, want 1", f.RefreshCalls)
	}
	if store.Token() == stale {
		t.Error("token was not rotated")
	}
	if !store.IsAuthenticated() {
		t.Error("session lost after successful retry")
	}
}

func TestAPI_refreshFailureForcesLogout(t *testing.T) {
	f := testutil.NewFakeAPI(testutil.DefaultUser(), defaultRoles(), testPassword)
	defer f.Close()
	api, store := loggedInAPI(t, f)

	f.ExpireToken()
	f.FailRefresh = true

	_, _, err := api.GetStudents(context.Background(), client.ListOptions{})
	if !client.IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("GetStudents() error = %v, want 401 APIError", err)
	}
	if f.RefreshCalls != 1 {
		t.Errorf("refresh calls = %d, want 1", f.RefreshCalls)
	}
	if store.IsAuthenticated() {
		t.Error("session must be cleared when the refresh fails")
	}
}

func TestAPI_listStudents(t *testing.T) {
	f := testutil.NewFakeAPI(testutil.DefaultUser(), defaultRoles(), testPassword)
	defer f.Close()
	f.Students = []map[string]interface{}{
		{"id": 1, "name": "Musa Ibrahim", "matric_number": "PGS001", "evaluation_type": "FirstEvaluation"},
		{"id": 2, "name": "Lee Wei", "matric_number": "PGS002", "evaluation_type": "ReEvaluation"},
	}
	api, _ := loggedInAPI(t, f)

	students, pg, err := api.GetStudents(context.Background(), client.ListOptions{Page: 1})
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "PGS001", students[0].MatricNumber)
	assert.Equal(t, "Lee Wei", students[1].Name)
	require.NotNil(t, pg)
	assert.Equal(t, 2, pg.Total)
	assert.Equal(t, 1, pg.CurrentPage)
}

func TestAPI_streamImportProgress(t *testing.T) {
	f := testutil.NewFakeAPI(testutil.DefaultUser(), defaultRoles(), testPassword)
	defer f.Close()
	f.ImportStatuses = []string{"queued", "processing", "completed"}
	api, _ := loggedInAPI(t, f)

	var seen []string
	err := api.StreamImportProgress(context.Background(), "imp-1", func(st client.ImportStatus) {
		seen = append(seen, st.Status)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"queued", "processing", "completed"}, seen)
}
