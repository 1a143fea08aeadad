package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peenly/backend/internal/models"
	"github.com/peenly/backend/internal/storage"
)

func newTestSnapshotter(t *testing.T, dir, key string) storage.Snapshotter {
	t.Helper()
	snap, err := storage.NewJSONStore(dir, key)
	require.NoError(t, err)
	return snap
}

func strPtr(s string) *string { return &s }

func completeUpdate() models.ProfileUpdate {
	return models.ProfileUpdate{
		FirstName:    strPtr("A"),
		LastName:     strPtr("B"),
		Email:        strPtr("c@d.com"),
		Country:      strPtr("X"),
		City:         strPtr("Y"),
		DateOfBirth:  strPtr("2020-01-01"),
		Relationship: strPtr("parent"),
		Religion:     strPtr("none"),
	}
}

func TestProfileStoreMergeInCallOrder(t *testing.T) {
	s := NewProfileStore(newTestSnapshotter(t, t.TempDir(), ProfileStoreKey))

	s.SetProfile(models.ProfileUpdate{FirstName: strPtr("Ada"), Country: strPtr("NG")})
	s.SetProfile(models.ProfileUpdate{LastName: strPtr("Obi")})
	s.SetProfile(models.ProfileUpdate{FirstName: strPtr("Adaeze")})

	p := s.Profile()
	assert.Equal(t, "Adaeze", p.FirstName, "later value wins per field")
	assert.Equal(t, "Obi", p.LastName)
	assert.Equal(t, "NG", p.Country, "fields never resupplied keep their prior value")
	assert.Empty(t, p.Email)
}

func TestProfileStoreCompleteness(t *testing.T) {
	clear := func(u *models.ProfileUpdate, field string) {
		switch field {
		case "firstName":
			u.FirstName = strPtr("")
		case "lastName":
			u.LastName = strPtr("")
		case "email":
			u.Email = strPtr("")
		case "country":
			u.Country = strPtr("")
		case "city":
			u.City = strPtr("")
		case "dateOfBirth":
			u.DateOfBirth = strPtr("")
		case "relationship":
			u.Relationship = strPtr("")
		case "religion":
			u.Religion = strPtr("")
		}
	}

	t.Run("all eight fields present", func(t *testing.T) {
		s := NewProfileStore(newTestSnapshotter(t, t.TempDir(), ProfileStoreKey))
		s.SetProfile(completeUpdate())
		assert.True(t, s.IsProfileCompleted())
	})

	for _, field := range []string{
		"firstName", "lastName", "email", "country",
		"city", "dateOfBirth", "relationship", "religion",
	} {
		t.Run("missing "+field, func(t *testing.T) {
			s := NewProfileStore(newTestSnapshotter(t, t.TempDir(), ProfileStoreKey))
			u := completeUpdate()
			clear(&u, field)
			s.SetProfile(u)
			assert.False(t, s.IsProfileCompleted())
		})
	}
}

func TestProfileStoreEmptyProfileIsValid(t *testing.T) {
	s := NewProfileStore(newTestSnapshotter(t, t.TempDir(), ProfileStoreKey))

	assert.False(t, s.IsProfileCompleted())
	assert.Empty(t, s.Token())
	assert.True(t, s.HasHydrated())
}

func TestProfileStoreReset(t *testing.T) {
	s := NewProfileStore(newTestSnapshotter(t, t.TempDir(), ProfileStoreKey))
	s.SetToken("tok-123")
	s.SetProfile(completeUpdate())
	require.True(t, s.IsProfileCompleted())

	s.ResetParentState()

	assert.False(t, s.IsProfileCompleted())
	assert.Equal(t, "", s.Token())
	assert.False(t, s.HasHydrated())
}

func TestProfileStoreSetHasHydrated(t *testing.T) {
	s := NewProfileStore(newTestSnapshotter(t, t.TempDir(), ProfileStoreKey))
	s.ResetParentState()
	require.False(t, s.HasHydrated())

	fired := false
	s.OnHydrated(func() { fired = true })
	s.SetHasHydrated(true)

	assert.True(t, s.HasHydrated())
	assert.True(t, fired)
}

func TestProfileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := NewProfileStore(newTestSnapshotter(t, dir, ProfileStoreKey))
	s.SetToken("tok-abc")
	s.SetProfile(completeUpdate())
	s.SetProfile(models.ProfileUpdate{PhoneNumber: strPtr("123"), ChildID: strPtr("child-1")})

	restored := NewProfileStore(newTestSnapshotter(t, dir, ProfileStoreKey))

	assert.Equal(t, s.Profile(), restored.Profile())
	assert.Equal(t, "tok-abc", restored.Token())
	assert.True(t, restored.IsProfileCompleted())
	assert.True(t, restored.HasHydrated())
}

func TestProfileStoreCorruptSnapshotFallsBack(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ProfileStoreKey+".json"), []byte("{not json"), 0644)
	require.NoError(t, err)

	s := NewProfileStore(newTestSnapshotter(t, dir, ProfileStoreKey))

	assert.True(t, s.HasHydrated(), "hydration must still signal so UI does not hang")
	assert.Empty(t, s.Token())
	assert.False(t, s.IsProfileCompleted())
}
