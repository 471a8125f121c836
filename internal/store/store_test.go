package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khangtran/folio/internal/domain/portfolio"
)

func TestLoad_EmptyAndMalformedInputReturnsDefaults(t *testing.T) {
	cases := map[string][]byte{
		"nil":        nil,
		"empty":      {},
		"not json":   []byte("{{{"),
		"wrong type": []byte(`"just a string"`),
	}
	want := portfolio.DefaultProfile()
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			s := Load(raw)
			assert.Equal(t, want, s.Profile())
		})
	}
}

func TestLoad_SerializeRoundTrip(t *testing.T) {
	s := New()
	require.NoError(t, s.SetField("fullName", "Linh Tran"))
	require.NoError(t, s.SetField("skills", "Go\nDistributed systems\nSQL, a bit"))
	require.NoError(t, s.SetSocial("github", "github.com/linhtran"))
	id, err := s.AddListItem(portfolio.ListProjects)
	require.NoError(t, err)
	_, err = s.UpdateListItem(portfolio.ListProjects, id, "title", "Folio")
	require.NoError(t, err)

	raw, err := s.Serialize()
	require.NoError(t, err)

	assert.Equal(t, s.Profile(), Load(raw).Profile())
}

func TestLoad_MissingNewerFieldsFillDefaults(t *testing.T) {
	// An older record without skills/projects still loads as a whole profile.
	raw := []byte(`{"fullName":"Old Record","title":"Dev","experiences":null}`)
	p := Load(raw).Profile()

	assert.Equal(t, "Old Record", p.FullName)
	assert.NotNil(t, p.Skills)
	assert.NotNil(t, p.Experiences)
	assert.NotNil(t, p.Education)
	assert.NotNil(t, p.Projects)
}

func TestSetField_UnknownFieldRejected(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.SetField("favoriteColor", "teal"), portfolio.ErrUnknownField)
}

func TestSkillsEncoding_CommasSurvive(t *testing.T) {
	s := New()
	require.NoError(t, s.SetField("skills", "CI/CD\nPeople management, mentoring"))
	assert.Equal(t, []string{"CI/CD", "People management, mentoring"}, s.Profile().Skills)
	assert.Equal(t, "CI/CD\nPeople management, mentoring", JoinSkills(s.Profile().Skills))
}

func TestAddListItem_BlankEntityWithFreshID(t *testing.T) {
	s := New()
	id, err := s.AddListItem(portfolio.ListExperiences)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	updated, err := s.UpdateListItem(portfolio.ListExperiences, id, "company", "Acme")
	require.NoError(t, err)
	assert.True(t, updated)

	exps := s.Profile().Experiences
	require.Len(t, exps, 1)
	assert.Equal(t, portfolio.Experience{ID: id, Company: "Acme"}, exps[0])
}

func TestAddListItem_IDsUniqueWithinList(t *testing.T) {
	s := New()
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id, err := s.AddListItem(portfolio.ListEducation)
		require.NoError(t, err)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %q", id)
		seen[id] = struct{}{}
	}
}

func TestAddThenRemove_RestoresList(t *testing.T) {
	s := New()
	before := s.Profile()

	id, err := s.AddListItem(portfolio.ListProjects)
	require.NoError(t, err)
	removed, err := s.RemoveListItem(portfolio.ListProjects, id)
	require.NoError(t, err)
	assert.True(t, removed)

	assert.Equal(t, before, s.Profile())
}

func TestRemoveListItem_MissingIDIsNoOp(t *testing.T) {
	s := New()
	_, err := s.AddListItem(portfolio.ListExperiences)
	require.NoError(t, err)
	before := s.Profile()

	removed, err := s.RemoveListItem(portfolio.ListExperiences, "nope")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, before, s.Profile())
}

func TestUpdateListItem_MissingIDIsNoMatch(t *testing.T) {
	s := New()
	updated, err := s.UpdateListItem(portfolio.ListEducation, "ghost", "school", "MIT")
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestListOps_UnknownListRejected(t *testing.T) {
	s := New()
	_, err := s.AddListItem("awards")
	assert.ErrorIs(t, err, portfolio.ErrUnknownList)
	_, err = s.UpdateListItem("awards", "a1", "name", "x")
	assert.ErrorIs(t, err, portfolio.ErrUnknownList)
	_, err = s.RemoveListItem("awards", "a1")
	assert.ErrorIs(t, err, portfolio.ErrUnknownList)
}

func TestProfile_ReturnsDeepCopy(t *testing.T) {
	s := New()
	id, err := s.AddListItem(portfolio.ListExperiences)
	require.NoError(t, err)

	snapshot := s.Profile()
	_, err = s.UpdateListItem(portfolio.ListExperiences, id, "company", "Changed After Copy")
	require.NoError(t, err)

	assert.Empty(t, snapshot.Experiences[0].Company)
}
