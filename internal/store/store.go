// Package store owns the single mutable draft Profile of an editing session.
// Every mutation goes through one of the entry points below so the structural
// invariants (fully populated record, unique list-item ids) hold in one place.
package store

import (
	"encoding/json"
	"strings"

	"github.com/khangtran/folio/internal/domain/portfolio"
	"github.com/khangtran/folio/pkg/token"
)

// Skills are edited as one text field. A newline separator keeps skills
// containing commas intact across a round trip.
const skillSeparator = "\n"

const listItemIDLength = 6

type Store struct {
	profile portfolio.Profile
}

// New returns a store holding the default placeholder profile.
func New() *Store {
	return &Store{profile: portfolio.DefaultProfile()}
}

// Load deserializes a persisted draft. Missing or malformed input is treated
// as "no data": the caller always gets a usable store, never an error.
func Load(raw []byte) *Store {
	if len(raw) == 0 {
		return New()
	}
	var p portfolio.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return New()
	}
	p.Normalize()
	return &Store{profile: p}
}

// FromProfile wraps an existing profile value in a store.
func FromProfile(p portfolio.Profile) *Store {
	return &Store{profile: p.Clone()}
}

// Profile returns a deep copy of the current draft.
func (s *Store) Profile() portfolio.Profile {
	return s.profile.Clone()
}

// Serialize produces the canonical persisted representation. Load(Serialize())
// round-trips to an equal profile.
func (s *Store) Serialize() ([]byte, error) {
	return json.Marshal(s.profile)
}

// SetField replaces one scalar field. No cross-field validation is applied;
// any text is accepted as-is.
func (s *Store) SetField(name, value string) error {
	switch name {
	case "fullName":
		s.profile.FullName = value
	case "title":
		s.profile.Title = value
	case "bio":
		s.profile.Bio = value
	case "email":
		s.profile.Email = value
	case "location":
		s.profile.Location = value
	case "avatarUrl":
		s.profile.AvatarURL = value
	case "goals":
		s.profile.Goals = value
	case "skills":
		s.profile.Skills = splitSkills(value)
	default:
		return portfolio.ErrUnknownField
	}
	return nil
}

func (s *Store) SetSocial(platform, value string) error {
	switch platform {
	case "github":
		s.profile.Socials.GitHub = value
	case "linkedin":
		s.profile.Socials.LinkedIn = value
	case "twitter":
		s.profile.Socials.Twitter = value
	case "website":
		s.profile.Socials.Website = value
	default:
		return portfolio.ErrUnknownField
	}
	return nil
}

// AddListItem appends a blank entity with a fresh identifier unique within
// its list, and returns the identifier so the caller can focus it.
func (s *Store) AddListItem(list string) (string, error) {
	switch list {
	case portfolio.ListExperiences:
		id := s.newItemID("e", func(id string) bool { _, ok := s.findExperience(id); return ok })
		s.profile.Experiences = append(s.profile.Experiences, portfolio.Experience{ID: id})
		return id, nil
	case portfolio.ListEducation:
		id := s.newItemID("d", func(id string) bool { _, ok := s.findEducation(id); return ok })
		s.profile.Education = append(s.profile.Education, portfolio.Education{ID: id})
		return id, nil
	case portfolio.ListProjects:
		id := s.newItemID("p", func(id string) bool { _, ok := s.findProject(id); return ok })
		s.profile.Projects = append(s.profile.Projects, portfolio.Project{ID: id, Technologies: []string{}})
		return id, nil
	default:
		return "", portfolio.ErrUnknownList
	}
}

// UpdateListItem replaces one field of the entity matching id. A missing id
// is not an error: edits and deletions can race in the editor, so the result
// just reports whether anything matched.
func (s *Store) UpdateListItem(list, id, field, value string) (bool, error) {
	switch list {
	case portfolio.ListExperiences:
		i, ok := s.findExperience(id)
		if !ok {
			return false, nil
		}
		e := &s.profile.Experiences[i]
		switch field {
		case "company":
			e.Company = value
		case "role":
			e.Role = value
		case "startDate":
			e.StartDate = value
		case "endDate":
			e.EndDate = value
		case "description":
			e.Description = value
		default:
			return false, portfolio.ErrUnknownField
		}
		return true, nil
	case portfolio.ListEducation:
		i, ok := s.findEducation(id)
		if !ok {
			return false, nil
		}
		d := &s.profile.Education[i]
		switch field {
		case "school":
			d.School = value
		case "degree":
			d.Degree = value
		case "year":
			d.Year = value
		default:
			return false, portfolio.ErrUnknownField
		}
		return true, nil
	case portfolio.ListProjects:
		i, ok := s.findProject(id)
		if !ok {
			return false, nil
		}
		pr := &s.profile.Projects[i]
		switch field {
		case "title":
			pr.Title = value
		case "description":
			pr.Description = value
		case "link":
			pr.Link = value
		case "imageUrl":
			pr.ImageURL = value
		case "technologies":
			pr.Technologies = splitSkills(value)
		default:
			return false, portfolio.ErrUnknownField
		}
		return true, nil
	default:
		return false, portfolio.ErrUnknownList
	}
}

// RemoveListItem removes the entity matching id. Removing an id that is not
// present is a no-op.
func (s *Store) RemoveListItem(list, id string) (bool, error) {
	switch list {
	case portfolio.ListExperiences:
		i, ok := s.findExperience(id)
		if !ok {
			return false, nil
		}
		s.profile.Experiences = append(s.profile.Experiences[:i], s.profile.Experiences[i+1:]...)
		return true, nil
	case portfolio.ListEducation:
		i, ok := s.findEducation(id)
		if !ok {
			return false, nil
		}
		s.profile.Education = append(s.profile.Education[:i], s.profile.Education[i+1:]...)
		return true, nil
	case portfolio.ListProjects:
		i, ok := s.findProject(id)
		if !ok {
			return false, nil
		}
		s.profile.Projects = append(s.profile.Projects[:i], s.profile.Projects[i+1:]...)
		return true, nil
	default:
		return false, portfolio.ErrUnknownList
	}
}

func (s *Store) newItemID(prefix string, taken func(string) bool) string {
	for {
		id := prefix + token.New(listItemIDLength)
		if !taken(id) {
			return id
		}
	}
}

func (s *Store) findExperience(id string) (int, bool) {
	for i := range s.profile.Experiences {
		if s.profile.Experiences[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Store) findEducation(id string) (int, bool) {
	for i := range s.profile.Education {
		if s.profile.Education[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Store) findProject(id string) (int, bool) {
	for i := range s.profile.Projects {
		if s.profile.Projects[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func splitSkills(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, skillSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinSkills is the inverse of the skills field encoding, used by the editor
// to prefill the text area.
func JoinSkills(skills []string) string {
	return strings.Join(skills, skillSeparator)
}
