package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// List names accepted by the editing operations.
const (
	ListExperiences = "experiences"
	ListEducation   = "education"
	ListProjects    = "projects"
)

var (
	ErrUnknownList  = errors.New("unknown list name")
	ErrUnknownField = errors.New("unknown field name")
)

type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Education struct {
	ID     string `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Link         string   `json:"link,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Technologies []string `json:"technologies"`
}

type SocialLinks struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Profile is the root editable record describing one owner's portfolio.
// It is always fully populated: absent optional fields are empty strings,
// list fields are non-nil slices.
type Profile struct {
	FullName    string       `json:"fullName"`
	Title       string       `json:"title"`
	Bio         string       `json:"bio"`
	Email       string       `json:"email"`
	Location    string       `json:"location"`
	AvatarURL   string       `json:"avatarUrl,omitempty"`
	Goals       string       `json:"goals"`
	Skills      []string     `json:"skills"`
	Socials     SocialLinks  `json:"socials"`
	Experiences []Experience `json:"experiences"`
	Education   []Education  `json:"education"`
	Projects    []Project    `json:"projects"`
}

// DefaultProfile returns the placeholder profile a fresh editing session
// starts from when no saved draft exists.
func DefaultProfile() Profile {
	return Profile{
		FullName: "Alex Design",
		Title:    "Creative Developer",
		Bio:      "Passionate about building accessible web applications and stunning user interfaces.",
		Email:    "alex@example.com",
		Location: "San Francisco, CA",
		Goals:    "To lead a frontend team in a product-led company.",
		Skills:   []string{"React", "TypeScript", "Node.js", "UI/UX"},
		Socials: SocialLinks{
			GitHub:   "github.com/alex",
			LinkedIn: "linkedin.com/in/alex",
		},
		Experiences: []Experience{},
		Education:   []Education{},
		Projects:    []Project{},
	}
}

// Clone returns a deep copy. Published snapshots are clones so later edits
// to the live profile never reach a stored snapshot.
func (p Profile) Clone() Profile {
	out := p
	out.Skills = append([]string(nil), p.Skills...)
	out.Experiences = append([]Experience(nil), p.Experiences...)
	out.Education = append([]Education(nil), p.Education...)
	out.Projects = make([]Project, len(p.Projects))
	for i, pr := range p.Projects {
		cp := pr
		cp.Technologies = append([]string(nil), pr.Technologies...)
		out.Projects[i] = cp
	}
	out.Normalize()
	return out
}

// Normalize replaces nil slices with empty ones so a profile deserialized
// from an older or partial record still renders as a whole.
func (p *Profile) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experiences == nil {
		p.Experiences = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	for i := range p.Projects {
		if p.Projects[i].Technologies == nil {
			p.Projects[i].Technologies = []string{}
		}
	}
}

// Draft is the owner's work-in-progress profile as persisted: an opaque blob
// the store knows how to load, plus the stable publish id once one exists.
type Draft struct {
	OwnerID   uuid.UUID
	Raw       []byte
	PublishID string
}

type DraftRepository interface {
	// Get returns the owner's draft. A missing row is not an error: the
	// result carries a nil Raw and the store substitutes defaults.
	Get(ctx context.Context, ownerID uuid.UUID) (Draft, error)
	SaveRaw(ctx context.Context, ownerID uuid.UUID, raw []byte) error
	SavePublishID(ctx context.Context, ownerID uuid.UUID, publishID string) error
}

// Registry is the publish-side contract: an upsert of an immutable snapshot
// under an opaque identifier, last writer wins. Fetch of an unknown id
// reports a not-found result, never a fault.
type Registry interface {
	Publish(ctx context.Context, id string, snapshot Profile) error
	Fetch(ctx context.Context, id string) (*Profile, error)
	ListPublished(ctx context.Context, limit int) ([]PublishedEntry, error)
	GenerateID() string
}

// PublishedEntry is one row of the owner-facing publish history listing.
type PublishedEntry struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}
