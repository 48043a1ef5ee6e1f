package coach

// Role identifies who spoke a discussion turn.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleCoach     Role = "coach"
)

// Turn is one exchange in a post-answer discussion.
type Turn struct {
	Role    Role
	Content string
}
