// Package rolequiz implements the Scrum roles quiz: match each responsibility to the role that owns it.
package rolequiz

import (
	"fmt"
	"math/rand"
	"sync"
)

// Role is a Scrum accountability
type Role string

const (
	ProductOwner Role = "Product Owner"
	ScrumMaster  Role = "Scrum Master"
	Developers   Role = "The Team"
)

// Roles in display order
var Roles = []Role{ScrumMaster, ProductOwner, Developers}

// PerRole is how many statements each role contributes to a quiz
const PerRole = 5

// Statement is one responsibility and the role it belongs to
type Statement struct {
	ID   int    `json:"id"`
	Text string `json:"statement"`
	Role Role   `json:"-"`
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Statements is the full pool the quiz draws from
var Statements = []Statement{
	{1, "Establishment of a clear product vision.", ProductOwner},
	{2, "Insurance that the Product Backlog is visible, transparent, and clear to all.", ProductOwner},
	{3, "Ensures transparency into the upcoming work of the cross-functional team.", ProductOwner},
	{4, "Monitors the results achieved such as business goals and KPIs.", ProductOwner},
	{5, "Makes decisions regarding the priority of product backlog items to deliver maximum outcome with minimum input.", ProductOwner},
	{6, "Defining and explicitly communicating the Product Goal.", ProductOwner},
	{7, "Ordering Product Backlog items to best achieve goals and missions.", ProductOwner},
	{8, "Optimizing the value of the work the Scrum Team performs.", ProductOwner},
	{9, "Representing the needs of many stakeholders in the Product Backlog.", ProductOwner},
	{10, "Deciding when to release the product increment to the market.", ProductOwner},

	{11, "Builds and maintains a healthy and motivated team.", ScrumMaster},
	{12, "Responsible for adhering to the Agile framework and Scrum methodology.", ScrumMaster},
	{13, "Consistently improves and reports team productivity without focusing on content.", ScrumMaster},
	{14, "Facilitates Daily Standup and Sprint Retrospective meetings.", ScrumMaster},
	{15, "Assists the team in achieving its goals by helping members communicate and coordinate.", ScrumMaster},
	{16, "Leads the continuous improvement process on team performance.", ScrumMaster},
	{17, "Facilitates a healthy intra-team dynamic with respect to priorities and scope.", ScrumMaster},
	{18, "Protects the team from interference from others.", ScrumMaster},
	{19, "Executes items on the Vision and Product Backlog by achieving goals and escalating impediments.", ScrumMaster},
	{20, "Establishing Scrum as defined in the Scrum Guide.", ScrumMaster},
	{21, "Causing the removal of impediments to the Scrum Team's progress.", ScrumMaster},
	{22, "Coaching the team in self-management and cross-functionality.", ScrumMaster},

	{23, "Develop and test the highest priority Product Backlog items.", Developers},
	{24, "Estimate Product Backlog entries.", Developers},
	{25, "Plans the team's work.", Developers},
	{26, "Has the authority and empowerment to ensure the work can be done to achieve the goals.", Developers},
	{27, "Adheres to the segregation of duties, such as ensuring the person who writes code does not deploy it alone.", Developers},
	{28, "Contribute to architecture and design decisions.", Developers},
	{29, "Creating a plan for the Sprint (the Sprint Backlog).", Developers},
	{30, `Instilling quality by adhering to a "Definition of Done."`, Developers},
	{31, "Adapting their plan each day toward the Sprint Goal during the Daily Scrum.", Developers},
}

// Lookup returns the statement with the given id
func Lookup(id int) (Statement, bool) {
	for _, s := range Statements {
		if s.ID == id {
			return s, true
		}
	}
	return Statement{}, false
}

// SelectBalanced draws PerRole statements per role and shuffles the result
func SelectBalanced(rng *rand.Rand) []Statement {
	var selected []Statement
	for _, role := range []Role{ProductOwner, ScrumMaster, Developers} {
		var pool []Statement
		for _, s := range Statements {
			if s.Role == role {
				pool = append(pool, s)
			}
		}
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		n := PerRole
		if len(pool) < n {
			n = len(pool)
		}
		selected = append(selected, pool[:n]...)
	}
	rng.Shuffle(len(selected), func(i, j int) { selected[i], selected[j] = selected[j], selected[i] })
	return selected
}

// Picker is a goroutine-safe SelectBalanced
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker creates a picker seeded with seed
func NewPicker(seed int64) *Picker {
	return &Picker{rng: rand.New(rand.NewSource(seed))}
}

// Pick draws a new balanced quiz
func (p *Picker) Pick() []Statement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return SelectBalanced(p.rng)
}

// Review is the outcome for one statement
type Review struct {
	ID            int    `json:"id"`
	Statement     string `json:"statement"`
	Answer        Role   `json:"answer"`
	CorrectAnswer Role   `json:"correct_answer"`
	Correct       bool   `json:"correct"`
}

// Result is a scored role quiz
type Result struct {
	Correct    int      `json:"correct"`
	Total      int      `json:"total"`
	Percentage int      `json:"percentage"`
	Message    string   `json:"message"`
	Review     []Review `json:"review"`
}

// Score grades answers against the statements with the given ids, in that order.
// An unanswered statement counts as wrong.
func Score(ids []int, answers map[int]Role) (*Result, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no statements to score")
	}

	result := &Result{Total: len(ids), Review: make([]Review, 0, len(ids))}
	for _, id := range ids {
		s, ok := Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown statement %d", id)
		}
		answer := answers[id]
		if answer != "" && !answer.Valid() {
			return nil, fmt.Errorf("unknown role %q for statement %d", answer, id)
		}
		correct := answer == s.Role
		if correct {
			result.Correct++
		}
		result.Review = append(result.Review, Review{
			ID:            id,
			Statement:     s.Text,
			Answer:        answer,
			CorrectAnswer: s.Role,
			Correct:       correct,
		})
	}

	ratio := float64(result.Correct) / float64(result.Total) * 100
	result.Percentage = int(ratio + 0.5)
	result.Message = Message(ratio)
	return result, nil
}

// Message returns the encouragement shown for a percentage of correct answers
func Message(percentage float64) string {
	switch {
	case percentage >= 90:
		return "Excellent! You're a Scrum expert!"
	case percentage >= 70:
		return "Great job! You have a solid understanding of Scrum roles."
	case percentage >= 50:
		return "Good effort! Consider reviewing the Scrum Guide for clarity."
	default:
		return "Keep learning! The Scrum Guide is a great resource to improve."
	}
}
