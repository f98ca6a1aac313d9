package models

// Role is the actor tag carried by every mutating request.
type Role string

const (
	RoleInterviewer Role = "Interviewer"
	RoleCoordinator Role = "Coordinator"
)

// Interviewer publishes availability slots.
type Interviewer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Candidate is the person being interviewed.
type Candidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Coordinator books candidates into interviewer slots.
type Coordinator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// People is the reference-data directory returned by the people endpoint.
type People struct {
	Interviewers []Interviewer `json:"interviewers"`
	Coordinators []Coordinator `json:"coordinators"`
	Candidates   []Candidate   `json:"candidates"`
}
