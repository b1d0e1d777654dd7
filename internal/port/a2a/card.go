package a2a

// BuildAgentCard returns the static AgentCard for the ResumeForge service.
func BuildAgentCard(baseURL string) AgentCard {
	card := AgentCard{
		Name:        "ResumeForge",
		Description: "Multi-agent resume tailoring and interview preparation service",
		URL:         baseURL,
		Version:     "0.1.0",
		Skills: []Skill{
			{
				ID:          "tailor-resume",
				Name:        "Tailor Resume",
				Description: "Tailor an applicant's resume to a specific job posting",
				InputModes:  []string{"text"},
				OutputModes: []string{"text"},
			},
			{
				ID:          "interview-prep",
				Name:        "Interview Preparation",
				Description: "Generate interview questions and talking points for a job posting",
				InputModes:  []string{"text"},
				OutputModes: []string{"text"},
			},
		},
	}
	card.Capabilities.Streaming = true
	return card
}
