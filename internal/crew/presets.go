// Package crew declares the fixed agent set and task graph of the
// résumé tailoring workflow.
package crew

import (
	"github.com/unikill066/resumeforge/internal/domain/agent"
	"github.com/unikill066/resumeforge/internal/domain/task"
	"github.com/unikill066/resumeforge/internal/tool"
)

// Input keys expected by the task description templates.
const (
	InputJobPostingURL   = "job_posting_url"
	InputGitHubURL       = "github_url"
	InputLinkedInURL     = "linkedin_url"
	InputScholarURL      = "scholar_url"
	InputPortfolioURL    = "portfolio_url"
	InputPersonalWriteup = "personal_writeup"
)

// Agent roles.
const (
	RoleResearcher  = "Tech Job Researcher"
	RoleProfiler    = "Personal Profiler for Engineers"
	RoleStrategist  = "Resume Strategist for Engineers"
	RoleInterviewer = "Engineering Interview Preparer"
)

// Task names.
const (
	TaskResearch  = "Extract Job Requirements"
	TaskProfile   = "Compile Applicant Profile"
	TaskStrategy  = "Tailor Resume"
	TaskInterview = "Prepare Interview Materials"
)

// Output files written by the strategy and interview tasks.
const (
	OutputResume    = "tailored_resume.md"
	OutputInterview = "interview_materials.md"
)

// BuildAgents returns the four role descriptors, each bound to the subset
// of available capabilities its role uses. Construction is pure: no
// branching beyond "include capability if present".
func BuildAgents(available []string) []agent.Agent {
	has := make(map[string]bool, len(available))
	for _, name := range available {
		has[name] = true
	}

	subset := func(wanted ...string) []string {
		var out []string
		for _, w := range wanted {
			if has[w] {
				out = append(out, w)
			}
		}
		return out
	}

	return []agent.Agent{
		{
			Role: RoleResearcher,
			Goal: "Analyze job postings deeply to identify required skills & qualifications.",
			Backstory: "Extract critical information from job postings to form the foundation " +
				"for tailored resume content.",
			Tools: subset(tool.CapScrape, tool.CapSearch),
		},
		{
			Role: RoleProfiler,
			Goal: "Compile detailed personal and professional profiles from diverse sources.",
			Backstory: "Analyze personal projects, publications, and professional history to " +
				"create comprehensive profiles for resume tailoring.",
			Tools: subset(tool.CapScrape, tool.CapSearch, tool.CapReadResume, tool.CapSemantic),
		},
		{
			Role: RoleStrategist,
			Goal: "Optimize resumes so they align tightly with job requirements.",
			Backstory: "Expert at tailoring resumes to highlight the most relevant experience " +
				"and skills for specific job postings.",
			Tools: subset(tool.CapScrape, tool.CapSearch, tool.CapReadResume, tool.CapSemantic),
		},
		{
			Role: RoleInterviewer,
			Goal: "Generate focused interview questions & talking points.",
			Backstory: "Prepare candidates for interviews by creating tailored questions and " +
				"talking points based on job requirements and their background.",
			Tools: subset(tool.CapScrape, tool.CapSearch, tool.CapReadResume, tool.CapSemantic),
		},
	}
}

// BuildTasks returns the four task descriptors. Research and profile run
// in parallel; strategy consumes both; interview consumes all three.
func BuildTasks() []task.Task {
	return []task.Task{
		{
			Name: TaskResearch,
			Description: "Analyze the job posting URL ({job_posting_url}) to extract key " +
				"skills, experiences, and qualifications required.",
			ExpectedOutput: "Structured list of required skills, qualifications, and experiences.",
			AgentRole:      RoleResearcher,
			ToolQuery:      "required skills and qualifications for the job posting {job_posting_url}",
			Async:          true,
			Status:         task.StatusPending,
		},
		{
			Name: TaskProfile,
			Description: "Compile a profile using:\n" +
				"  - GitHub:         ({github_url})\n" +
				"  - LinkedIn:       ({linkedin_url})\n" +
				"  - Google Scholar: ({scholar_url})\n" +
				"  - Portfolio:      ({portfolio_url})\n" +
				"  - Personal write-up: {personal_writeup}\n" +
				"Extract and synthesize information from all sources.",
			ExpectedOutput: "Comprehensive profile including skills, projects, publications, and highlights.",
			AgentRole:      RoleProfiler,
			ToolQuery:      "skills, projects and publications of the applicant",
			Async:          true,
			Status:         task.StatusPending,
		},
		{
			Name: TaskStrategy,
			Description: "Using outputs from previous tasks, tailor the resume to highlight the most " +
				"relevant experience and skills. Do not invent information.",
			ExpectedOutput: "Markdown resume perfectly aligned with the job posting.",
			OutputFile:     OutputResume,
			AgentRole:      RoleStrategist,
			ToolQuery:      "experience and skills most relevant to the job requirements",
			DependsOn:      []string{TaskResearch, TaskProfile},
			Status:         task.StatusPending,
		},
		{
			Name: TaskInterview,
			Description: "Generate interview questions and talking points based on the tailored " +
				"resume and job requirements to prepare the candidate.",
			ExpectedOutput: "Markdown with key questions and talking points.",
			OutputFile:     OutputInterview,
			AgentRole:      RoleInterviewer,
			ToolQuery:      "likely interview questions for the role and candidate background",
			DependsOn:      []string{TaskResearch, TaskProfile, TaskStrategy},
			Status:         task.StatusPending,
		},
	}
}
