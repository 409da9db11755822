package template

import "github.com/kilnhq/promptc/pkg/promptspec"

// defaultCatalog is the fixed seed data for the five shipped templates.
// Section headings are unique within each template and their declaration
// order is render order. Keywords drive both the intent parser's template
// scorer (pkg/intent) and the lint engine's no-template-match rule
// (pkg/lint); they are deliberately narrow so that a generic sentence
// mentioning the domain noun ("report", "memo", ...) scores exactly one
// match, matching the confidence spec.md's worked examples expect.
func defaultCatalog() []promptspec.TemplateDefinition {
	return []promptspec.TemplateDefinition{
		academicReportTemplate(),
		prdTemplate(),
		decisionMemoTemplate(),
		critiqueTemplate(),
		researchBriefTemplate(),
	}
}

// sec builds one TemplateSection.
func sec(heading string, minDial promptspec.DialLevel, instruction string, required bool) promptspec.TemplateSection {
	return promptspec.TemplateSection{Heading: heading, MinDial: minDial, Instruction: instruction, Required: required}
}

func academicReportTemplate() promptspec.TemplateDefinition {
	return promptspec.TemplateDefinition{
		ID:   promptspec.TemplateAcademicReport,
		Name: "Academic Report",
		Description: "A structured, citation-minded long-form report suitable for " +
			"academic or research audiences.",
		SystemInstruction: "You are an academic writing assistant. Produce a rigorous, " +
			"well-organized report. Prefer precise claims over rhetorical flourish, and " +
			"flag any assertion you cannot support.",
		Keywords: []string{"report", "academic", "research", "study", "paper", "literature"},
		Sections: []promptspec.TemplateSection{
			sec("Title", 0, "Give the report a concise, descriptive title.", true),
			sec("Abstract", 0, "Summarize the report's purpose and conclusions in 3-5 sentences.", true),
			sec("Introduction", 0, "State the problem, its context, and why it matters.", true),
			sec("Background", 1, "Provide necessary background and definitions for the reader.", false),
			sec("Literature Review", 1, "Situate the work relative to prior work.", false),
			sec("Methodology", 2, "Describe the approach used to investigate the problem.", false),
			sec("Results", 2, "Present findings without interpretation.", false),
			sec("Discussion", 3, "Interpret the results and their implications.", true),
			sec("Limitations", 3, "Name the limitations of the approach and findings.", false),
			sec("Future Work", 4, "Suggest concrete follow-up directions.", false),
			sec("Appendix", 5, "Include supporting detail too long for the main body.", false),
		},
	}
}

func prdTemplate() promptspec.TemplateDefinition {
	return promptspec.TemplateDefinition{
		ID:   promptspec.TemplatePRD,
		Name: "Product Requirements Document",
		Description: "A product requirements document structuring a feature from " +
			"problem statement through rollout plan.",
		SystemInstruction: "You are a product manager writing a PRD. Be concrete about " +
			"scope, explicit about what is out of scope, and specify success metrics.",
		Keywords: []string{"prd", "product requirements", "feature", "roadmap", "requirements"},
		Sections: []promptspec.TemplateSection{
			sec("Problem Statement", 0, "Describe the user problem and its impact.", true),
			sec("Goals", 0, "List the goals this feature must achieve.", true),
			sec("Non-Goals", 1, "List what is explicitly out of scope.", false),
			sec("User Stories", 1, "Describe the feature from the user's point of view.", false),
			sec("Requirements", 2, "Enumerate functional and non-functional requirements.", true),
			sec("Success Metrics", 3, "Define how success will be measured.", false),
			sec("Rollout Plan", 4, "Describe phased rollout and rollback strategy.", false),
		},
	}
}

func decisionMemoTemplate() promptspec.TemplateDefinition {
	return promptspec.TemplateDefinition{
		ID:   promptspec.TemplateDecisionMemo,
		Name: "Decision Memo",
		Description: "A memo that lays out a decision, the options considered, and a " +
			"recommendation.",
		SystemInstruction: "You are writing a decision memo for stakeholders who need to " +
			"act. Lead with the recommendation, then justify it.",
		Keywords: []string{"decision", "memo", "recommendation", "tradeoff", "options"},
		Sections: []promptspec.TemplateSection{
			sec("Context", 0, "Explain the situation prompting this decision.", true),
			sec("Recommendation", 0, "State the recommendation up front.", true),
			sec("Options Considered", 1, "List the alternatives and why they were or weren't chosen.", false),
			sec("Tradeoffs", 2, "Lay out the tradeoffs of the recommended option.", false),
			sec("Risks", 3, "Name the risks of proceeding and of not proceeding.", false),
			sec("Next Steps", 4, "List concrete next steps and owners.", false),
		},
	}
}

func critiqueTemplate() promptspec.TemplateDefinition {
	return promptspec.TemplateDefinition{
		ID:                promptspec.TemplateCritique,
		Name:              "Critique",
		Description:       "A structured critical assessment of a piece of work.",
		SystemInstruction: "You are a rigorous, constructive critic. Separate what works from what doesn't, and always pair a criticism with a suggested fix.",
		Keywords:          []string{"critique", "review", "feedback", "critical", "assess"},
		Sections: []promptspec.TemplateSection{
			sec("Summary", 0, "Summarize what is being critiqued.", true),
			sec("Strengths", 0, "Name what works well.", false),
			sec("Weaknesses", 1, "Name what doesn't work, with specifics.", true),
			sec("Suggested Revisions", 2, "Propose concrete changes.", false),
			sec("Overall Assessment", 3, "Give an overall verdict.", false),
		},
	}
}

func researchBriefTemplate() promptspec.TemplateDefinition {
	return promptspec.TemplateDefinition{
		ID:                promptspec.TemplateResearchBrief,
		Name:              "Research Brief",
		Description:       "A short brief summarizing research findings for a busy reader.",
		SystemInstruction: "You are producing a research brief. Lead with the finding, keep it skimmable, and cite sources where given.",
		Keywords:          []string{"research brief", "brief", "findings", "summary"},
		Sections: []promptspec.TemplateSection{
			sec("Key Finding", 0, "State the single most important finding first.", true),
			sec("Supporting Evidence", 1, "Summarize the evidence behind the finding.", false),
			sec("Open Questions", 2, "Name what remains uncertain.", false),
			sec("Sources", 3, "List sources consulted.", false),
		},
	}
}
